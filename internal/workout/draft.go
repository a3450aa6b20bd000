package workout

// Draft is the partially-filled exercise entry inside an in-progress
// workout. Fields are filled strictly left to right (name, sets, reps,
// weight); each stage is a separate type so that "field present" is a
// type-level fact. A draft never holds a weight: entering a valid weight
// completes the entry and appends it to the workout buffer.
type Draft interface {
	isDraft()
}

// DraftEmpty is a draft with no fields captured yet.
type DraftEmpty struct{}

// DraftNamed carries the exercise name only.
type DraftNamed struct {
	Name string
}

// DraftWithSets carries the name and the set count.
type DraftWithSets struct {
	Name string
	Sets int
}

// DraftWithReps carries everything except the weight.
type DraftWithReps struct {
	Name string
	Sets int
	Reps int
}

func (DraftEmpty) isDraft()    {}
func (DraftNamed) isDraft()    {}
func (DraftWithSets) isDraft() {}
func (DraftWithReps) isDraft() {}
