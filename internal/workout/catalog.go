package workout

// MuscleGroup is a fixed muscle-group label with its default exercises.
type MuscleGroup struct {
	Key       string
	Label     string
	Exercises []string
}

// HasExercise reports whether name is one of the group's default exercises.
func (g MuscleGroup) HasExercise(name string) bool {
	for _, ex := range g.Exercises {
		if ex == name {
			return true
		}
	}
	return false
}

// Catalog holds the muscle groups offered in the group selection menu.
type Catalog struct {
	groups  []MuscleGroup
	byKey   map[string]MuscleGroup
	byLabel map[string]MuscleGroup
}

// NewCatalog builds a catalog from the given groups, preserving their order.
func NewCatalog(groups []MuscleGroup) *Catalog {
	c := &Catalog{
		groups:  groups,
		byKey:   make(map[string]MuscleGroup, len(groups)),
		byLabel: make(map[string]MuscleGroup, len(groups)),
	}
	for _, g := range groups {
		c.byKey[g.Key] = g
		c.byLabel[g.Label] = g
	}
	return c
}

// DefaultCatalog returns the built-in muscle groups and exercises.
func DefaultCatalog() *Catalog {
	return NewCatalog([]MuscleGroup{
		{Key: "back", Label: "Спина", Exercises: []string{"Подтягивания", "Тяга штанги", "Тяга гантели"}},
		{Key: "chest", Label: "Грудь", Exercises: []string{"Жим штанги", "Жим гантелей", "Разводка гантелей"}},
		{Key: "legs", Label: "Ноги", Exercises: []string{"Приседания", "Становая тяга", "Выпады"}},
		{Key: "arms", Label: "Руки", Exercises: []string{"Жим штанги узким хватом", "Подъем гантелей на бицепс", "Французский жим"}},
		{Key: "shoulders", Label: "Плечи", Exercises: []string{"Жим Арнольда", "Махи гантелями", "Подъем передних дельт"}},
		{Key: "abs", Label: "Пресс", Exercises: []string{"Скручивания", "Планка", "Обратные скручивания"}},
	})
}

// GroupByLabel resolves a group by its button label.
func (c *Catalog) GroupByLabel(label string) (MuscleGroup, bool) {
	g, ok := c.byLabel[label]
	return g, ok
}

// GroupByKey resolves a group by its internal key.
func (c *Catalog) GroupByKey(key string) (MuscleGroup, bool) {
	g, ok := c.byKey[key]
	return g, ok
}

// GroupLabels returns the labels in menu order.
func (c *Catalog) GroupLabels() []string {
	labels := make([]string, 0, len(c.groups))
	for _, g := range c.groups {
		labels = append(labels, g.Label)
	}
	return labels
}
