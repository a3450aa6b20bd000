package workout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePositiveInt(t *testing.T) {
	v, err := ParsePositiveInt("3")
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = ParsePositiveInt(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	for _, bad := range []string{"", "abc", "0", "-1", "3.5"} {
		_, err := ParsePositiveInt(bad)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "input %q", bad)
	}
}

func TestParseWeight(t *testing.T) {
	cases := map[string]float64{
		"50":   50,
		"12.5": 12.5,
		"12,5": 12.5,
		"0":    0,
		" 80 ": 80,
	}
	for in, want := range cases {
		v, err := ParseWeight(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, v, "input %q", in)
	}

	for _, bad := range []string{"", "abc", "-5"} {
		_, err := ParseWeight(bad)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "input %q", bad)
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, CmdStartWorkout, Classify(BtnStartWorkout))
	assert.Equal(t, CmdCancel, Classify(BtnCancel))
	assert.Equal(t, CmdFinish, Classify(BtnFinish))
	assert.Equal(t, CmdHistory, Classify(BtnHistory))
	assert.Equal(t, CmdStats, Classify(BtnStats))
	assert.Equal(t, CmdBack, Classify(BtnBack))
	assert.Equal(t, CmdAddCustom, Classify(BtnAddCustom))
	assert.Equal(t, CmdText, Classify("Подтягивания"))
	assert.Equal(t, CmdText, Classify(""))
}
