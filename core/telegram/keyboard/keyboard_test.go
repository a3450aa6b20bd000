package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyButtons(t *testing.T) {
	markup := ReplyButtons([]string{"a", "b"}, []string{"c"})

	require.Len(t, markup.ReplyKeyboard, 2)
	require.Len(t, markup.ReplyKeyboard[0], 2)
	assert.Equal(t, "a", markup.ReplyKeyboard[0][0].Text)
	assert.Equal(t, "c", markup.ReplyKeyboard[1][0].Text)
	assert.True(t, markup.ResizeKeyboard)
}
