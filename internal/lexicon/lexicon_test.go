package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	l, err := Load([]string{"ด่วน", " "})
	require.NoError(t, err)

	assert.True(t, l.IsStopword("และ"))
	assert.True(t, l.IsStopword("ด่วน"))
	assert.False(t, l.IsStopword("ถนน"))
	assert.False(t, l.IsStopword(""))

	words := l.Words()
	assert.Contains(t, words, "ถนน")
	assert.Contains(t, words, "ด่วน")
}

func TestNew_Dedupes(t *testing.T) {
	l := New([]string{"ที่", "ที่"}, []string{"ที่", "ซอย"})
	assert.Equal(t, []string{"ที่", "ซอย"}, l.Words())
}
