package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"  ต.ศรีภูมิ ", "ต ศรีภูมิ"},
		{"ABC", "abc"},
		{"--", ""},
		{"10330", "10330"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, Process(tc.input))
		})
	}
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 100, Ratio("abc", "abc"))
	assert.Equal(t, 67, Ratio("abc", "abd"))
	assert.Equal(t, 0, Ratio("", "abc"))
	assert.Equal(t, 100, PartialRatio("สีลม", "แขวงสีลม"))
}

func TestWRatio(t *testing.T) {
	assert.Equal(t, 100, WRatio("ลุมพินี", "ลุมพินี"))
	assert.Equal(t, 0, WRatio("", "ลุมพินี"))
	assert.Equal(t, 95, WRatio("b a", "a b"))
	assert.Equal(t, 90, WRatio("สีลม", "สีลมเหนือ"))
}

func TestJaroWinkler(t *testing.T) {
	assert.Equal(t, 100, JaroWinkler("abc", "abc"))
	assert.Equal(t, 0, JaroWinkler("abc", "xyz"))
	assert.Equal(t, 0, JaroWinkler("", "xyz"))
}

func TestGet(t *testing.T) {
	for _, name := range []string{"", ScorerWRatio, ScorerJaroWinkler} {
		s, err := Get(name)
		require.NoError(t, err)
		assert.Equal(t, 100, s("abc", "abc"))
	}

	_, err := Get("soundex")
	assert.ErrorIs(t, err, ErrUnknownScorer)
}

func TestExtract(t *testing.T) {
	matches, err := Extract("สีลม", []string{"ลุมพินี", "สีลม", "สีลมเหนือ", "บางรัก"}, 3, WRatio)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, Match{Choice: "สีลม", Score: 100, Index: 1}, matches[0])
	assert.Equal(t, "สีลมเหนือ", matches[1].Choice)
	assert.GreaterOrEqual(t, matches[1].Score, matches[2].Score)
}

func TestExtract_StableTies(t *testing.T) {
	matches, err := Extract("ab", []string{"ab", "xy", "ab"}, 0, nil)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, 0, matches[0].Index)
	assert.Equal(t, 2, matches[1].Index)
}

func TestExtract_Errors(t *testing.T) {
	_, err := Extract("abc", nil, 3, WRatio)
	assert.ErrorIs(t, err, ErrEmptyPool)

	_, err = Extract(" -- ", []string{"abc"}, 3, WRatio)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = Extract("abc", []string{"xyz"}, 3, WRatio)
	assert.ErrorIs(t, err, ErrNoMatch)
}
