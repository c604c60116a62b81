package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		correct   string
		want      bool
	}{
		{"exact", "dog", "dog", true},
		{"case and spaces", "DOG ", "dog", true},
		{"correct padded", "Paris", "  paris ", true},
		{"different", "cat", "dog", false},
		{"empty submission", "", "dog", false},
		{"empty correct", "", "", false},
		{"inner space kept", "ice cream", "icecream", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCorrect(tt.submitted, tt.correct))
		})
	}
}

func TestResolveSide(t *testing.T) {
	keyed := Question{
		Options: []string{"Paris", "cat", "Rome"},
		Key:     map[string]Side{"Paris": SideLeft, "cat": SideRight, "Rome": SideLeft},
	}
	pair := Question{Options: []string{"noun", "verb"}}
	three := Question{Options: []string{"a", "b", "c"}}
	clash := Question{Options: []string{"Cat", "dog"}, Key: map[string]Side{"Cat": SideLeft, "CAT ": SideRight, "dog": SideRight}}
	normalized := Normalize(VariantSort, []Question{{
		Options: []string{"Cat", "dog"},
		Key:     map[string]Side{"Cat": SideLeft, "cat": SideRight, "Dog": SideRight},
	}})[0]

	tests := []struct {
		name string
		q    Question
		word string
		want Side
	}{
		{"explicit key left", keyed, "Paris", SideLeft},
		{"explicit key right", keyed, "cat", SideRight},
		{"explicit key normalized", keyed, " ROME ", SideLeft},
		{"key wins over convention", Question{Options: []string{"x", "y"}, Key: map[string]Side{"x": SideRight, "y": SideLeft}}, "x", SideRight},
		{"missing from key", keyed, "dog", SideUnknown},
		{"two options first", pair, "noun", SideLeft},
		{"two options second", pair, "Verb", SideRight},
		{"two options stranger", pair, "adverb", SideUnknown},
		{"three options without key", three, "a", SideUnknown},
		{"empty word", pair, "  ", SideUnknown},
		{"key entries disagree", clash, "cat", SideUnknown},
		{"key entries disagree, other word", clash, "dog", SideRight},
		{"normalized key clash", normalized, "Cat", SideUnknown},
		{"normalized key lowercased", normalized, "DOG", SideRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 50 {
				assert.Equal(t, tt.want, ResolveSide(tt.q, tt.word))
			}
		})
	}
}

func TestVariantPolicy(t *testing.T) {
	assert.Equal(t, PolicyTwoBucket, VariantSort.Policy())
	for _, v := range []Variant{VariantChoice, VariantBlank, VariantAudio} {
		assert.Equal(t, PolicySingleValue, v.Policy(), string(v))
	}
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("")
	assert.NoError(t, err)
	assert.Equal(t, VariantChoice, v)

	v, err = ParseVariant("sort")
	assert.NoError(t, err)
	assert.Equal(t, VariantSort, v)

	_, err = ParseVariant("crossword")
	assert.Error(t, err)
}

func TestParseSide(t *testing.T) {
	assert.Equal(t, SideLeft, ParseSide(" Left"))
	assert.Equal(t, SideRight, ParseSide("RIGHT"))
	assert.Equal(t, SideBlank, ParseSide("blank"))
	assert.Equal(t, SideUnknown, ParseSide("middle"))
	assert.Equal(t, "left", SideLeft.String())
}
