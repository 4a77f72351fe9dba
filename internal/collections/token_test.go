package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"aa", "batteries"}, Tokenize("AA batteries"))
	assert.Equal(t, []string{"semi", "gloss", "paint"}, Tokenize("Semi-Gloss (paint)"))
	assert.Empty(t, Tokenize("  !!!  "))
	assert.Empty(t, Tokenize(""))
}

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"batteries", "battery"},
		{"boxes", "box"},
		{"hammers", "hammer"},
		{"glass", "glas"},  // plain -s rule fires
		{"ties", "tie"},    // too short for the -ies rule, plain -s applies
		{"es", "es"},
		{"s", "s"},
		{"paint", "paint"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeToken(tt.in), "normalize %q", tt.in)
	}
}

func TestNormalizeTokenIdempotent(t *testing.T) {
	inputs := []string{"batteries", "boxes", "hammers", "supplies", "aa", "roller", "dishes"}
	for _, in := range inputs {
		once := NormalizeToken(in)
		assert.Equal(t, once, NormalizeToken(once), "re-normalizing %q", in)
	}
}

func TestTokenSetExcludesStopwords(t *testing.T) {
	set := TokenSet("before I buy a hammer")
	assert.Equal(t, map[string]bool{"hammer": true}, set)
}

func TestTokenSetDropsShortTokens(t *testing.T) {
	set := TokenSet("AA batteries")
	assert.False(t, set["aa"])
	assert.True(t, set["battery"])
}

func TestIntersects(t *testing.T) {
	a := map[string]bool{"hammer": true, "nail": true}
	assert.True(t, Intersects(a, map[string]bool{"nail": true}))
	assert.False(t, Intersects(a, map[string]bool{"screw": true}))
	assert.False(t, Intersects(a, nil))
	assert.False(t, Intersects(nil, a))
}
