package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAliasVariantsLength(t *testing.T) {
	aliases := AliasVariants(`18"`, true)

	for _, want := range []string{`18"`, "18in", "18 in", "18 inch", "18 inches", "18inches"} {
		assert.Contains(t, aliases, want)
	}
	assert.LessOrEqual(t, len(aliases), maxAliasesPerRule)
}

func TestAliasVariantsMetric(t *testing.T) {
	aliases := AliasVariants("46cm", false)
	assert.Contains(t, aliases, "46cm")
	assert.Contains(t, aliases, "46 cm")
}

func TestAliasVariantsMetalNotation(t *testing.T) {
	aliases := AliasVariants("14ct Gold", false)
	assert.Contains(t, aliases, "14ct")
	assert.Contains(t, aliases, "14 ct")
}

func TestAliasVariantsUnicodeNormalization(t *testing.T) {
	// en dash 归一为 ASCII 连字符
	aliases := AliasVariants("Gold – Plated", false)
	assert.Contains(t, aliases, "gold – plated")
	assert.Contains(t, aliases, "gold - plated")
}

func TestAliasVariantsParenStrip(t *testing.T) {
	aliases := AliasVariants("Gold (limited)", false)
	assert.Contains(t, aliases, "gold (limited)")
	assert.Contains(t, aliases, "gold")
}

func TestAliasVariantsDedupe(t *testing.T) {
	aliases := AliasVariants("Gold", false)
	assert.Equal(t, []string{"gold"}, aliases, "no spurious variants for a plain value")

	assert.Nil(t, AliasVariants("   ", false))
}

func TestPluralize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Finish", "Finishes"},
		{"Length", "Lengths"},
		{"Style", "Styles"},
		{"Color", "Colors"},
		{"Quality", "Qualities"},
		{"Size", "Sizes"},
		{"Box", "Boxes"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pluralize(tt.in), "pluralize(%q)", tt.in)
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Necklace Length", titleCase("necklace  LENGTH"))
	assert.Equal(t, "Finish", titleCase("finish"))
}
