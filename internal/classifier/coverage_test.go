package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vcp/catsync/internal/catconfig"
)

func TestCoverageWarnings(t *testing.T) {
	cfg := &catconfig.VariantsConfig{
		Version: catconfig.ConfigVersion,
		Tables: []catconfig.Table{
			{ID: "finishes", Name: "Finishes", Enabled: true,
				Rules: []catconfig.Rule{
					{ID: "gold", Label: "Gold", Include: []string{"gold"}},
					{ID: "platinum", Label: "Platinum", Include: []string{"platinum"}},
				}},
			{ID: "disabled", Name: "Disabled", Enabled: false,
				Rules: []catconfig.Rule{{ID: "x", Label: "X", Include: []string{"x"}}}},
		},
	}

	titles := []string{"18K Gold", "Gold Vermeil", "Sterling Silver", "Solid Silver", "Silver Chain"}
	warns := CoverageWarnings(cfg, titles)

	var kinds []string
	for _, w := range warns {
		kinds = append(kinds, w.Kind)
		assert.Equal(t, "finishes", w.TableID, "disabled table never warns")
	}

	// platinum 一次未命中；5 个域内标题中 3 个 unmapped（>50%）
	assert.Contains(t, kinds, WarnRuleNeverMatches)
	assert.Contains(t, kinds, WarnTableMostlyUnmapped)
}

func TestCoverageWarningsEmptyObservations(t *testing.T) {
	cfg := &catconfig.VariantsConfig{
		Version: catconfig.ConfigVersion,
		Tables: []catconfig.Table{
			{ID: "finishes", Name: "Finishes", Enabled: true,
				Rules: []catconfig.Rule{{ID: "gold", Label: "Gold", Include: []string{"gold"}}}},
		},
	}

	assert.Nil(t, CoverageWarnings(cfg, nil))
	assert.Nil(t, CoverageWarnings(nil, []string{"gold"}))
}
