package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcp/catsync/internal/catconfig"
)

func liveConfig() *catconfig.VariantsConfig {
	return &catconfig.VariantsConfig{
		Version: catconfig.ConfigVersion,
		Tables: []catconfig.Table{
			{ID: "finishes", Name: "Finishes", Enabled: true, Order: 1,
				Rules: []catconfig.Rule{
					{ID: "gold", Label: "Gold", Include: []string{"gold", "18k gold"}, Exclude: []string{"vermeil"}},
				}},
		},
	}
}

func TestApplySuggestionsNewTable(t *testing.T) {
	s := Suggestion{
		SuggestionID: "s1",
		Table: catconfig.Table{
			ID: "lengths", Name: "Lengths", Enabled: true,
			Rules: []catconfig.Rule{
				{ID: "18-inch", Label: "18 inch", Include: []string{"18 inch", `18"`}},
			},
		},
	}

	out := ApplySuggestions(liveConfig(), []Suggestion{s})
	require.Len(t, out.Tables, 2)
	assert.NotNil(t, out.FindTable("finishes"))
	assert.NotNil(t, out.FindTable("lengths"))

	// 新表排在已有表之后
	assert.Greater(t, out.FindTable("lengths").Order, out.FindTable("finishes").Order)
}

func TestApplySuggestionsMergeByLabel(t *testing.T) {
	s := Suggestion{
		Table: catconfig.Table{
			ID: "finishes", Name: "finishes", Enabled: true,
			Rules: []catconfig.Rule{
				// 标签与已有规则相同（折叠比较）→ 并入，include 合并
				{ID: "gold-2", Label: "GOLD", Include: []string{"gold", "gold plated"}},
			},
		},
	}

	out := ApplySuggestions(liveConfig(), []Suggestion{s})
	require.Len(t, out.Tables, 1)

	table := out.FindTable("finishes")
	require.Len(t, table.Rules, 1, "no duplicate row created")

	rule := table.Rules[0]
	assert.Equal(t, "gold", rule.ID)
	assert.Contains(t, rule.Include, "gold plated")
	assert.Contains(t, rule.Include, "18k gold", "human-authored aliases preserved")
	assert.Contains(t, rule.Exclude, "vermeil", "human-authored excludes preserved")
}

func TestApplySuggestionsSkipIdenticalIncludes(t *testing.T) {
	s := Suggestion{
		Table: catconfig.Table{
			ID: "finishes", Name: "Finishes", Enabled: true,
			Rules: []catconfig.Rule{
				// include 集合与已有规则完全相同、标签不同 → 跳过
				{ID: "gilded", Label: "Gilded", Include: []string{"18k gold", "gold"}},
			},
		},
	}

	out := ApplySuggestions(liveConfig(), []Suggestion{s})
	table := out.FindTable("finishes")
	require.Len(t, table.Rules, 1)
	assert.Equal(t, "Gold", table.Rules[0].Label)
}

func TestApplySuggestionsAppendsNewRule(t *testing.T) {
	s := Suggestion{
		Table: catconfig.Table{
			ID: "finishes", Name: "Finishes", Enabled: true,
			Rules: []catconfig.Rule{
				{ID: "silver", Label: "Silver", Include: []string{"silver"}},
			},
		},
	}

	out := ApplySuggestions(liveConfig(), []Suggestion{s})
	table := out.FindTable("finishes")
	require.Len(t, table.Rules, 2)
	assert.NotNil(t, table.FindRule("silver"))
}

func TestApplySuggestionsIDCollision(t *testing.T) {
	s := Suggestion{
		Table: catconfig.Table{
			// 表名不同但 slug 与已有表撞车 → 追加数字后缀
			ID: "finishes", Name: "Finishes!", Enabled: true,
			Rules: []catconfig.Rule{
				{ID: "matte", Label: "Matte", Include: []string{"matte"}},
			},
		},
	}

	out := ApplySuggestions(liveConfig(), []Suggestion{s})
	require.Len(t, out.Tables, 2)
	assert.NotNil(t, out.FindTable("finishes"))
	assert.NotNil(t, out.FindTable("finishes-2"))
}

func TestApplySuggestionsIdempotent(t *testing.T) {
	s := Suggestion{
		Table: catconfig.Table{
			ID: "lengths", Name: "Lengths", Enabled: true,
			Rules: []catconfig.Rule{
				{ID: "18-inch", Label: "18 inch", Include: []string{"18 inch"}},
			},
		},
	}

	once := ApplySuggestions(liveConfig(), []Suggestion{s})
	twice := ApplySuggestions(once, []Suggestion{s})
	assert.Equal(t, once, twice, "re-applying the same draft changes nothing")
}
