package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcp/catsync/internal/catconfig"
)

// finishTable 端到端场景用的材质表
func finishTable() *catconfig.Table {
	return &catconfig.Table{
		ID: "finishes", Name: "Finishes", Enabled: true,
		Rules: []catconfig.Rule{
			{ID: "solid-silver", Label: "Solid Silver",
				Include: []string{"solid silver"},
				Exclude: []string{"sterling silver", "925 silver"}},
			{ID: "silver", Label: "Silver",
				Include: []string{"925 sterling silver", "sterling silver", "925 silver", "silver"},
				Exclude: []string{"solid silver"}},
			{ID: "gold", Label: "Gold",
				Include: []string{"18k gold", "gold"}},
			{ID: "vermeil", Label: "Vermeil",
				Include: []string{"vermeil"}},
		},
	}
}

func TestClassifyTitleSpecificity(t *testing.T) {
	table := &catconfig.Table{
		ID: "finishes", Name: "Finishes",
		Rules: []catconfig.Rule{
			{ID: "silver", Label: "Silver", Include: []string{"silver"}, Exclude: []string{"solid silver"}},
			{ID: "solid-silver", Label: "Solid Silver", Include: []string{"solid silver"}},
		},
	}

	v := ClassifyTitle(table, "925 Solid Silver Necklace")
	require.Equal(t, VerdictMatched, v.Kind)
	assert.Equal(t, "solid-silver", v.Rule.ID)

	// exclude 独立生效：silver 规则对该标题根本不命中
	assert.Len(t, v.Matches, 1)
	assert.False(t, v.Resolved)
}

func TestClassifyTitleExcludePrecedence(t *testing.T) {
	table := &catconfig.Table{
		ID: "finishes", Name: "Finishes",
		Rules: []catconfig.Rule{
			{ID: "silver", Label: "Silver", Include: []string{"silver"}, Exclude: []string{"sterling"}},
		},
	}

	v := ClassifyTitle(table, "Sterling Silver Chain")
	assert.NotEqual(t, VerdictMatched, v.Kind, "include hit + exclude hit must never win")
}

func TestClassifyTitleCrossRuleSpecificity(t *testing.T) {
	v := ClassifyTitle(finishTable(), "18K Gold Vermeil Necklace")
	require.Equal(t, VerdictMatched, v.Kind)

	// gold 的最佳命中是 "18k gold"（去空白 7 字符），与 "vermeil"（7）
	// 打平，平局由声明顺序裁决，gold 在前胜出
	assert.Equal(t, "gold", v.Rule.ID)
	assert.True(t, v.Resolved)
	assert.Len(t, v.Matches, 2)
}

func TestClassifyTitleVermeilBeatsShortGold(t *testing.T) {
	table := &catconfig.Table{
		ID: "finishes", Name: "Finishes",
		Rules: []catconfig.Rule{
			{ID: "gold", Label: "Gold", Include: []string{"gold"}},
			{ID: "vermeil", Label: "Vermeil", Include: []string{"vermeil"}},
		},
	}

	v := ClassifyTitle(table, "18K Gold Vermeil Necklace")
	require.Equal(t, VerdictMatched, v.Kind)
	assert.Equal(t, "vermeil", v.Rule.ID, `"vermeil"(7) beats "gold"(4)`)
	assert.True(t, v.Resolved)
}

func TestClassifyTitleScopeGate(t *testing.T) {
	lengths := &catconfig.Table{
		ID: "lengths", Name: "Necklace Lengths",
		Rules: []catconfig.Rule{
			{ID: "12in", Label: "12in", Include: []string{`12"`, "12 inch"}},
			{ID: "21in", Label: "21in", Include: []string{`21"`, "21 inch"}},
		},
	}

	tests := []struct {
		title string
		want  VerdictKind
	}{
		{"Rose Gold", VerdictOutOfScope},     // 长度表对颜色标题免疫
		{"24 inch", VerdictUnmapped},         // 域内但无规则覆盖
		{"16-18 inches", VerdictUnmapped},    // 区间写法过门控
		{`12" Chain`, VerdictMatched},        // 规则命中
		{"46cm", VerdictUnmapped},            // 公制单位过门控
		{"Letter M Pendant", VerdictOutOfScope},
	}
	for _, tt := range tests {
		v := ClassifyTitle(lengths, tt.title)
		assert.Equal(t, tt.want, v.Kind, "title %q", tt.title)
	}
}

func TestClassifyTitleStyleAndGenericScope(t *testing.T) {
	styles := &catconfig.Table{
		ID: "styles", Name: "Styles",
		Rules: []catconfig.Rule{{ID: "style-1", Label: "Style 1", Include: []string{"style 1"}}},
	}
	assert.Equal(t, VerdictOutOfScope, ClassifyTitle(styles, "Rose Gold").Kind)
	assert.Equal(t, VerdictUnmapped, ClassifyTitle(styles, "Style 9").Kind)
	assert.Equal(t, VerdictMatched, ClassifyTitle(styles, "STYLE 1 / Gold").Kind)

	generic := &catconfig.Table{
		ID: "colors", Name: "Colors",
		Rules: []catconfig.Rule{{ID: "red", Label: "Red", Include: []string{"red"}}},
	}
	// generic 表永远在域内
	assert.Equal(t, VerdictUnmapped, ClassifyTitle(generic, "Blue").Kind)
}

func TestClassifyTitleConfiguredRuleBypassesGate(t *testing.T) {
	lengths := &catconfig.Table{
		ID: "lengths", Name: "Lengths",
		Rules: []catconfig.Rule{{ID: "long", Label: "Long", Include: []string{"long"}}},
	}

	// 标题不含任何长度记法，但规则 include 命中时配置优先于启发式
	v := ClassifyTitle(lengths, "Extra Long")
	assert.Equal(t, VerdictMatched, v.Kind)
}

func TestClassifyTitleDegenerateInput(t *testing.T) {
	table := finishTable()

	assert.Equal(t, VerdictUnmapped, ClassifyTitle(table, "").Kind)
	assert.Equal(t, VerdictUnmapped, ClassifyTitle(table, "   ").Kind)
	assert.Equal(t, VerdictUnmapped, ClassifyTitle(nil, "gold").Kind)
}

func TestClassifyTitleIdempotentNormalization(t *testing.T) {
	table := finishTable()
	titles := []string{
		"925 STERLING Silver – 18 inch",
		`  Gold Vermeil / 20" `,
		"Solid   Silver",
	}
	for _, title := range titles {
		first := ClassifyTitle(table, title)
		again := ClassifyTitle(table, normalizeTitle(title).raw)
		assert.Equal(t, first.Kind, again.Kind, "title %q", title)
		if first.Kind == VerdictMatched {
			assert.Equal(t, first.Rule.ID, again.Rule.ID, "title %q", title)
		}
	}
}

func TestTokenMatching(t *testing.T) {
	nt := normalizeTitle(`925 Sterling Silver – 18" Chain`)

	tests := []struct {
		token string
		want  bool
	}{
		{"silver", true},
		{"sterling silver", true},
		{"silv", false}, // 整词边界，不做前缀匹配
		{`18"`, true},   // 含标点词条走子串匹配
		{"gold", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tokenMatches(nt, tt.token), "token %q", tt.token)
	}
}

func TestTokenSpecificity(t *testing.T) {
	assert.Equal(t, 11, tokenSpecificity("solid silver"))
	assert.Equal(t, 6, tokenSpecificity("silver"))
	assert.Equal(t, 3, tokenSpecificity(` 18" `))
}
