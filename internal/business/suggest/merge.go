package suggest

import (
	"sort"

	"vcp/catsync/internal/catconfig"
)

// ApplySuggestions 将草稿建议合并进线上配置
// 严格增量：人工配置的表/规则/别名全部保留。同名（折叠比较）表内，
// 标签相同的草稿规则并入已有规则（合并 include），include 集合完全
// 相同的草稿规则跳过，其余追加；结果经结构归一化后返回
func ApplySuggestions(cfg *catconfig.VariantsConfig, suggestions []Suggestion) *catconfig.VariantsConfig {
	out := catconfig.NormalizeConfig(cfg)

	tablePool := catconfig.NewSlugPool()
	for i := range out.Tables {
		tablePool.Reserve(out.Tables[i].ID)
	}

	nextOrder := 0
	for i := range out.Tables {
		if out.Tables[i].Order >= nextOrder {
			nextOrder = out.Tables[i].Order + 1
		}
	}

	for _, s := range suggestions {
		existing := findTableByName(out, s.Table.Name)
		if existing == nil {
			t := s.Table
			t.ID = tablePool.Take(t.ID, "table")
			t.Order = nextOrder
			nextOrder++
			out.Tables = append(out.Tables, t)
			continue
		}
		mergeRules(existing, s.Table.Rules)
	}

	return catconfig.NormalizeConfig(out)
}

// findTableByName 按折叠后的表名查找
func findTableByName(cfg *catconfig.VariantsConfig, name string) *catconfig.Table {
	key := catconfig.FoldTitle(name)
	for i := range cfg.Tables {
		if catconfig.FoldTitle(cfg.Tables[i].Name) == key {
			return &cfg.Tables[i]
		}
	}
	return nil
}

// mergeRules 草稿规则并入已有表（增量，不覆盖人工规则）
func mergeRules(table *catconfig.Table, drafts []catconfig.Rule) {
	rulePool := catconfig.NewSlugPool()
	for i := range table.Rules {
		rulePool.Reserve(table.Rules[i].ID)
	}

	for _, draft := range drafts {
		if byLabel := findRuleByLabel(table, draft.Label); byLabel != nil {
			byLabel.Include = mergeTokens(byLabel.Include, draft.Include)
			continue
		}
		if hasRuleWithIncludes(table, draft.Include) {
			// include 集合与已有规则完全一致，追加只会产生重复行
			continue
		}

		draft.ID = rulePool.Take(draft.ID, "rule")
		table.Rules = append(table.Rules, draft)
	}
}

// findRuleByLabel 按折叠后的标签查找
func findRuleByLabel(table *catconfig.Table, label string) *catconfig.Rule {
	key := catconfig.FoldTitle(label)
	for i := range table.Rules {
		if catconfig.FoldTitle(table.Rules[i].Label) == key {
			return &table.Rules[i]
		}
	}
	return nil
}

// hasRuleWithIncludes 是否存在 include 集合完全相同的规则
func hasRuleWithIncludes(table *catconfig.Table, include []string) bool {
	want := tokenSet(include)
	for i := range table.Rules {
		if equalSets(tokenSet(table.Rules[i].Include), want) {
			return true
		}
	}
	return false
}

// mergeTokens 合并词表（保持原有顺序，新词追加）
func mergeTokens(existing, extra []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		seen[catconfig.FoldTitle(t)] = true
	}
	out := existing
	for _, t := range extra {
		key := catconfig.FoldTitle(t)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// tokenSet 词表折叠为集合键
func tokenSet(tokens []string) []string {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		if key := catconfig.FoldTitle(t); key != "" {
			set[key] = true
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// equalSets 排序后的集合键比较
func equalSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
