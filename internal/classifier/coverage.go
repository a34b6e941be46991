package classifier

import (
	"fmt"

	"vcp/catsync/internal/catconfig"
)

// 覆盖率告警类型
const (
	WarnRuleNeverMatches    = "rule_never_matches"
	WarnTableMostlyUnmapped = "table_mostly_unmapped"
)

// unmappedWarnRatio unmapped 占比超过该阈值时提示补规则
const unmappedWarnRatio = 0.5

// CoverageWarning 保存期覆盖率告警（仅提示，永不阻断保存）
type CoverageWarning struct {
	TableID string `json:"table_id"`
	RuleID  string `json:"rule_id,omitempty"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// CoverageWarnings 用近期观测到的标题评估配置覆盖情况
// 找出对观测数据一次都未命中的规则，以及 unmapped 占比过高的表；
// 观测标题为空时不产生任何告警
func CoverageWarnings(cfg *catconfig.VariantsConfig, titles []string) []CoverageWarning {
	if cfg == nil || len(titles) == 0 {
		return nil
	}

	var warns []CoverageWarning
	for i := range cfg.Tables {
		table := &cfg.Tables[i]
		if !table.Enabled {
			continue
		}

		hits := make(map[string]int, len(table.Rules))
		inScopeCount := 0
		unmapped := 0
		for _, title := range titles {
			v := ClassifyTitle(table, title)
			switch v.Kind {
			case VerdictMatched:
				inScopeCount++
				for _, r := range v.Matches {
					hits[r.ID]++
				}
			case VerdictUnmapped:
				inScopeCount++
				unmapped++
			}
		}

		for j := range table.Rules {
			r := &table.Rules[j]
			if hits[r.ID] == 0 {
				warns = append(warns, CoverageWarning{
					TableID: table.ID,
					RuleID:  r.ID,
					Kind:    WarnRuleNeverMatches,
					Message: fmt.Sprintf("rule %q matched none of %d observed titles", r.Label, len(titles)),
				})
			}
		}

		if inScopeCount > 0 && float64(unmapped)/float64(inScopeCount) > unmappedWarnRatio {
			warns = append(warns, CoverageWarning{
				TableID: table.ID,
				Kind:    WarnTableMostlyUnmapped,
				Message: fmt.Sprintf("%d of %d in-scope titles are unmapped", unmapped, inScopeCount),
			})
		}
	}

	return warns
}
