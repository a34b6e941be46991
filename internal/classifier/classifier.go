package classifier

import (
	"vcp/catsync/internal/catconfig"
)

// VerdictKind 分类结论类型
type VerdictKind string

const (
	// VerdictMatched 命中规则
	VerdictMatched VerdictKind = "matched"
	// VerdictUnmapped 属于该表的类别域，但没有规则覆盖
	VerdictUnmapped VerdictKind = "unmapped"
	// VerdictOutOfScope 与该表的类别域结构无关
	VerdictOutOfScope VerdictKind = "out_of_scope"
	// VerdictAmbiguous 预留结论：特异度 + 声明顺序总能决出唯一赢家，
	// 当前没有代码路径产生它，仅为未来冲突策略保留
	VerdictAmbiguous VerdictKind = "ambiguous"
)

// Verdict 单个标题对单个表的分类结论
type Verdict struct {
	Kind VerdictKind
	// Rule Kind == matched 时的胜出规则
	Rule *catconfig.Rule
	// Resolved 多条规则命中、由特异度决出唯一赢家时为 true
	Resolved bool
	// Matches 全部命中规则（按声明顺序），供审计/诊断展示
	Matches []*catconfig.Rule
}

// ClassifyTitle 对单个变体标题执行分类
// 纯函数：无 I/O、无共享状态，可在任意并发下无锁调用；
// 空标题/非法输入返回 unmapped，不会 panic
func ClassifyTitle(table *catconfig.Table, title string) Verdict {
	t := normalizeTitle(title)
	if table == nil || t.raw == "" {
		return Verdict{Kind: VerdictUnmapped}
	}

	// 规则匹配：至少一个 include 命中且无 exclude 命中
	var matches []*catconfig.Rule
	for i := range table.Rules {
		if ruleMatches(t, &table.Rules[i]) {
			matches = append(matches, &table.Rules[i])
		}
	}

	if len(matches) == 0 {
		if !inScope(table, t) {
			return Verdict{Kind: VerdictOutOfScope}
		}
		return Verdict{Kind: VerdictUnmapped}
	}

	winner := pickBySpecificity(t, matches)
	return Verdict{
		Kind:     VerdictMatched,
		Rule:     winner,
		Resolved: len(matches) > 1,
		Matches:  matches,
	}
}

// ruleMatches 单条规则的布尔判定
func ruleMatches(t normTitle, r *catconfig.Rule) bool {
	hit := false
	for _, tok := range r.Include {
		if tokenMatches(t, tok) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}
	for _, tok := range r.Exclude {
		if tokenMatches(t, tok) {
			return false
		}
	}
	return true
}

// pickBySpecificity 特异度裁决
// 特异度 = 命中的 include 词条去空白后的最大长度；分数相同时
// 声明顺序在前者胜出（matches 已按声明顺序排列）
func pickBySpecificity(t normTitle, matches []*catconfig.Rule) *catconfig.Rule {
	winner := matches[0]
	best := ruleSpecificity(t, winner)
	for _, r := range matches[1:] {
		if score := ruleSpecificity(t, r); score > best {
			winner = r
			best = score
		}
	}
	return winner
}

// ruleSpecificity 规则特异度分数
func ruleSpecificity(t normTitle, r *catconfig.Rule) int {
	best := 0
	for _, tok := range r.Include {
		if !tokenMatches(t, tok) {
			continue
		}
		if n := tokenSpecificity(tok); n > best {
			best = n
		}
	}
	return best
}
