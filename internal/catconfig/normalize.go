package catconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// 读取期解析失败原因（回退默认配置时随配置一并返回，供调用方记录）
var (
	ErrEmptyDocument     = errors.New("config document is empty")
	ErrMalformedDocument = errors.New("config document is malformed")
	ErrVersionMismatch   = errors.New("config document version mismatch")
)

// Normalize 读取期归一化入口
// 任何输入都不会 panic：解析失败、版本不匹配、非对象输入一律回退为
// 默认空配置。回退时同时返回非 nil 错误，调用方可记录日志/指标，
// 但不应因此中断读取流程
func Normalize(raw json.RawMessage) (*VariantsConfig, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return DefaultConfig(), ErrEmptyDocument
	}

	var doc VariantsConfig
	if err := json.Unmarshal(raw, &doc); err != nil {
		return DefaultConfig(), fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	if doc.Version != ConfigVersion {
		return DefaultConfig(), fmt.Errorf("%w: got version %d, want %d", ErrVersionMismatch, doc.Version, ConfigVersion)
	}

	return NormalizeConfig(&doc), nil
}

// NormalizeConfig 结构级归一化（幂等）
// 规则：表 id 由声明 id 或名称 slug 化，空则按下标兜底；重复表 id
// 丢弃后者；无 include 词条的规则丢弃；规则 id 冲突时追加数字后缀；
// 别名/忽略列表折叠去重截断；表按 order、名称排序
func NormalizeConfig(doc *VariantsConfig) *VariantsConfig {
	out := &VariantsConfig{Version: ConfigVersion}
	if doc == nil {
		return out
	}

	seen := make(map[string]bool)
	for i := range doc.Tables {
		if len(out.Tables) >= maxTables {
			break
		}
		t := &doc.Tables[i]

		id := Slugify(t.ID)
		if id == "" {
			id = Slugify(t.Name)
		}
		if id == "" {
			id = fmt.Sprintf("table-%d", i)
		}
		if seen[id] {
			// 重复表 id：保留首个
			continue
		}
		seen[id] = true

		nt := Table{
			ID:      id,
			Name:    FoldSpace(t.Name),
			Enabled: t.Enabled,
			Order:   t.Order,
			Icon:    strings.TrimSpace(t.Icon),
			Aliases: normalizeList(t.Aliases),
			Ignored: normalizeList(t.Ignored),
		}
		if nt.Name == "" {
			nt.Name = id
		}

		rulePool := NewSlugPool()
		for j := range t.Rules {
			if len(nt.Rules) >= maxRulesPerTable {
				break
			}
			r := &t.Rules[j]

			include := normalizeList(r.Include)
			if len(include) == 0 {
				// 没有 include 词条的规则永远无法命中，直接丢弃
				continue
			}

			base := Slugify(r.ID)
			if base == "" {
				base = Slugify(r.Label)
			}
			rid := rulePool.Take(base, fmt.Sprintf("rule-%d", j))

			label := FoldSpace(r.Label)
			if label == "" {
				label = rid
			}

			nt.Rules = append(nt.Rules, Rule{
				ID:      rid,
				Label:   label,
				Include: include,
				Exclude: normalizeList(r.Exclude),
			})
		}

		out.Tables = append(out.Tables, nt)
	}

	sort.SliceStable(out.Tables, func(a, b int) bool {
		if out.Tables[a].Order != out.Tables[b].Order {
			return out.Tables[a].Order < out.Tables[b].Order
		}
		return out.Tables[a].Name < out.Tables[b].Name
	})

	return out
}

// normalizeList 词条列表归一化：小写、空白折叠、去重、长度与数量截断
func normalizeList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		s = FoldTitle(s)
		if s == "" {
			continue
		}
		if r := []rune(s); len(r) > maxEntryLength {
			s = strings.TrimSpace(string(r[:maxEntryLength]))
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) >= maxListEntries {
			break
		}
	}
	return out
}
