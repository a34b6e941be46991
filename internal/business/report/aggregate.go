package report

import (
	"context"
	"fmt"

	"vcp/catsync/internal/business/facts"
	"vcp/catsync/internal/catconfig"
	"vcp/catsync/internal/classifier"
)

// Report 聚合输出：展示表 + 诊断 + 归因健全性 + 覆盖率告警
type Report struct {
	Tables      []TableReport                `json:"tables"`
	Diagnostics []TableDiagnostics           `json:"diagnostics"`
	Attribution facts.Attribution            `json:"attribution"`
	Warnings    []classifier.CoverageWarning `json:"warnings,omitempty"`
}

// Builder 分类聚合构建器
// 相同 (config, facts) 输入必然产出相同结果，外部缓存协作者依赖该纯度
type Builder struct {
	provider facts.Provider
}

// NewBuilder 创建聚合构建器
func NewBuilder(provider facts.Provider) *Builder {
	return &Builder{provider: provider}
}

// BuildCategoryTables 构建分类聚合报表
// 对每个启用的表独立分类全部观测变体；一个变体可以同时计入多个表
func (b *Builder) BuildCategoryTables(ctx context.Context, shopID string, rng facts.DateRange, cfg *catconfig.VariantsConfig) (*Report, error) {
	orders, err := b.provider.VariantOrderFacts(ctx, shopID, rng)
	if err != nil {
		return nil, fmt.Errorf("fetch order facts failed: %w", err)
	}

	sessions, err := b.provider.VariantSessionFacts(ctx, shopID, rng)
	if err != nil {
		return nil, fmt.Errorf("fetch session facts failed: %w", err)
	}

	merged := facts.Merge(orders, sessions)

	out := &Report{}
	if sessions != nil {
		out.Attribution = sessions.Attribution
	}

	for i := range cfg.Tables {
		table := &cfg.Tables[i]
		if !table.Enabled {
			continue
		}
		tr, diag := buildTable(table, merged)
		out.Tables = append(out.Tables, tr)
		out.Diagnostics = append(out.Diagnostics, diag)
	}

	titles := make([]string, 0, len(merged))
	for i := range merged {
		if merged[i].VariantTitle != "" {
			titles = append(titles, merged[i].VariantTitle)
		}
	}
	out.Warnings = classifier.CoverageWarnings(cfg, titles)

	return out, nil
}

// buildTable 对单个表执行分类与汇总
func buildTable(table *catconfig.Table, all []facts.VariantFact) (TableReport, TableDiagnostics) {
	ignored := make(map[string]bool, len(table.Ignored))
	for _, title := range table.Ignored {
		ignored[catconfig.FoldTitle(title)] = true
	}

	byRule := make(map[string]*rollup, len(table.Rules))
	diag := TableDiagnostics{TableID: table.ID}

	for i := range all {
		f := &all[i]

		// 忽略列表在分类前生效，从所有桶中移除
		if ignored[catconfig.FoldTitle(f.VariantTitle)] {
			diag.Ignored.add(f)
			continue
		}

		v := classifier.ClassifyTitle(table, f.VariantTitle)
		switch v.Kind {
		case classifier.VerdictMatched:
			r, ok := byRule[v.Rule.ID]
			if !ok {
				r = &rollup{label: v.Rule.Label}
				byRule[v.Rule.ID] = r
			}
			r.add(f)
			if v.Resolved {
				diag.Resolved.add(f)
			}
		case classifier.VerdictOutOfScope:
			diag.OutOfScope.add(f)
		case classifier.VerdictUnmapped:
			diag.Unmapped.add(f)
		case classifier.VerdictAmbiguous:
			diag.Ambiguous.add(f)
		}
	}

	tr := TableReport{
		ID:    table.ID,
		Name:  table.Name,
		Order: table.Order,
		Icon:  table.Icon,
		Rows:  buildRows(table, byRule),
	}

	return tr, diag
}
