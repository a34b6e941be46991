package report

import (
	"math"
	"sort"

	"vcp/catsync/internal/business/facts"
	"vcp/catsync/internal/catconfig"
)

// Row 分类表展示行
type Row struct {
	Label    string   `json:"label"`
	Sessions int64    `json:"sessions"`
	Orders   int64    `json:"orders"`
	CR       *float64 `json:"cr"` // 无会话时为 null，绝不伪造 0%
	Revenue  float64  `json:"revenue"`
}

// TableReport 单个分类表的展示结果
type TableReport struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
	Icon  string `json:"icon,omitempty"`
	Rows  []Row  `json:"rows"`
}

// rollup 单条规则的指标累加器
type rollup struct {
	label    string
	sessions int64
	orders   int64
	revenue  float64
}

// add 累加一个变体的指标
func (r *rollup) add(f *facts.VariantFact) {
	r.sessions += f.Sessions
	r.orders += f.Orders
	r.revenue += f.Revenue
}

// buildRows 按规则声明顺序收集累加器并产出展示行
// 全零行丢弃；按收入、订单、会话、标签排序，完全确定
func buildRows(table *catconfig.Table, byRule map[string]*rollup) []Row {
	rows := make([]Row, 0, len(byRule))
	for i := range table.Rules {
		r, ok := byRule[table.Rules[i].ID]
		if !ok {
			continue
		}
		if r.sessions == 0 && r.orders == 0 && r.revenue == 0 {
			continue
		}
		rows = append(rows, Row{
			Label:    r.label,
			Sessions: r.sessions,
			Orders:   r.orders,
			CR:       conversionRate(r.orders, r.sessions),
			Revenue:  r.revenue,
		})
	}

	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].Revenue != rows[b].Revenue {
			return rows[a].Revenue > rows[b].Revenue
		}
		if rows[a].Orders != rows[b].Orders {
			return rows[a].Orders > rows[b].Orders
		}
		if rows[a].Sessions != rows[b].Sessions {
			return rows[a].Sessions > rows[b].Sessions
		}
		return rows[a].Label < rows[b].Label
	})

	return rows
}

// conversionRate 转化率（百分比，保留一位小数）
func conversionRate(orders, sessions int64) *float64 {
	if sessions == 0 {
		return nil
	}
	cr := math.Round(float64(orders)/float64(sessions)*1000) / 10
	return &cr
}
