package facts

import (
	"context"
	"sort"
	"time"
)

// DateRange 统计时间范围（左闭右开）
type DateRange struct {
	Start time.Time
	End   time.Time
}

// OrderFact 订单台账按变体聚合行（金额已折算为基准货币）
type OrderFact struct {
	VariantID    string
	VariantTitle string
	Currency     string
	Orders       int64
	Revenue      float64
}

// Attribution 会话归因健全性统计
// 独立于分类质量，用于发现埋点/跟踪参数的回归
type Attribution struct {
	TotalSessions          int64   `json:"total_sessions"`
	SessionsWithLanding    int64   `json:"sessions_with_landing"`
	ProductLandingSessions int64   `json:"product_landing_sessions"`
	VariantSessions        int64   `json:"variant_sessions"`
	VariantRatio           float64 `json:"variant_ratio"` // variant / product-landing
}

// SessionFacts 会话侧事实：每变体落地会话数 + 归因统计
type SessionFacts struct {
	ByVariant   map[string]int64
	Attribution Attribution
}

// VariantFact 合并后的变体级商业事实
type VariantFact struct {
	VariantID    string  `json:"variant_id"`
	VariantTitle string  `json:"variant_title"`
	Sessions     int64   `json:"sessions"`
	Orders       int64   `json:"orders"`
	Revenue      float64 `json:"revenue"`
}

// Provider 商业事实提供方（外部协作者，只读、按范围查询）
// 空结果是合法返回，不是错误
type Provider interface {
	// VariantOrderFacts 订单台账按变体聚合
	VariantOrderFacts(ctx context.Context, shopID string, rng DateRange) ([]OrderFact, error)

	// VariantSessionFacts 落地会话按变体计数 + 归因统计
	VariantSessionFacts(ctx context.Context, shopID string, rng DateRange) (*SessionFacts, error)
}

// Merge 按变体 id 合并订单与会话事实
// 只有会话、尚无订单的变体保留为零收入行，保证转化率分母不丢失；
// 输出按变体 id 排序，保证确定性
func Merge(orders []OrderFact, sessions *SessionFacts) []VariantFact {
	byID := make(map[string]*VariantFact, len(orders))

	for _, o := range orders {
		f, ok := byID[o.VariantID]
		if !ok {
			f = &VariantFact{VariantID: o.VariantID, VariantTitle: o.VariantTitle}
			byID[o.VariantID] = f
		}
		if f.VariantTitle == "" {
			f.VariantTitle = o.VariantTitle
		}
		f.Orders += o.Orders
		f.Revenue += o.Revenue
	}

	if sessions != nil {
		for id, count := range sessions.ByVariant {
			f, ok := byID[id]
			if !ok {
				f = &VariantFact{VariantID: id}
				byID[id] = f
			}
			f.Sessions += count
		}
	}

	out := make([]VariantFact, 0, len(byID))
	for _, f := range byID {
		out = append(out, *f)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].VariantID < out[b].VariantID })
	return out
}

// TopByImpact 按商业影响排序取前 n 个变体（orders、sessions、revenue 降序）
func TopByImpact(all []VariantFact, n int) []VariantFact {
	out := make([]VariantFact, len(all))
	copy(out, all)
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Orders != out[b].Orders {
			return out[a].Orders > out[b].Orders
		}
		if out[a].Sessions != out[b].Sessions {
			return out[a].Sessions > out[b].Sessions
		}
		if out[a].Revenue != out[b].Revenue {
			return out[a].Revenue > out[b].Revenue
		}
		return out[a].VariantID < out[b].VariantID
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
