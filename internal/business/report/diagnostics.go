package report

import "vcp/catsync/internal/business/facts"

// exampleCap 诊断桶样例标题上限
const exampleCap = 120

// BucketTotals 诊断桶指标合计
type BucketTotals struct {
	Sessions int64   `json:"sessions"`
	Orders   int64   `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

// Bucket 诊断桶：计数 + 截断样例 + 指标合计
type Bucket struct {
	Count    int64        `json:"count"`
	Examples []string     `json:"examples,omitempty"`
	Totals   BucketTotals `json:"totals"`
}

// add 将一个变体计入诊断桶
func (b *Bucket) add(f *facts.VariantFact) {
	b.Count++
	if len(b.Examples) < exampleCap && f.VariantTitle != "" {
		b.Examples = append(b.Examples, f.VariantTitle)
	}
	b.Totals.Sessions += f.Sessions
	b.Totals.Orders += f.Orders
	b.Totals.Revenue += f.Revenue
}

// TableDiagnostics 单表诊断报告
// 操作者判断是否需要补规则的主要信号源
type TableDiagnostics struct {
	TableID string `json:"table_id"`

	// Resolved 多规则命中、由特异度自动裁决的标题（供人工复核）
	Resolved Bucket `json:"resolved"`
	// Ignored 被表级忽略列表排除的标题
	Ignored Bucket `json:"ignored"`
	// OutOfScope 与表类别域无关的标题
	OutOfScope Bucket `json:"out_of_scope"`
	// Unmapped 属于类别域但无规则覆盖的标题
	Unmapped Bucket `json:"unmapped"`
	// Ambiguous 预留桶，当前不会有标题落入
	Ambiguous Bucket `json:"ambiguous"`
}
