package suggest

import (
	"context"

	"vcp/catsync/internal/catconfig"
	"vcp/catsync/internal/model"
)

// OptionSource 上游变体选项元数据来源（shopfront 客户端实现）
type OptionSource interface {
	VariantOptions(ctx context.Context, shopID, accessToken string, variantIDs []string) ([]model.VariantOptions, error)
}

// OptionSummary 建议所依据的选项概要
type OptionSummary struct {
	Name           string   `json:"name"`
	Key            string   `json:"key"`
	DistinctValues int      `json:"distinct_values"`
	PreviewValues  []string `json:"preview_values"`
}

// Impact 建议覆盖变体的商业影响合计
type Impact struct {
	Sessions int64   `json:"sessions"`
	Orders   int64   `json:"orders"`
	Revenue  float64 `json:"revenue"`
	Variants int     `json:"variants"`
}

// Suggestion 单张草稿表建议
// Table 为完整可落地的草稿，操作者确认前不写入线上配置
type Suggestion struct {
	SuggestionID string          `json:"suggestion_id"`
	Option       OptionSummary   `json:"option"`
	Impact       Impact          `json:"impact"`
	Table        catconfig.Table `json:"table"`
}

// MiningResult 挖掘结果
type MiningResult struct {
	Suggestions []Suggestion `json:"suggestions"`
	Observed    int          `json:"observed"` // 实际取到选项元数据的变体数
}
