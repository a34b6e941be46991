package mysql

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"vcp/catsync/internal/business/facts"
	"vcp/catsync/internal/entity"
)

// variantParam 落地 URL 中携带变体标识的查询参数名
const variantParam = "variant"

// FactDAO 商业事实数据访问对象（实现 facts.Provider）
type FactDAO struct {
	db *gorm.DB
}

// NewFactDAO 创建 FactDAO 实例
func NewFactDAO(db *gorm.DB) *FactDAO {
	return &FactDAO{db: db}
}

// VariantOrderFacts 订单台账按变体聚合
// 行级数据缺陷降级处理：货币缺失按基准货币计，金额解析失败计零收入，
// 两种情况都保留行本身，避免转化率分母被悄悄低估
func (dao *FactDAO) VariantOrderFacts(ctx context.Context, shopID string, rng facts.DateRange) ([]facts.OrderFact, error) {
	var rows []entity.OrderItem
	err := dao.db.WithContext(ctx).
		Where("shop_id = ? AND created_at >= ? AND created_at < ?", shopID, rng.Start, rng.End).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}

	agg := make(map[string]*facts.OrderFact, len(rows))
	for i := range rows {
		row := &rows[i]
		f, ok := agg[row.VariantID]
		if !ok {
			f = &facts.OrderFact{VariantID: row.VariantID}
			agg[row.VariantID] = f
		}
		if f.VariantTitle == "" {
			f.VariantTitle = row.VariantTitle
		}
		if f.Currency == "" {
			f.Currency = strings.TrimSpace(row.Currency)
		}
		f.Orders++
		f.Revenue += parseRevenue(row.Revenue)
	}

	out := make([]facts.OrderFact, 0, len(agg))
	for _, f := range agg {
		out = append(out, *f)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].VariantID < out[b].VariantID })
	return out, nil
}

// VariantSessionFacts 扫描会话落地 URL，产出每变体会话数与归因统计
func (dao *FactDAO) VariantSessionFacts(ctx context.Context, shopID string, rng facts.DateRange) (*facts.SessionFacts, error) {
	var rows []entity.Session
	err := dao.db.WithContext(ctx).
		Where("shop_id = ? AND created_at >= ? AND created_at < ?", shopID, rng.Start, rng.End).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}

	out := &facts.SessionFacts{ByVariant: make(map[string]int64)}
	for i := range rows {
		out.Attribution.TotalSessions++

		landing := strings.TrimSpace(rows[i].LandingURL)
		if landing == "" {
			continue
		}
		out.Attribution.SessionsWithLanding++

		product, variantID := parseLandingURL(landing)
		if product {
			out.Attribution.ProductLandingSessions++
		}
		if variantID != "" {
			out.Attribution.VariantSessions++
			out.ByVariant[variantID]++
		}
	}

	if out.Attribution.ProductLandingSessions > 0 {
		out.Attribution.VariantRatio = float64(out.Attribution.VariantSessions) / float64(out.Attribution.ProductLandingSessions)
	}

	return out, nil
}

// parseRevenue 解析上游金额字符串，失败降级为零
func parseRevenue(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseLandingURL 解析落地 URL
// 返回是否为商品页落地，以及 URL 查询参数中携带的变体标识（无则为空）
func parseLandingURL(landing string) (product bool, variantID string) {
	u, err := url.Parse(landing)
	if err != nil {
		return false, ""
	}
	product = strings.Contains(u.Path, "/products/")
	variantID = strings.TrimSpace(u.Query().Get(variantParam))
	return product, variantID
}
