package suggest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"vcp/catsync/internal/business/facts"
	"vcp/catsync/internal/catconfig"
	"vcp/catsync/internal/model"
)

const (
	// minDistinctValues 低于该值的选项组不值得建表
	minDistinctValues = 2
	// previewCap 选项概要中预览值数量上限
	previewCap = 5
	// degenerateValue 平台对无选项商品填充的占位值
	degenerateValue = "default title"
	// degenerateName 占位选项名
	degenerateName = "title"
)

// Miner 建议挖掘器
// 消费商业事实 + 上游选项元数据，产出草稿表建议；不读线上配置
type Miner struct {
	facts   facts.Provider
	options OptionSource
}

// NewMiner 创建建议挖掘器
func NewMiner(provider facts.Provider, options OptionSource) *Miner {
	return &Miner{facts: provider, options: options}
}

// valueStat 单个选项值的观测累计
type valueStat struct {
	display  string
	sessions int64
	orders   int64
	revenue  float64
	variants int
}

// optionGroup 按归一化选项名聚合的观测组
type optionGroup struct {
	key     string
	display string
	order   []string // 值出现顺序（确定性遍历）
	values  map[string]*valueStat
}

// BuildVariantMappingSuggestions 挖掘草稿表建议
// 取商业影响最高的 maxVariants 个变体，拉取其结构化选项，按选项名
// 分组提议草稿表；上游拉取失败整体失败，不返回残缺建议
func (m *Miner) BuildVariantMappingSuggestions(
	ctx context.Context,
	shopID, accessToken string,
	rng facts.DateRange,
	maxVariants int,
) (*MiningResult, error) {
	orders, err := m.facts.VariantOrderFacts(ctx, shopID, rng)
	if err != nil {
		return nil, fmt.Errorf("fetch order facts failed: %w", err)
	}
	sessions, err := m.facts.VariantSessionFacts(ctx, shopID, rng)
	if err != nil {
		return nil, fmt.Errorf("fetch session facts failed: %w", err)
	}

	top := facts.TopByImpact(facts.Merge(orders, sessions), maxVariants)
	if len(top) == 0 {
		return &MiningResult{}, nil
	}

	factByID := make(map[string]*facts.VariantFact, len(top))
	ids := make([]string, 0, len(top))
	for i := range top {
		factByID[top[i].VariantID] = &top[i]
		ids = append(ids, top[i].VariantID)
	}

	observed, err := m.options.VariantOptions(ctx, shopID, accessToken, ids)
	if err != nil {
		return nil, err
	}

	groups := groupOptions(observed, factByID)

	result := &MiningResult{Observed: len(observed)}
	tablePool := catconfig.NewSlugPool()
	for i, g := range groups {
		result.Suggestions = append(result.Suggestions, proposeTable(g, i, tablePool))
	}
	return result, nil
}

// groupOptions 按归一化选项名分组，过滤退化组，按商业影响排序
func groupOptions(observed []model.VariantOptions, factByID map[string]*facts.VariantFact) []*optionGroup {
	byKey := make(map[string]*optionGroup)
	var keyOrder []string

	for i := range observed {
		meta := &observed[i]
		fact := factByID[meta.VariantID]
		for _, opt := range meta.SelectedOptions {
			name := catconfig.FoldTitle(opt.Name)
			value := catconfig.FoldTitle(opt.Value)
			if name == "" || value == "" {
				continue
			}
			// 平台占位选项（Title: Default Title）不构成真实分类维度
			if name == degenerateName || value == degenerateValue {
				continue
			}

			g, ok := byKey[name]
			if !ok {
				g = &optionGroup{
					key:     name,
					display: catconfig.FoldSpace(opt.Name),
					values:  make(map[string]*valueStat),
				}
				byKey[name] = g
				keyOrder = append(keyOrder, name)
			}

			v, ok := g.values[value]
			if !ok {
				v = &valueStat{display: catconfig.FoldSpace(opt.Value)}
				g.values[value] = v
				g.order = append(g.order, value)
			}
			v.variants++
			if fact != nil {
				v.sessions += fact.Sessions
				v.orders += fact.Orders
				v.revenue += fact.Revenue
			}
		}
	}

	var out []*optionGroup
	for _, key := range keyOrder {
		g := byKey[key]
		if len(g.values) < minDistinctValues {
			continue
		}
		out = append(out, g)
	}

	// 组间按商业影响排序，影响相同时按选项名，保证建议顺序确定
	sort.SliceStable(out, func(a, b int) bool {
		ia, ib := out[a].impact(), out[b].impact()
		if ia.Orders != ib.Orders {
			return ia.Orders > ib.Orders
		}
		if ia.Sessions != ib.Sessions {
			return ia.Sessions > ib.Sessions
		}
		if ia.Revenue != ib.Revenue {
			return ia.Revenue > ib.Revenue
		}
		return out[a].key < out[b].key
	})

	return out
}

// impact 选项组的商业影响合计
func (g *optionGroup) impact() Impact {
	var im Impact
	for _, v := range g.values {
		im.Sessions += v.sessions
		im.Orders += v.orders
		im.Revenue += v.revenue
		im.Variants += v.variants
	}
	return im
}

// lengthLike 选项名或值暗示长度维度时启用单位别名展开
func (g *optionGroup) lengthLike() bool {
	if strings.Contains(g.key, "length") {
		return true
	}
	for value := range g.values {
		if lengthToken.MatchString(value) {
			return true
		}
	}
	return false
}

// proposeTable 由一个选项组产出一张草稿表建议
func proposeTable(g *optionGroup, index int, tablePool *catconfig.SlugPool) Suggestion {
	name := pluralize(titleCase(g.display))

	table := catconfig.Table{
		ID:      tablePool.Take(catconfig.Slugify(name), fmt.Sprintf("table-%d", index)),
		Name:    name,
		Enabled: true,
		Order:   index,
		Aliases: []string{g.key},
	}

	// 规则按商业影响排序（会话、订单、收入），值名兜底
	values := make([]string, len(g.order))
	copy(values, g.order)
	sort.SliceStable(values, func(a, b int) bool {
		va, vb := g.values[values[a]], g.values[values[b]]
		if va.sessions != vb.sessions {
			return va.sessions > vb.sessions
		}
		if va.orders != vb.orders {
			return va.orders > vb.orders
		}
		if va.revenue != vb.revenue {
			return va.revenue > vb.revenue
		}
		return values[a] < values[b]
	})

	lengthLike := g.lengthLike()
	rulePool := catconfig.NewSlugPool()
	preview := make([]string, 0, previewCap)
	for i, value := range values {
		v := g.values[value]
		table.Rules = append(table.Rules, catconfig.Rule{
			ID:      rulePool.Take(catconfig.Slugify(v.display), fmt.Sprintf("rule-%d", i)),
			Label:   v.display,
			Include: AliasVariants(v.display, lengthLike),
		})
		if len(preview) < previewCap {
			preview = append(preview, v.display)
		}
	}

	return Suggestion{
		SuggestionID: uuid.New().String(),
		Option: OptionSummary{
			Name:           g.display,
			Key:            g.key,
			DistinctValues: len(g.values),
			PreviewValues:  preview,
		},
		Impact: g.impact(),
		Table:  table,
	}
}
