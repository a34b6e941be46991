package suggest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcp/catsync/internal/business/facts"
	"vcp/catsync/internal/catconfig"
	"vcp/catsync/internal/model"
	"vcp/catsync/pkg/infra/shopfront"
)

// fakeProvider 内存事实提供方
type fakeProvider struct {
	orders   []facts.OrderFact
	sessions *facts.SessionFacts
}

func (f *fakeProvider) VariantOrderFacts(ctx context.Context, shopID string, rng facts.DateRange) ([]facts.OrderFact, error) {
	return f.orders, nil
}

func (f *fakeProvider) VariantSessionFacts(ctx context.Context, shopID string, rng facts.DateRange) (*facts.SessionFacts, error) {
	return f.sessions, nil
}

// fakeOptions 内存选项元数据源
type fakeOptions struct {
	variants []model.VariantOptions
	err      error
	gotIDs   []string
}

func (f *fakeOptions) VariantOptions(ctx context.Context, shopID, accessToken string, variantIDs []string) ([]model.VariantOptions, error) {
	f.gotIDs = variantIDs
	if f.err != nil {
		return nil, f.err
	}
	return f.variants, nil
}

func testRange() facts.DateRange {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return facts.DateRange{Start: start, End: start.AddDate(0, 1, 0)}
}

func opts(variantID string, pairs ...string) model.VariantOptions {
	v := model.VariantOptions{VariantID: variantID, ProductID: "p1"}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.SelectedOptions = append(v.SelectedOptions, model.SelectedOption{Name: pairs[i], Value: pairs[i+1]})
	}
	return v
}

func TestBuildVariantMappingSuggestions(t *testing.T) {
	provider := &fakeProvider{
		orders: []facts.OrderFact{
			{VariantID: "v1", VariantTitle: "Gold / 18 inch", Orders: 5, Revenue: 500},
			{VariantID: "v2", VariantTitle: "Silver / 18 inch", Orders: 3, Revenue: 240},
			{VariantID: "v3", VariantTitle: "Vermeil / 20 inch", Orders: 1, Revenue: 80},
		},
		sessions: &facts.SessionFacts{ByVariant: map[string]int64{"v1": 30, "v2": 20, "v3": 10}},
	}
	options := &fakeOptions{
		variants: []model.VariantOptions{
			opts("v1", "Finish", "Gold", "Length", "18 inch", "Title", "Default Title"),
			opts("v2", "Finish", "Silver", "Length", "18 inch"),
			opts("v3", "finish", "Vermeil", "Length", "20 inch"),
		},
	}

	miner := NewMiner(provider, options)
	result, err := miner.BuildVariantMappingSuggestions(context.Background(), "shop-1", "token", testRange(), 10)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Observed)

	// 占位选项 Title: Default Title 被丢弃，剩 Finish 与 Length 两组
	require.Len(t, result.Suggestions, 2)

	finish := result.Suggestions[0]
	assert.Equal(t, "finish", finish.Option.Key)
	assert.Equal(t, 3, finish.Option.DistinctValues)
	assert.Equal(t, "Finishes", finish.Table.Name, "title-cased and pluralized")
	assert.Equal(t, "finishes", finish.Table.ID)

	// 每个观测值恰好一条规则，id 互不冲突，include 含字面值
	require.Len(t, finish.Table.Rules, 3)
	ids := make(map[string]bool)
	for _, r := range finish.Table.Rules {
		assert.False(t, ids[r.ID], "duplicate rule id %s", r.ID)
		ids[r.ID] = true
		assert.Contains(t, r.Include, catconfig.FoldTitle(r.Label))
	}

	// 规则按商业影响排序：gold > silver > vermeil
	assert.Equal(t, "gold", finish.Table.Rules[0].ID)
	assert.Equal(t, "silver", finish.Table.Rules[1].ID)
	assert.Equal(t, "vermeil", finish.Table.Rules[2].ID)

	// 长度组启用单位展开
	length := result.Suggestions[1]
	assert.Equal(t, "length", length.Option.Key)
	assert.Contains(t, length.Table.Rules[0].Include, `18"`)
	assert.Contains(t, length.Table.Rules[0].Include, "18 inches")

	// 影响合计
	assert.Equal(t, int64(9), finish.Impact.Orders)
	assert.Equal(t, int64(60), finish.Impact.Sessions)
}

func TestBuildVariantMappingSuggestionsDeterminism(t *testing.T) {
	provider := &fakeProvider{
		orders: []facts.OrderFact{
			{VariantID: "v1", Orders: 2},
			{VariantID: "v2", Orders: 1},
			{VariantID: "v3", Orders: 1},
		},
	}
	options := &fakeOptions{
		variants: []model.VariantOptions{
			opts("v1", "Color", "Red"),
			opts("v2", "Color", "Green"),
			opts("v3", "Color", "Blue"),
		},
	}

	miner := NewMiner(provider, options)

	var prev *MiningResult
	for i := 0; i < 3; i++ {
		result, err := miner.BuildVariantMappingSuggestions(context.Background(), "shop-1", "token", testRange(), 10)
		require.NoError(t, err)
		require.Len(t, result.Suggestions, 1)
		require.Len(t, result.Suggestions[0].Table.Rules, 3)

		if prev != nil {
			// SuggestionID 随机，其余输出稳定
			assert.Equal(t, prev.Suggestions[0].Table, result.Suggestions[0].Table)
			assert.Equal(t, prev.Suggestions[0].Impact, result.Suggestions[0].Impact)
		}
		prev = result
	}
}

func TestBuildVariantMappingSuggestionsDiscards(t *testing.T) {
	provider := &fakeProvider{
		orders: []facts.OrderFact{
			{VariantID: "v1", Orders: 1},
			{VariantID: "v2", Orders: 1},
		},
	}
	options := &fakeOptions{
		variants: []model.VariantOptions{
			opts("v1", "Size", "M", "Material", "Cotton"),
			opts("v2", "Size", "L", "Material", "Cotton"),
		},
	}

	miner := NewMiner(provider, options)
	result, err := miner.BuildVariantMappingSuggestions(context.Background(), "shop-1", "token", testRange(), 10)
	require.NoError(t, err)

	// Material 只有 1 个取值，不值得建表
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "size", result.Suggestions[0].Option.Key)
}

func TestBuildVariantMappingSuggestionsMaxVariants(t *testing.T) {
	provider := &fakeProvider{
		orders: []facts.OrderFact{
			{VariantID: "v1", Orders: 9},
			{VariantID: "v2", Orders: 5},
			{VariantID: "v3", Orders: 1},
		},
	}
	options := &fakeOptions{}

	miner := NewMiner(provider, options)
	_, err := miner.BuildVariantMappingSuggestions(context.Background(), "shop-1", "token", testRange(), 2)
	require.NoError(t, err)

	// 只取商业影响最高的 maxVariants 个变体
	assert.Equal(t, []string{"v1", "v2"}, options.gotIDs)
}

func TestBuildVariantMappingSuggestionsFetchFailure(t *testing.T) {
	provider := &fakeProvider{
		orders: []facts.OrderFact{{VariantID: "v1", Orders: 1}},
	}
	options := &fakeOptions{err: &shopfront.FetchError{ShopID: "shop-1", StatusCode: 503, Retryable: true}}

	miner := NewMiner(provider, options)
	result, err := miner.BuildVariantMappingSuggestions(context.Background(), "shop-1", "token", testRange(), 10)

	// 拉取失败整体失败，不返回残缺建议
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, isRetryableFetch(err))
}

func TestBuildVariantMappingSuggestionsNoFacts(t *testing.T) {
	miner := NewMiner(&fakeProvider{}, &fakeOptions{})
	result, err := miner.BuildVariantMappingSuggestions(context.Background(), "shop-1", "token", testRange(), 10)
	require.NoError(t, err)
	assert.Empty(t, result.Suggestions)
	assert.Zero(t, result.Observed)
}
