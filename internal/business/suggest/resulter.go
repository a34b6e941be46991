package suggest

import "context"

// SuggestResultData 业务处理结果
type SuggestResultData struct {
	JobID       string
	ShopID      string
	Mined       *MiningResult
	ProcessedAt int64
}

// SuggestOutput 最终输出结构
type SuggestOutput struct {
	JobID       string       `json:"job_id"`
	ShopID      string       `json:"shop_id"`
	Suggestions []Suggestion `json:"suggestions"`
	Observed    int          `json:"observed"`
	ProcessedAt int64        `json:"processed_at"`
}

// SuggestResulter 建议结果处理器
type SuggestResulter struct {
	srcData interface{}
	dstData interface{}
}

// NewSuggestResulter 创建建议结果处理器
func NewSuggestResulter() *SuggestResulter {
	return &SuggestResulter{}
}

// Set 设置业务结果数据
func (r *SuggestResulter) Set(ctx context.Context, data interface{}) error {
	r.srcData = data

	resultData := data.(*SuggestResultData)

	r.dstData = &SuggestOutput{
		JobID:       resultData.JobID,
		ShopID:      resultData.ShopID,
		Suggestions: resultData.Mined.Suggestions,
		Observed:    resultData.Mined.Observed,
		ProcessedAt: resultData.ProcessedAt,
	}

	return nil
}

// Get 获取格式化后的输出
func (r *SuggestResulter) Get(ctx context.Context) interface{} {
	return r.dstData
}
