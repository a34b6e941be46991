package model

import "encoding/json"

// 任务类型常量（HandlerMap 路由键）
const (
	ActionCategoryReport = "category_report"
	ActionMappingSuggest = "variant_mapping_suggest"
)

// CategoryReportPayload 分类聚合任务的业务数据
// 配置文档随消息传入（读取即新鲜、计算期内不可变），避免 worker
// 回查设置存储
type CategoryReportPayload struct {
	ShopID  string          `json:"shop_id"`
	StartTs int64           `json:"start_ts"`
	EndTs   int64           `json:"end_ts"`
	Config  json.RawMessage `json:"config"`
}

// MappingSuggestPayload 建议挖掘任务的业务数据
// AccessToken 为上游平台访问凭证，由调用方注入
type MappingSuggestPayload struct {
	ShopID      string `json:"shop_id"`
	StartTs     int64  `json:"start_ts"`
	EndTs       int64  `json:"end_ts"`
	MaxVariants int    `json:"max_variants"`
	AccessToken string `json:"access_token"`
}

// JobCallback 任务完成回调消息（发布到 callback 队列）
type JobCallback struct {
	RequestID   string      `json:"request_id"`
	ShopID      string      `json:"shop_id"`
	JobID       string      `json:"job_id"`
	JobType     string      `json:"job_type"`
	Status      string      `json:"status"` // SUCCESS/FAILED
	Result      interface{} `json:"result,omitempty"`
	Error       string      `json:"error,omitempty"`
	ProcessedAt int64       `json:"processed_at"`
}

// 回调状态常量
const (
	CallbackStatusSuccess = "SUCCESS"
	CallbackStatusFailed  = "FAILED"
)
