package domains

import (
	"vcp/catsync/internal/business/report"
	"vcp/catsync/internal/business/suggest"
)

// Deps 业务依赖集合
// Manager 启动时装配一次，Handler 构造时按需注入
type Deps struct {
	ReportService  *report.Service
	SuggestService *suggest.Service

	// DefaultMaxVariants payload 未指定时建议挖掘的变体数上限
	DefaultMaxVariants int
}
