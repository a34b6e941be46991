package report

import (
	"vcp/catsync/internal/business/facts"
	"vcp/catsync/internal/classifier"
)

// ReportResultData 业务处理结果
type ReportResultData struct {
	JobID       string
	ShopID      string
	Report      *Report
	ConfigError string
	ProcessedAt int64
}

// ReportOutput 最终输出结构
type ReportOutput struct {
	JobID       string                       `json:"job_id"`
	ShopID      string                       `json:"shop_id"`
	Tables      []TableReport                `json:"tables"`
	Diagnostics []TableDiagnostics           `json:"diagnostics"`
	Attribution facts.Attribution            `json:"attribution"`
	Warnings    []classifier.CoverageWarning `json:"warnings,omitempty"`
	ConfigError string                       `json:"config_error,omitempty"`
	ProcessedAt int64                        `json:"processed_at"`
}
