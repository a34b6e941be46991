package report

import "context"

// ReportResulter 报表结果处理器
type ReportResulter struct {
	srcData interface{}
	dstData interface{}
}

// NewReportResulter 创建报表结果处理器
func NewReportResulter() *ReportResulter {
	return &ReportResulter{}
}

// Set 设置业务结果数据
func (r *ReportResulter) Set(ctx context.Context, data interface{}) error {
	r.srcData = data

	resultData := data.(*ReportResultData)

	r.dstData = &ReportOutput{
		JobID:       resultData.JobID,
		ShopID:      resultData.ShopID,
		Tables:      resultData.Report.Tables,
		Diagnostics: resultData.Report.Diagnostics,
		Attribution: resultData.Report.Attribution,
		Warnings:    resultData.Report.Warnings,
		ConfigError: resultData.ConfigError,
		ProcessedAt: resultData.ProcessedAt,
	}

	return nil
}

// Get 获取格式化后的输出
func (r *ReportResulter) Get(ctx context.Context) interface{} {
	return r.dstData
}
