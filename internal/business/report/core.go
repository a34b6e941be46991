package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vcp/catsync/internal/business/facts"
	"vcp/catsync/internal/catconfig"
	"vcp/catsync/pkg/errorutil"
)

// PreProcess 预处理
func (h *ReportHandler) PreProcess(ctx context.Context) error {
	if h.payload.ShopID == "" {
		h.payload.ShopID = h.GetMeta().ShopID
	}
	if h.payload.ShopID == "" {
		return errorutil.NonRetriable("shop_id is required")
	}

	if h.payload.StartTs <= 0 || h.payload.EndTs <= 0 {
		return errorutil.NonRetriable("start_ts and end_ts are required")
	}
	if h.payload.StartTs >= h.payload.EndTs {
		return errorutil.NonRetriable("start_ts must be before end_ts")
	}

	return nil
}

// Process 核心处理
func (h *ReportHandler) Process(ctx context.Context) error {
	jobID := h.GetMeta().ID
	if jobID == "" {
		jobID = uuid.New().String()
	}

	h.jobInfo = &JobInfo{
		RequestID: h.GetMeta().RequestID,
		JobID:     jobID,
		ShopID:    h.payload.ShopID,
	}

	// 配置异常不阻断任务：回退默认配置继续算，错误随结果带出
	cfg, cfgErr := catconfig.Normalize(h.payload.Config)
	if cfgErr != nil {
		h.service.log.Warnf(ctx, "[ReportHandler] config fallback to defaults: shop_id=%s, error: %v",
			h.payload.ShopID, cfgErr)
	}

	if err := h.service.RegisterJob(ctx, jobID, h.payload.ShopID); err != nil {
		return errorutil.RetriableWithDetails("register report job failed", err.Error())
	}

	rng := facts.DateRange{
		Start: time.Unix(h.payload.StartTs, 0).UTC(),
		End:   time.Unix(h.payload.EndTs, 0).UTC(),
	}

	rep, err := h.service.builder.BuildCategoryTables(ctx, h.payload.ShopID, rng, cfg)
	if err != nil {
		h.service.FailJob(ctx, h.jobInfo, err)
		return errorutil.RetriableWithDetails("build category report failed", err.Error())
	}

	h.result = &ReportResultData{
		JobID:       jobID,
		ShopID:      h.payload.ShopID,
		Report:      rep,
		ProcessedAt: time.Now().Unix(),
	}
	if cfgErr != nil {
		h.result.ConfigError = cfgErr.Error()
	}

	return nil
}

// PostProcess 后处理
func (h *ReportHandler) PostProcess(ctx context.Context) error {
	if err := h.GetResulter().Set(ctx, h.result); err != nil {
		return err
	}

	output := h.GetResulter().Get(ctx)
	h.SetOutput(output)

	h.service.CompleteJob(ctx, h.jobInfo, output.(*ReportOutput))

	return nil
}
