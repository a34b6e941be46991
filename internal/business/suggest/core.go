package suggest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"vcp/catsync/internal/business/facts"
	"vcp/catsync/pkg/errorutil"
	"vcp/catsync/pkg/infra/shopfront"
)

// PreProcess 预处理
func (h *SuggestHandler) PreProcess(ctx context.Context) error {
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

	if h.payload.AccessToken == "" {
		return errorutil.NonRetriable("access_token is required")
	}

	if h.payload.MaxVariants <= 0 {
		h.payload.MaxVariants = h.defaultMaxVariants
	}

	return nil
}

// Process 核心处理
func (h *SuggestHandler) Process(ctx context.Context) error {
	jobID := h.GetMeta().ID
	if jobID == "" {
		jobID = uuid.New().String()
	}

	h.jobInfo = &JobInfo{
		RequestID: h.GetMeta().RequestID,
		JobID:     jobID,
		ShopID:    h.payload.ShopID,
	}

	if err := h.service.RegisterJob(ctx, jobID, h.payload.ShopID); err != nil {
		return errorutil.RetriableWithDetails("register suggest job failed", err.Error())
	}

	rng := facts.DateRange{
		Start: time.Unix(h.payload.StartTs, 0).UTC(),
		End:   time.Unix(h.payload.EndTs, 0).UTC(),
	}

	mined, err := h.service.miner.BuildVariantMappingSuggestions(
		ctx, h.payload.ShopID, h.payload.AccessToken, rng, h.payload.MaxVariants)
	if err != nil {
		h.service.FailJob(ctx, h.jobInfo, err)
		if errorutil.IsRetryable(err) || isRetryableFetch(err) {
			return errorutil.RetriableWithDetails("mine variant mapping suggestions failed", err.Error())
		}
		return errorutil.NonRetriableWithDetails("mine variant mapping suggestions failed", err.Error())
	}

	h.result = &SuggestResultData{
		JobID:       jobID,
		ShopID:      h.payload.ShopID,
		Mined:       mined,
		ProcessedAt: time.Now().Unix(),
	}

	return nil
}

// isRetryableFetch 上游拉取失败是否值得重试（网络抖动、5xx）
func isRetryableFetch(err error) bool {
	var fe *shopfront.FetchError
	if errors.As(err, &fe) {
		return fe.Retryable
	}
	return false
}

// PostProcess 后处理
func (h *SuggestHandler) PostProcess(ctx context.Context) error {
	if err := h.GetResulter().Set(ctx, h.result); err != nil {
		return err
	}

	output := h.GetResulter().Get(ctx)
	h.SetOutput(output)

	h.service.CompleteJob(ctx, h.jobInfo, output.(*SuggestOutput))

	return nil
}
