package report

import (
	"context"

	"vcp/catsync/internal/framework"
	"vcp/catsync/internal/model"
)

// ReportHandler 分类聚合任务处理器
type ReportHandler struct {
	framework.BaseHandler

	payload *model.CategoryReportPayload
	service *Service

	jobInfo *JobInfo
	result  *ReportResultData
}

// NewReportHandler 创建分类聚合任务处理器
func NewReportHandler(
	ctx context.Context,
	baseHandler *framework.BaseHandler,
	service *Service,
) (framework.BusinessHandler, error) {
	var payload model.CategoryReportPayload
	if err := baseHandler.DecodePayload(&payload); err != nil {
		return nil, err
	}

	handler := &ReportHandler{
		BaseHandler: *baseHandler,
		payload:     &payload,
		service:     service,
	}

	handler.SetResulter(NewReportResulter())

	return handler, nil
}

// Handle 处理入口
func (h *ReportHandler) Handle(ctx context.Context) ([]byte, error) {
	processFuncs := []framework.ProcessorFunc{
		h.PreProcess,
		h.Process,
		h.PostProcess,
	}

	preProcessor := framework.NewPreProcessor(processFuncs)
	if err := preProcessor.Run(ctx); err != nil {
		// 错误响应照常构造，原始错误同时上抛，调度层据此决定重试
		resp, wrapErr := h.WrapErrorResponse(ctx, err)
		if wrapErr != nil {
			return nil, wrapErr
		}
		return resp, err
	}

	output := h.GetOutput()
	return h.WrapResponse(ctx, output)
}
