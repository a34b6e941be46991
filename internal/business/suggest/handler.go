package suggest

import (
	"context"

	"vcp/catsync/internal/framework"
	"vcp/catsync/internal/model"
)

// SuggestHandler 建议挖掘任务处理器
type SuggestHandler struct {
	framework.BaseHandler

	payload *model.MappingSuggestPayload
	service *Service

	// defaultMaxVariants payload 未指定时的挖掘变体数上限
	defaultMaxVariants int

	jobInfo *JobInfo
	result  *SuggestResultData
}

// NewSuggestHandler 创建建议挖掘任务处理器
func NewSuggestHandler(
	ctx context.Context,
	baseHandler *framework.BaseHandler,
	service *Service,
	defaultMaxVariants int,
) (framework.BusinessHandler, error) {
	var payload model.MappingSuggestPayload
	if err := baseHandler.DecodePayload(&payload); err != nil {
		return nil, err
	}

	handler := &SuggestHandler{
		BaseHandler:        *baseHandler,
		payload:            &payload,
		service:            service,
		defaultMaxVariants: defaultMaxVariants,
	}

	handler.SetResulter(NewSuggestResulter())

	return handler, nil
}

// Handle 处理入口
func (h *SuggestHandler) Handle(ctx context.Context) ([]byte, error) {
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
