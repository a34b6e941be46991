package domains

import (
	"context"

	"vcp/catsync/internal/business/report"
	"vcp/catsync/internal/business/suggest"
	"vcp/catsync/internal/framework"
	"vcp/catsync/internal/model"
)

// NewHandlerMap 构建路由表（ActionType → HandlerFactory 映射）
func NewHandlerMap(deps *Deps) map[string]framework.HandlerFactory {
	return map[string]framework.HandlerFactory{
		model.ActionCategoryReport: func(ctx context.Context, baseHandler *framework.BaseHandler) (framework.BusinessHandler, error) {
			return report.NewReportHandler(ctx, baseHandler, deps.ReportService)
		},

		model.ActionMappingSuggest: func(ctx context.Context, baseHandler *framework.BaseHandler) (framework.BusinessHandler, error) {
			return suggest.NewSuggestHandler(ctx, baseHandler, deps.SuggestService, deps.DefaultMaxVariants)
		},
	}
}
