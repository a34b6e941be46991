package domains

import (
	"context"
	"time"

	"github.com/bitleak/lmstfy/client"
	"github.com/google/uuid"

	"vcp/catsync/internal/framework"
	"vcp/catsync/pkg/errorutil"
	"vcp/catsync/pkg/logger"
	"vcp/catsync/pkg/lmstfyx"
)

// GetProcess 返回核心处理函数（注入到 Processor）
func GetProcess(deps *Deps, log logger.Logger) lmstfyx.Proc {
	handlerMap := NewHandlerMap(deps)

	return func(ctx context.Context, lmstfyJob *client.Job) *lmstfyx.JobResp {
		startTime := time.Now()

		// 1. 解析 Job 标准结构
		baseHandler := &framework.BaseHandler{}
		if err := baseHandler.ParseJob(ctx, lmstfyJob.Data); err != nil {
			// 结构坏掉的消息重试也无济于事
			log.Errorf(ctx, "[GetProcess] parse job failed: %v", err)
			return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
		}

		meta := baseHandler.GetMeta()
		if meta.RequestID == "" {
			meta.RequestID = uuid.New().String()
		}

		// 2. 注入 TraceID 等元信息到 Context
		ctx = context.WithValue(ctx, "trace_id", meta.RequestID)
		ctx = context.WithValue(ctx, "shop_id", meta.ShopID)
		ctx = context.WithValue(ctx, "action_type", meta.ActionType)

		log.Infof(ctx, "[GetProcess] Processing job: action_type=%s, request_id=%s, id=%s",
			meta.ActionType, meta.RequestID, meta.ID)

		// 3. 从 HandlerMap 获取 Handler 工厂
		factory, ok := handlerMap[meta.ActionType]
		if !ok {
			log.Errorf(ctx, "[GetProcess] handler not found for action_type: %s", meta.ActionType)
			return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
		}

		// 4. 调用 Handler（捕获 panic）
		var resp *lmstfyx.JobResp
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Errorf(ctx, "[GetProcess] handler panic: %v", r)
					resp = &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
				}
			}()

			handler, err := factory(ctx, baseHandler)
			if err != nil {
				log.Errorf(ctx, "[GetProcess] handler creation failed: %v", err)
				resp = &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
				return
			}

			data, err := handler.Handle(ctx)
			resp = settleResponse(ctx, data, err, log)
		}()

		// 5. 记录处理时长
		duration := time.Since(startTime)
		log.Infof(ctx, "[GetProcess] Processing complete: action=%d, duration=%v", resp.Action, duration)

		return resp
	}
}

// settleResponse 按业务错误的可重试标记决定消息去向
func settleResponse(ctx context.Context, data []byte, err error, log logger.Logger) *lmstfyx.JobResp {
	if err == nil {
		return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusSuccess, Data: data}
	}

	if errorutil.IsRetryable(err) {
		log.Warnf(ctx, "[GetProcess] handler failed, will retry: %v", err)
		return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusRelease, Data: data}
	}

	log.Errorf(ctx, "[GetProcess] handler failed permanently: %v", err)
	return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury, Data: data}
}
