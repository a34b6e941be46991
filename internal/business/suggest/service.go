package suggest

import (
	"context"
	"encoding/json"
	"time"

	"vcp/catsync/internal/business/facts"
	"vcp/catsync/internal/entity"
	"vcp/catsync/internal/model"
	"vcp/catsync/pkg/infra/mysql"
	"vcp/catsync/pkg/infra/redis"
	"vcp/catsync/pkg/lmstfy"
	"vcp/catsync/pkg/logger"
)

// Service 建议挖掘服务
// 职责：登记任务 → 挖掘 → 落库 → 发布完成通知 → 发送回调
type Service struct {
	miner         *Miner
	jobs          *mysql.ReportDAO
	pubsub        *redis.PubSub
	lmstfyClient  *lmstfy.Client
	callbackQueue string
	log           logger.Logger
}

// NewService 创建建议挖掘服务实例
func NewService(
	provider facts.Provider,
	options OptionSource,
	jobs *mysql.ReportDAO,
	pubsub *redis.PubSub,
	lmstfyClient *lmstfy.Client,
	callbackQueue string,
	log logger.Logger,
) *Service {
	return &Service{
		miner:         NewMiner(provider, options),
		jobs:          jobs,
		pubsub:        pubsub,
		lmstfyClient:  lmstfyClient,
		callbackQueue: callbackQueue,
		log:           log,
	}
}

// RegisterJob 登记任务记录（RUNNING 态）
func (s *Service) RegisterJob(ctx context.Context, jobID, shopID string) error {
	return s.jobs.CreateJob(ctx, jobID, shopID, model.ActionMappingSuggest)
}

// CompleteJob 任务成功收尾：落库 + 通知 + 回调
func (s *Service) CompleteJob(ctx context.Context, meta *JobInfo, result *SuggestOutput) {
	if err := s.jobs.UpdateResult(ctx, meta.JobID, result, entity.JobStatusDone, ""); err != nil {
		s.log.Errorf(ctx, "[SuggestService] update job result failed: job_id=%s, error: %v", meta.JobID, err)
	}

	s.notify(ctx, meta, entity.JobStatusDone)
	s.sendCallback(ctx, meta, model.CallbackStatusSuccess, result, "")
}

// FailJob 任务失败收尾：落库 + 通知 + 回调
func (s *Service) FailJob(ctx context.Context, meta *JobInfo, cause error) {
	if err := s.jobs.UpdateResult(ctx, meta.JobID, nil, entity.JobStatusFailed, cause.Error()); err != nil {
		s.log.Errorf(ctx, "[SuggestService] update job status failed: job_id=%s, error: %v", meta.JobID, err)
	}

	s.notify(ctx, meta, entity.JobStatusFailed)
	s.sendCallback(ctx, meta, model.CallbackStatusFailed, nil, cause.Error())
}

// notify 发布任务完成通知到 Redis 频道
func (s *Service) notify(ctx context.Context, meta *JobInfo, status string) {
	notification := &redis.ReportNotification{
		ShopID:    meta.ShopID,
		JobID:     meta.JobID,
		JobType:   model.ActionMappingSuggest,
		Status:    status,
		Timestamp: time.Now().Unix(),
	}

	channel := redis.CompleteChannel(meta.ShopID)
	if err := s.pubsub.PublishReportComplete(ctx, channel, notification); err != nil {
		s.log.Errorf(ctx, "[SuggestService] publish notification failed: job_id=%s, error: %v", meta.JobID, err)
	}
}

// sendCallback 发送回调到 callback 队列
func (s *Service) sendCallback(ctx context.Context, meta *JobInfo, status string, result interface{}, errMsg string) {
	callback := &model.JobCallback{
		RequestID:   meta.RequestID,
		ShopID:      meta.ShopID,
		JobID:       meta.JobID,
		JobType:     model.ActionMappingSuggest,
		Status:      status,
		Result:      result,
		Error:       errMsg,
		ProcessedAt: time.Now().Unix(),
	}

	callbackJSON, err := json.Marshal(callback)
	if err != nil {
		s.log.Errorf(ctx, "[SuggestService] marshal callback failed: job_id=%s, error: %v", meta.JobID, err)
		return
	}

	// ttl=0 永不过期, delay=0 立即可用
	if err := s.lmstfyClient.Publish(s.callbackQueue, callbackJSON, 0, 0); err != nil {
		s.log.Errorf(ctx, "[SuggestService] publish callback failed: job_id=%s, error: %v", meta.JobID, err)
	}
}

// JobInfo 任务收尾所需的标识信息
type JobInfo struct {
	RequestID string
	JobID     string
	ShopID    string
}
