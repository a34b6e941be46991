package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PubSub Redis 发布/订阅客户端
type PubSub struct {
	client *redis.Client
}

// NewPubSub 创建 PubSub 实例
func NewPubSub(addr, password string, db int) (*PubSub, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// 测试连接
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &PubSub{client: client}, nil
}

// ReportNotification 任务完成通知消息
type ReportNotification struct {
	ShopID    string `json:"shop_id"`
	JobID     string `json:"job_id"`
	JobType   string `json:"job_type"` // category_report/variant_mapping_suggest
	Status    string `json:"status"`   // DONE/FAILED
	Timestamp int64  `json:"timestamp"`
}

// PublishReportComplete 发布任务完成通知
// channel 约定：report:complete:{shopID}
func (p *PubSub) PublishReportComplete(ctx context.Context, channel string, notification *ReportNotification) error {
	msgJSON, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := p.client.Publish(ctx, channel, msgJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}

// Subscribe 订阅 Redis 频道
func (p *PubSub) Subscribe(ctx context.Context, channel string) *redis.PubSub {
	return p.client.Subscribe(ctx, channel)
}

// CompleteChannel 任务完成通知频道名
func CompleteChannel(shopID string) string {
	return fmt.Sprintf("report:complete:%s", shopID)
}

// Close 关闭 Redis 连接
func (p *PubSub) Close() error {
	return p.client.Close()
}
