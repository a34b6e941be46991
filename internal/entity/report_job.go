package entity

import (
	"time"

	"gorm.io/datatypes"
)

// ReportJob 聚合/建议任务记录（结果 JSON 落库）
type ReportJob struct {
	ID      string `gorm:"column:id;primaryKey;type:varchar(64)"`
	ShopID  string `gorm:"column:shop_id;type:varchar(64);not null;index:idx_shop_status"`
	JobType string `gorm:"column:job_type;type:varchar(32);not null"`

	Status       string         `gorm:"column:status;type:varchar(16);not null;default:'RUNNING';index:idx_shop_status"`
	Result       datatypes.JSON `gorm:"column:result;type:json"`
	ErrorMessage string         `gorm:"column:error_message;type:varchar(512)"`

	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (ReportJob) TableName() string {
	return "report_jobs"
}

// 任务状态常量
const (
	JobStatusRunning = "RUNNING"
	JobStatusDone    = "DONE"
	JobStatusFailed  = "FAILED"
)
