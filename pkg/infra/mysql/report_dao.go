package mysql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"vcp/catsync/internal/entity"
)

// ReportDAO 任务结果数据访问对象
type ReportDAO struct {
	db *gorm.DB
}

// NewReportDAO 创建 ReportDAO 实例
func NewReportDAO(db *gorm.DB) *ReportDAO {
	return &ReportDAO{db: db}
}

// CreateJob 登记任务记录（RUNNING 态）
func (dao *ReportDAO) CreateJob(ctx context.Context, jobID, shopID, jobType string) error {
	job := &entity.ReportJob{
		ID:        jobID,
		ShopID:    shopID,
		JobType:   jobType,
		Status:    entity.JobStatusRunning,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := dao.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("failed to create report job: %w", err)
	}
	return nil
}

// UpdateResult 写入任务结果
// result 为 nil 时仅更新状态与错误信息（失败路径）
func (dao *ReportDAO) UpdateResult(ctx context.Context, jobID string, result interface{}, status, errorMsg string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}

	if result != nil {
		resultJSON, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal job result: %w", err)
		}
		updates["result"] = resultJSON
	}
	if errorMsg != "" {
		updates["error_message"] = errorMsg
	}

	dbResult := dao.db.WithContext(ctx).
		Model(&entity.ReportJob{}).
		Where("id = ?", jobID).
		Updates(updates)

	if dbResult.Error != nil {
		return fmt.Errorf("failed to update report job: %w", dbResult.Error)
	}
	if dbResult.RowsAffected == 0 {
		return fmt.Errorf("report job not found: %s", jobID)
	}

	return nil
}

// GetJob 按 id 查询任务记录
func (dao *ReportDAO) GetJob(ctx context.Context, jobID string) (*entity.ReportJob, error) {
	var job entity.ReportJob
	if err := dao.db.WithContext(ctx).Where("id = ?", jobID).First(&job).Error; err != nil {
		return nil, fmt.Errorf("failed to get report job: %w", err)
	}
	return &job, nil
}
