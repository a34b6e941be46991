package entity

import "time"

// Session 会话记录（落地 URL 中可能携带变体标识查询参数）
type Session struct {
	ID         string `gorm:"column:id;primaryKey;type:varchar(64)"`
	ShopID     string `gorm:"column:shop_id;type:varchar(64);not null;index:idx_shop_created"`
	LandingURL string `gorm:"column:landing_url;type:varchar(2048)"`

	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_shop_created"`
}

// TableName 指定表名
func (Session) TableName() string {
	return "sessions"
}
