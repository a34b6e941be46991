package entity

import (
	"time"

	"gorm.io/datatypes"
)

// OrderItem 订单台账行（按变体拆分的成交记录）
// Revenue 保留上游的字符串金额原文，解析失败时降级为零收入而不是丢行
type OrderItem struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ShopID  string `gorm:"column:shop_id;type:varchar(64);not null;index:idx_shop_created"`
	OrderID string `gorm:"column:order_id;type:varchar(64);not null"`

	VariantID    string `gorm:"column:variant_id;type:varchar(64);not null;index:idx_variant"`
	VariantTitle string `gorm:"column:variant_title;type:varchar(512);not null"`

	Currency string `gorm:"column:currency;type:varchar(8)"`
	Revenue  string `gorm:"column:revenue;type:varchar(32)"`

	RawData datatypes.JSON `gorm:"column:raw_data;type:json"`

	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_shop_created"`
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
