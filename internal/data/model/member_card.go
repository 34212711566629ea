package model

import "time"

// MemberCard 会员卡模型
type MemberCard struct {
	MemberCardID string    `gorm:"primaryKey;column:member_card_id"`
	Name         string    `gorm:"column:name"`
	Description  string    `gorm:"column:description"`
	Price        float64   `gorm:"column:price"`
	DurationDays int       `gorm:"column:duration_days"`
	SortOrder    int       `gorm:"column:sort_order;default:0"`
	Status       int       `gorm:"column:status;default:1"` // 1上架 0下架
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (MemberCard) TableName() string { return "member_card" }
