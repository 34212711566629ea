package model

import "time"

// UserMember 用户会员记录模型
type UserMember struct {
	UserMemberID string    `gorm:"primaryKey;column:user_member_id"`
	UserID       string    `gorm:"column:user_id;not null;index:idx_user_id"`
	CardID       string    `gorm:"column:card_id;not null"`
	OrderID      string    `gorm:"column:order_id"`
	StartAt      time.Time `gorm:"column:start_at"`
	ExpireAt     time.Time `gorm:"column:expire_at;index:idx_expire_at"`
	Status       int       `gorm:"column:status;default:1"` // 1正常 0已过期
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (UserMember) TableName() string { return "user_member" }
