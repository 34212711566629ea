package model

import "time"

// Student 学员模型
type Student struct {
	StudentID string    `gorm:"primaryKey;column:student_id"`
	UserID    string    `gorm:"column:user_id;not null;index:idx_user_id"`
	IDType    string    `gorm:"column:id_type"`
	IDName    string    `gorm:"column:id_name"`
	IDNumber  string    `gorm:"column:id_number"`
	Birthday  time.Time `gorm:"column:birthday"`
	Gender    string    `gorm:"column:gender"`
	Status    int       `gorm:"column:status;default:1"` // 1正常 0禁用
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Student) TableName() string { return "student" }
