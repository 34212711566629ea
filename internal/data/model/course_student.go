package model

import "time"

// CourseStudent 课程学员关联模型
// 已退款记录保留在表中,(course_id, student_id) 不能做唯一索引,
// 重复报名靠课程行锁内的查重保证
type CourseStudent struct {
	CourseStudentID string    `gorm:"primaryKey;column:course_student_id"`
	CourseID        string    `gorm:"column:course_id;not null;index:idx_course_student,priority:1;index:idx_course_id"`
	StudentID       string    `gorm:"column:student_id;not null;index:idx_course_student,priority:2;index:idx_student_id"`
	OrderID         string    `gorm:"column:order_id;not null;index:idx_order_id"`
	Price           float64   `gorm:"column:price"`
	IsNewUser       int       `gorm:"column:is_new_user;default:0"`
	Status          string    `gorm:"column:status"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (CourseStudent) TableName() string { return "course_student" }
