package model

import "time"

// CourseOrder 订单模型
type CourseOrder struct {
	OrderID        string     `gorm:"primaryKey;column:order_id"`
	OrderNo        string     `gorm:"column:order_no;uniqueIndex:uk_order_no"`
	UserID         string     `gorm:"column:user_id;not null;index:idx_user_id"`
	CourseID       string     `gorm:"column:course_id;not null;index:idx_course_id"`
	TotalAmount    float64    `gorm:"column:total_amount"`
	DiscountAmount float64    `gorm:"column:discount_amount;default:0"`
	PayAmount      float64    `gorm:"column:pay_amount"`
	CouponID       string     `gorm:"column:coupon_id"`
	Status         string     `gorm:"column:status;index:idx_status"`
	PayTime        *time.Time `gorm:"column:pay_time"`
	ExpireAt       time.Time  `gorm:"column:expire_at"`
	RefundTime     *time.Time `gorm:"column:refund_time"`
	RefundAmount   float64    `gorm:"column:refund_amount;default:0"`
	Remark         string     `gorm:"column:remark"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (CourseOrder) TableName() string { return "course_order" }
