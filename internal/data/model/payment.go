package model

import "time"

// Payment 支付记录模型
type Payment struct {
	PaymentID     string     `gorm:"primaryKey;column:payment_id"`
	OrderID       string     `gorm:"column:order_id;not null;index:idx_order_id"`
	TransactionID string     `gorm:"column:transaction_id;index:idx_transaction_id"`
	Amount        float64    `gorm:"column:amount"`
	Status        string     `gorm:"column:status"`
	PayTime       *time.Time `gorm:"column:pay_time"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (Payment) TableName() string { return "payment" }
