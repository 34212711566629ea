package data

import (
	"context"
	"errors"

	"xinyuan_tech/booking-service/internal/biz"
	"xinyuan_tech/booking-service/internal/constants"
	"xinyuan_tech/booking-service/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
)

// paymentRepo 支付记录仓库实现
type paymentRepo struct {
	data *Data
	log  *log.Helper
}

// NewPaymentRepo 创建支付记录仓库
func NewPaymentRepo(data *Data, logger log.Logger) biz.PaymentRepo {
	return &paymentRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func toPaymentBiz(m *model.Payment) *biz.Payment {
	return &biz.Payment{
		ID:            m.PaymentID,
		OrderID:       m.OrderID,
		TransactionID: m.TransactionID,
		Amount:        m.Amount,
		Status:        m.Status,
		PayTime:       m.PayTime,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toPaymentModel(p *biz.Payment) *model.Payment {
	return &model.Payment{
		PaymentID:     p.ID,
		OrderID:       p.OrderID,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Status:        p.Status,
		PayTime:       p.PayTime,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// CreatePayment 创建支付记录
func (r *paymentRepo) CreatePayment(ctx context.Context, payment *biz.Payment) error {
	if err := r.data.DB(ctx).Create(toPaymentModel(payment)).Error; err != nil {
		r.log.Errorf("Failed to create payment: %v", err)
		return err
	}
	return nil
}

// GetPendingByOrder 查询订单当前待支付的支付记录
// 重试预支付会留下多条 pending 记录,取最新一条
func (r *paymentRepo) GetPendingByOrder(ctx context.Context, orderID string) (*biz.Payment, error) {
	var m model.Payment
	err := r.data.DB(ctx).
		Where("order_id = ? AND status = ?", orderID, constants.PaymentStatusPending).
		Order("created_at DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Errorf("Failed to get pending payment for order %s: %v", orderID, err)
		return nil, err
	}
	return toPaymentBiz(&m), nil
}

// UpdatePayment 更新支付记录
func (r *paymentRepo) UpdatePayment(ctx context.Context, payment *biz.Payment) error {
	if err := r.data.DB(ctx).Save(toPaymentModel(payment)).Error; err != nil {
		r.log.Errorf("Failed to update payment %s: %v", payment.ID, err)
		return err
	}
	return nil
}
