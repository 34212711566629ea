package data

import (
	"context"
	"errors"
	"time"

	"xinyuan_tech/booking-service/internal/biz"
	"xinyuan_tech/booking-service/internal/constants"
	"xinyuan_tech/booking-service/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
)

// orderRepo 订单仓库实现
type orderRepo struct {
	data *Data
	log  *log.Helper
}

// NewOrderRepo 创建订单仓库
func NewOrderRepo(data *Data, logger log.Logger) biz.OrderRepo {
	return &orderRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func toOrderBiz(m *model.CourseOrder) *biz.Order {
	return &biz.Order{
		ID:             m.OrderID,
		OrderNo:        m.OrderNo,
		UserID:         m.UserID,
		CourseID:       m.CourseID,
		TotalAmount:    m.TotalAmount,
		DiscountAmount: m.DiscountAmount,
		PayAmount:      m.PayAmount,
		CouponID:       m.CouponID,
		Status:         m.Status,
		PayTime:        m.PayTime,
		ExpireAt:       m.ExpireAt,
		RefundTime:     m.RefundTime,
		RefundAmount:   m.RefundAmount,
		Remark:         m.Remark,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toOrderModel(o *biz.Order) *model.CourseOrder {
	return &model.CourseOrder{
		OrderID:        o.ID,
		OrderNo:        o.OrderNo,
		UserID:         o.UserID,
		CourseID:       o.CourseID,
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		PayAmount:      o.PayAmount,
		CouponID:       o.CouponID,
		Status:         o.Status,
		PayTime:        o.PayTime,
		ExpireAt:       o.ExpireAt,
		RefundTime:     o.RefundTime,
		RefundAmount:   o.RefundAmount,
		Remark:         o.Remark,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// CreateOrder 创建订单
func (r *orderRepo) CreateOrder(ctx context.Context, order *biz.Order) error {
	if err := r.data.DB(ctx).Create(toOrderModel(order)).Error; err != nil {
		r.log.Errorf("Failed to create order: %v", err)
		return err
	}
	return nil
}

// GetOrder 根据ID获取订单
func (r *orderRepo) GetOrder(ctx context.Context, id string) (*biz.Order, error) {
	var m model.CourseOrder
	err := r.data.DB(ctx).First(&m, "order_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Errorf("Failed to get order %s: %v", id, err)
		return nil, err
	}
	return toOrderBiz(&m), nil
}

// TransitionOrder 条件状态转移
// WHERE 条件带当前状态,REPEATABLE READ 下快照过时的写者在这里落败
func (r *orderRepo) TransitionOrder(ctx context.Context, order *biz.Order, from string) (bool, error) {
	res := r.data.DB(ctx).Model(&model.CourseOrder{}).
		Where("order_id = ? AND status = ?", order.ID, from).
		Updates(map[string]interface{}{
			"status":        order.Status,
			"pay_time":      order.PayTime,
			"refund_time":   order.RefundTime,
			"refund_amount": order.RefundAmount,
			"remark":        order.Remark,
			"updated_at":    order.UpdatedAt,
		})
	if res.Error != nil {
		r.log.Errorf("Failed to transition order %s from %s to %s: %v", order.ID, from, order.Status, res.Error)
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListOrdersByUser 获取用户订单列表(状态过滤+分页)
func (r *orderRepo) ListOrdersByUser(ctx context.Context, userID, status string, page, pageSize int) ([]*biz.Order, int, error) {
	var models []model.CourseOrder
	var total int64

	query := r.data.DB(ctx).Model(&model.CourseOrder{}).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&models).Error; err != nil {
		r.log.Errorf("Failed to list orders for user %s: %v", userID, err)
		return nil, 0, err
	}

	orders := make([]*biz.Order, len(models))
	for i := range models {
		orders[i] = toOrderBiz(&models[i])
	}
	return orders, int(total), nil
}

// ListOrders 获取所有订单(管理端分页)
func (r *orderRepo) ListOrders(ctx context.Context, page, pageSize int) ([]*biz.Order, int, error) {
	var models []model.CourseOrder
	var total int64

	query := r.data.DB(ctx).Model(&model.CourseOrder{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&models).Error; err != nil {
		r.log.Errorf("Failed to list orders: %v", err)
		return nil, 0, err
	}

	orders := make([]*biz.Order, len(models))
	for i := range models {
		orders[i] = toOrderBiz(&models[i])
	}
	return orders, int(total), nil
}

// ExpireStaleOrders 批量过期超时未支付订单
// WHERE 条件带 status=pending,与懒惰过期并发执行也不会覆盖已支付订单
func (r *orderRepo) ExpireStaleOrders(ctx context.Context) (int, error) {
	now := time.Now()
	res := r.data.DB(ctx).Model(&model.CourseOrder{}).
		Where("status = ? AND expire_at < ?", constants.OrderStatusPending, now).
		Updates(map[string]interface{}{
			"status":     constants.OrderStatusExpired,
			"updated_at": now,
		})
	if res.Error != nil {
		r.log.Errorf("Failed to expire stale orders: %v", res.Error)
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}
