package service

import (
	"context"

	"xinyuan_tech/booking-service/internal/auth"
	"xinyuan_tech/booking-service/internal/biz"

	"github.com/go-kratos/kratos/v2/errors"
)

// OrderService 订单服务
type OrderService struct {
	uc *biz.OrderUsecase
}

// NewOrderService 创建订单服务
func NewOrderService(uc *biz.OrderUsecase) *OrderService {
	return &OrderService{uc: uc}
}

// OrderReply 订单响应
type OrderReply struct {
	OrderID        string  `json:"order_id"`
	OrderNo        string  `json:"order_no"`
	UserID         string  `json:"user_id"`
	CourseID       string  `json:"course_id"`
	TotalAmount    float64 `json:"total_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	PayAmount      float64 `json:"pay_amount"`
	CouponID       string  `json:"coupon_id,omitempty"`
	Status         string  `json:"status"`
	PayTime        int64   `json:"pay_time,omitempty"`
	ExpireAt       int64   `json:"expire_at"`
	RefundTime     int64   `json:"refund_time,omitempty"`
	RefundAmount   float64 `json:"refund_amount"`
	Remark         string  `json:"remark,omitempty"`
	CreatedAt      int64   `json:"created_at"`
}

func toOrderReply(o *biz.Order) *OrderReply {
	reply := &OrderReply{
		OrderID:        o.ID,
		OrderNo:        o.OrderNo,
		UserID:         o.UserID,
		CourseID:       o.CourseID,
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		PayAmount:      o.PayAmount,
		CouponID:       o.CouponID,
		Status:         o.Status,
		ExpireAt:       o.ExpireAt.Unix(),
		RefundAmount:   o.RefundAmount,
		Remark:         o.Remark,
		CreatedAt:      o.CreatedAt.Unix(),
	}
	if o.PayTime != nil {
		reply.PayTime = o.PayTime.Unix()
	}
	if o.RefundTime != nil {
		reply.RefundTime = o.RefundTime.Unix()
	}
	return reply
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	CourseID   string   `json:"course_id"`
	StudentIDs []string `json:"student_ids"`
	CouponID   string   `json:"coupon_id"`
}

// Validate 请求参数校验
func (r *CreateOrderRequest) Validate() error {
	if r.CourseID == "" {
		return errors.BadRequest("INVALID_PARAM", "course_id is required")
	}
	if len(r.StudentIDs) == 0 {
		return errors.BadRequest("INVALID_PARAM", "student_ids must not be empty")
	}
	seen := make(map[string]struct{}, len(r.StudentIDs))
	for _, id := range r.StudentIDs {
		if id == "" {
			return errors.BadRequest("INVALID_PARAM", "student_ids must not contain empty id")
		}
		if _, ok := seen[id]; ok {
			return errors.BadRequest("INVALID_PARAM", "student_ids must not contain duplicates")
		}
		seen[id] = struct{}{}
	}
	return nil
}

// CreateOrder 创建订单
func (s *OrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*OrderReply, error) {
	uid, err := auth.RequireUID(ctx)
	if err != nil {
		return nil, err
	}

	order, err := s.uc.CreateOrder(ctx, uid, req.CourseID, req.StudentIDs, req.CouponID)
	if err != nil {
		return nil, err
	}
	return toOrderReply(order), nil
}

// GetOrderRequest 订单详情请求
type GetOrderRequest struct {
	OrderID string `json:"order_id" form:"order_id"`
}

// GetOrder 获取订单详情
func (s *OrderService) GetOrder(ctx context.Context, req *GetOrderRequest) (*OrderReply, error) {
	uid, err := auth.RequireUID(ctx)
	if err != nil {
		return nil, err
	}
	// 管理员可以查看任意订单
	if auth.IsAdmin(ctx) {
		uid = ""
	}

	order, err := s.uc.GetOrder(ctx, req.OrderID, uid)
	if err != nil {
		return nil, err
	}
	return toOrderReply(order), nil
}

// ListOrdersRequest 订单列表请求
type ListOrdersRequest struct {
	Status   string `json:"status" form:"status"`
	Page     int    `json:"page" form:"page"`
	PageSize int    `json:"page_size" form:"page_size"`
}

// ListOrdersReply 订单列表响应
type ListOrdersReply struct {
	Orders []*OrderReply `json:"orders"`
	Total  int           `json:"total"`
}

// ListOrders 获取当前用户的订单列表
func (s *OrderService) ListOrders(ctx context.Context, req *ListOrdersRequest) (*ListOrdersReply, error) {
	uid, err := auth.RequireUID(ctx)
	if err != nil {
		return nil, err
	}

	orders, total, err := s.uc.ListOrders(ctx, uid, req.Status, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	replies := make([]*OrderReply, len(orders))
	for i, o := range orders {
		replies[i] = toOrderReply(o)
	}
	return &ListOrdersReply{Orders: replies, Total: total}, nil
}

// ListAllOrders 获取所有订单(管理端)
func (s *OrderService) ListAllOrders(ctx context.Context, req *ListOrdersRequest) (*ListOrdersReply, error) {
	if err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	orders, total, err := s.uc.ListAllOrders(ctx, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	replies := make([]*OrderReply, len(orders))
	for i, o := range orders {
		replies[i] = toOrderReply(o)
	}
	return &ListOrdersReply{Orders: replies, Total: total}, nil
}

// CancelOrderRequest 取消订单请求
type CancelOrderRequest struct {
	OrderID string `json:"order_id" form:"order_id"`
}

// CancelOrder 取消订单
func (s *OrderService) CancelOrder(ctx context.Context, req *CancelOrderRequest) (*OrderReply, error) {
	uid, err := auth.RequireUID(ctx)
	if err != nil {
		return nil, err
	}

	order, err := s.uc.CancelOrder(ctx, req.OrderID, uid)
	if err != nil {
		return nil, err
	}
	return toOrderReply(order), nil
}

// RequestRefundRequest 申请退款请求
type RequestRefundRequest struct {
	OrderID string `json:"order_id" form:"order_id"`
	Reason  string `json:"reason"`
}

// RequestRefund 申请退款
func (s *OrderService) RequestRefund(ctx context.Context, req *RequestRefundRequest) (*OrderReply, error) {
	uid, err := auth.RequireUID(ctx)
	if err != nil {
		return nil, err
	}

	order, err := s.uc.RequestRefund(ctx, req.OrderID, uid, req.Reason)
	if err != nil {
		return nil, err
	}
	return toOrderReply(order), nil
}

// ProcessRefundRequest 处理退款请求(管理端)
type ProcessRefundRequest struct {
	OrderID string `json:"order_id" form:"order_id"`
}

// ProcessRefund 处理退款(管理端)
func (s *OrderService) ProcessRefund(ctx context.Context, req *ProcessRefundRequest) (*OrderReply, error) {
	if err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	order, err := s.uc.ProcessRefund(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	return toOrderReply(order), nil
}
