package service

import (
	"context"

	"xinyuan_tech/booking-service/internal/auth"
	"xinyuan_tech/booking-service/internal/biz"

	"github.com/go-kratos/kratos/v2/errors"
)

// PaymentService 支付服务
type PaymentService struct {
	uc *biz.PaymentUsecase
}

// NewPaymentService 创建支付服务
func NewPaymentService(uc *biz.PaymentUsecase) *PaymentService {
	return &PaymentService{uc: uc}
}

// CreatePrepayRequest 预支付请求
type CreatePrepayRequest struct {
	OrderID string `json:"order_id"`
}

// Validate 请求参数校验
func (r *CreatePrepayRequest) Validate() error {
	if r.OrderID == "" {
		return errors.BadRequest("INVALID_PARAM", "order_id is required")
	}
	return nil
}

// CreatePrepayReply 预支付响应
type CreatePrepayReply struct {
	PrepayID  string `json:"prepay_id"`
	Timestamp string `json:"timestamp"`
	NonceStr  string `json:"nonce_str"`
	Sign      string `json:"sign"`
}

// CreatePrepay 创建预支付订单
func (s *PaymentService) CreatePrepay(ctx context.Context, req *CreatePrepayRequest) (*CreatePrepayReply, error) {
	uid, err := auth.RequireUID(ctx)
	if err != nil {
		return nil, err
	}

	params, err := s.uc.CreatePrepay(ctx, uid, req.OrderID)
	if err != nil {
		return nil, err
	}
	return &CreatePrepayReply{
		PrepayID:  params.PrepayID,
		Timestamp: params.Timestamp,
		NonceStr:  params.NonceStr,
		Sign:      params.Sign,
	}, nil
}

// PaymentCallbackRequest 支付回调请求
type PaymentCallbackRequest struct {
	OrderID       string `json:"order_id"`
	TransactionID string `json:"transaction_id"`
}

// Validate 请求参数校验
func (r *PaymentCallbackRequest) Validate() error {
	if r.OrderID == "" {
		return errors.BadRequest("INVALID_PARAM", "order_id is required")
	}
	if r.TransactionID == "" {
		return errors.BadRequest("INVALID_PARAM", "transaction_id is required")
	}
	return nil
}

// PaymentCallbackReply 支付回调响应
type PaymentCallbackReply struct {
	Success bool `json:"success"`
}

// HandleCallback 处理支付回调
// 回调来自支付网关,不要求用户身份;重复回调返回 success=false
func (s *PaymentService) HandleCallback(ctx context.Context, req *PaymentCallbackRequest) (*PaymentCallbackReply, error) {
	settled, err := s.uc.HandlePaymentCallback(ctx, req.OrderID, req.TransactionID)
	if err != nil {
		return nil, err
	}
	return &PaymentCallbackReply{Success: settled}, nil
}
