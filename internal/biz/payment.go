package biz

import (
	"context"
	"time"

	"xinyuan_tech/booking-service/internal/conf"
	"xinyuan_tech/booking-service/internal/constants"
	"xinyuan_tech/booking-service/internal/errors"

	"github.com/go-kratos/kratos/v2/log"
)

// Payment 支付记录
// 一个订单同一时刻最多一条 pending 支付记录在结算中被消费;
// 重试预支付产生的多余 pending 记录视为被后续记录取代
type Payment struct {
	ID            string
	OrderID       string
	TransactionID string // 外部支付交易号
	Amount        float64
	Status        string // pending, success, failed
	PayTime       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PaymentRepo 支付记录仓库接口
type PaymentRepo interface {
	CreatePayment(ctx context.Context, payment *Payment) error
	// GetPendingByOrder 查询订单当前待支付的支付记录,不存在时返回 (nil, nil)
	GetPendingByOrder(ctx context.Context, orderID string) (*Payment, error)
	UpdatePayment(ctx context.Context, payment *Payment) error
}

// PrepayParams 预支付参数(客户端据此拉起支付商收银台)
type PrepayParams struct {
	PrepayID  string
	Timestamp string
	NonceStr  string
	Sign      string
}

// PaymentGateway 支付网关接口 (防腐层)
// 生产环境对接真实支付商;本仓库内置确定性模拟实现
type PaymentGateway interface {
	CreatePrepay(ctx context.Context, payment *Payment, order *Order) (*PrepayParams, error)
}

// PaymentUsecase 支付业务逻辑
type PaymentUsecase struct {
	tx          Transaction
	orderRepo   OrderRepo
	paymentRepo PaymentRepo
	enrollRepo  CourseStudentRepo
	courseRepo  CourseRepo
	gateway     PaymentGateway
	gwTimeout   time.Duration
	log         *log.Helper
}

// NewPaymentUsecase 创建支付业务用例
func NewPaymentUsecase(
	tx Transaction,
	orderRepo OrderRepo,
	paymentRepo PaymentRepo,
	enrollRepo CourseStudentRepo,
	courseRepo CourseRepo,
	gateway PaymentGateway,
	c *conf.Bootstrap,
	logger log.Logger,
) *PaymentUsecase {
	var gw *conf.PaymentGateway
	if c != nil && c.Client != nil {
		gw = c.Client.PaymentGateway
	}
	return &PaymentUsecase{
		tx:          tx,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		enrollRepo:  enrollRepo,
		courseRepo:  courseRepo,
		gateway:     gateway,
		gwTimeout:   gw.ParseTimeout(),
		log:         log.NewHelper(logger),
	}
}

// CreatePrepay 创建预支付订单
// 网关调用带超时且不在数据库事务内进行:
// 超时/失败返回可重试错误,订单保持 pending,支付记录保持 pending
func (uc *PaymentUsecase) CreatePrepay(ctx context.Context, userID, orderID string) (*PrepayParams, error) {
	uc.log.Infof("CreatePrepay: order=%s, user=%s", orderID, userID)

	order, err := uc.orderRepo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.ErrOrderNotFound()
	}
	if order.UserID != userID {
		return nil, errors.ErrOrderNotBelong()
	}
	if order.Status != constants.OrderStatusPending {
		return nil, errors.ErrOrderCannotPay()
	}

	// 超期订单先落盘过期状态再拒绝支付;条件更新落败说明订单已被并发转移,同样不可支付
	if order.IsExpired(time.Now()) {
		order.Status = constants.OrderStatusExpired
		order.UpdatedAt = time.Now()
		if err := uc.tx.Exec(ctx, func(ctx context.Context) error {
			_, err := uc.orderRepo.TransitionOrder(ctx, order, constants.OrderStatusPending)
			return err
		}); err != nil {
			return nil, err
		}
		return nil, errors.ErrOrderExpired()
	}

	now := time.Now()
	payment := &Payment{
		ID:        NewID(),
		OrderID:   order.ID,
		Amount:    order.PayAmount,
		Status:    constants.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.tx.Exec(ctx, func(ctx context.Context) error {
		return uc.paymentRepo.CreatePayment(ctx, payment)
	}); err != nil {
		return nil, err
	}

	gctx, cancel := context.WithTimeout(ctx, uc.gwTimeout)
	defer cancel()
	params, err := uc.gateway.CreatePrepay(gctx, payment, order)
	if err != nil {
		uc.log.Errorf("Payment gateway prepay failed for order %s: %v", orderID, err)
		return nil, errors.ErrPaymentGatewayFailed()
	}
	return params, nil
}

// HandlePaymentCallback 处理支付回调(结算)
// 要求订单 pending 且存在 pending 支付记录,否则视为重复回调直接返回 false;
// 支付记录、订单、课程学员关联、课程名额在同一事务内完成转移,
// enrolled_count 只在这里增加
func (uc *PaymentUsecase) HandlePaymentCallback(ctx context.Context, orderID, transactionID string) (bool, error) {
	uc.log.Infof("HandlePaymentCallback: order=%s, transaction=%s", orderID, transactionID)

	settled := false
	err := uc.tx.Exec(ctx, func(ctx context.Context) error {
		order, err := uc.orderRepo.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return nil
		}
		if order.Status != constants.OrderStatusPending {
			// 幂等:订单已被结算或已进入终态,重复回调不产生效果
			return nil
		}

		payment, err := uc.paymentRepo.GetPendingByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if payment == nil {
			return nil
		}

		enrollments, err := uc.enrollRepo.ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}

		// 锁课程行并复核名额:多个并发待支付订单可能合计超过上限,
		// 真正的容量约束在结算时兜底
		course, err := uc.courseRepo.GetCourseForUpdate(ctx, order.CourseID)
		if err != nil {
			return err
		}
		if course == nil {
			return errors.ErrCourseNotFound()
		}

		if course.EnrolledCount+len(enrollments) > course.MaxStudents {
			return errors.ErrCourseFull()
		}

		// 条件转移是结算的串行化点:事务快照里读到的 pending 可能已经过时,
		// 并发的重复回调/取消/过期只有一个写者能把订单转走,落败即视为重复回调
		now := time.Now()
		order.Status = constants.OrderStatusPaid
		order.PayTime = &now
		order.UpdatedAt = now
		ok, err := uc.orderRepo.TransitionOrder(ctx, order, constants.OrderStatusPending)
		if err != nil {
			return err
		}
		if !ok {
			uc.log.Infof("Order %s already transitioned, skip duplicate callback", orderID)
			return nil
		}

		payment.Status = constants.PaymentStatusSuccess
		payment.TransactionID = transactionID
		payment.PayTime = &now
		payment.UpdatedAt = now
		if err := uc.paymentRepo.UpdatePayment(ctx, payment); err != nil {
			return err
		}

		if err := uc.enrollRepo.UpdateStatusByOrder(ctx, orderID, constants.EnrollmentStatusActive); err != nil {
			return err
		}

		if len(enrollments) > 0 {
			if err := uc.courseRepo.IncrEnrolledCount(ctx, order.CourseID, len(enrollments)); err != nil {
				return err
			}
		}

		settled = true
		return nil
	})
	if err != nil {
		uc.log.Errorf("Failed to settle order %s: %v", orderID, err)
		return false, err
	}

	if settled {
		uc.log.Infof("Order %s settled with transaction %s", orderID, transactionID)
	}
	return settled, nil
}
