package biz

import (
	"context"
	"time"

	"xinyuan_tech/booking-service/internal/constants"
	"xinyuan_tech/booking-service/internal/errors"

	"github.com/go-kratos/kratos/v2/log"
)

// Order 订单(一次为一个或多个学员报名同一课程的交易)
type Order struct {
	ID             string
	OrderNo        string
	UserID         string
	CourseID       string
	TotalAmount    float64
	DiscountAmount float64
	PayAmount      float64 // = TotalAmount - DiscountAmount
	CouponID       string  // 优惠券ID,透传保存,未接入优惠券系统
	Status         string  // pending, paid, cancelled, expired, refunding, refunded
	PayTime        *time.Time
	ExpireAt       time.Time
	RefundTime     *time.Time
	RefundAmount   float64
	Remark         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsExpired 订单是否已超过支付有效期
func (o *Order) IsExpired(now time.Time) bool {
	return o.Status == constants.OrderStatusPending && now.After(o.ExpireAt)
}

// OrderRepo 订单仓库接口
// 订单不做物理删除,终态记录保留作为审计痕迹
type OrderRepo interface {
	CreateOrder(ctx context.Context, order *Order) error
	// GetOrder 不存在时返回 (nil, nil)
	GetOrder(ctx context.Context, id string) (*Order, error)
	// TransitionOrder 条件更新:仅当订单当前状态为 from 时写入,返回是否生效。
	// 事务快照里读到的状态可能已经过时,所有状态转移必须走这里,
	// 并发的结算/取消/过期之间只有一个写者能赢
	TransitionOrder(ctx context.Context, order *Order, from string) (bool, error)
	ListOrdersByUser(ctx context.Context, userID, status string, page, pageSize int) ([]*Order, int, error)
	ListOrders(ctx context.Context, page, pageSize int) ([]*Order, int, error)
	// ExpireStaleOrders 批量将超过支付有效期的待支付订单置为过期
	ExpireStaleOrders(ctx context.Context) (int, error)
}

// OrderUsecase 订单业务逻辑
// 订单状态机: pending -> {paid, cancelled, expired}; paid -> refunding -> refunded
// 所有状态转移单向,创建/结算/退款均在单个事务内完成
type OrderUsecase struct {
	tx          Transaction
	courseRepo  CourseRepo
	studentRepo StudentRepo
	enrollRepo  CourseStudentRepo
	orderRepo   OrderRepo
	member      *MemberUsecase
	log         *log.Helper
}

// NewOrderUsecase 创建订单业务用例
func NewOrderUsecase(
	tx Transaction,
	courseRepo CourseRepo,
	studentRepo StudentRepo,
	enrollRepo CourseStudentRepo,
	orderRepo OrderRepo,
	member *MemberUsecase,
	logger log.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		tx:          tx,
		courseRepo:  courseRepo,
		studentRepo: studentRepo,
		enrollRepo:  enrollRepo,
		orderRepo:   orderRepo,
		member:      member,
		log:         log.NewHelper(logger),
	}
}

// CreateOrder 创建订单
// 课程行加锁后完成报名校验、名额校验和订单/关联写入,
// 防止并发下单同一 (course, student) 双双通过校验
func (uc *OrderUsecase) CreateOrder(ctx context.Context, userID, courseID string, studentIDs []string, couponID string) (*Order, error) {
	uc.log.Infof("CreateOrder: user=%s, course=%s, students=%d", userID, courseID, len(studentIDs))

	var order *Order
	err := uc.tx.Exec(ctx, func(ctx context.Context) error {
		// 1. 加锁读取课程,后续校验与写入基于同一事务快照
		course, err := uc.courseRepo.GetCourseForUpdate(ctx, courseID)
		if err != nil {
			return err
		}
		if course == nil {
			return errors.ErrCourseNotFound()
		}

		// 2. 课程状态校验
		if !course.Enrollable() {
			return errors.ErrCourseNotEnrolling()
		}

		// 3. 学员归属校验
		for _, studentID := range studentIDs {
			student, err := uc.studentRepo.GetStudent(ctx, studentID)
			if err != nil {
				return err
			}
			if student == nil || student.UserID != userID {
				return errors.ErrStudentNotFound()
			}
		}

		// 4. 重复报名校验(排除已取消和已退款的记录)
		existing, err := uc.enrollRepo.FindActiveByCourse(ctx, courseID, studentIDs)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return errors.ErrStudentAlreadyEnrolled()
		}

		// 5. 名额校验
		// 待支付订单不占用 enrolled_count,名额在支付结算时才真正消耗
		if course.EnrolledCount+len(studentIDs) > course.MaxStudents {
			return errors.ErrCourseFull()
		}

		// 6. 会员价判断
		isMember, err := uc.member.HasActiveMembership(ctx, userID)
		if err != nil {
			return err
		}
		unitPrice := course.Price
		if isMember {
			unitPrice = course.MemberPrice
		}

		// 7. 计算金额
		totalAmount := unitPrice * float64(len(studentIDs))
		discountAmount := 0.0
		payAmount := totalAmount - discountAmount

		// 8. 创建订单
		now := time.Now()
		order = &Order{
			ID:             NewID(),
			OrderNo:        NewOrderNo(),
			UserID:         userID,
			CourseID:       courseID,
			TotalAmount:    totalAmount,
			DiscountAmount: discountAmount,
			PayAmount:      payAmount,
			CouponID:       couponID,
			Status:         constants.OrderStatusPending,
			ExpireAt:       now.Add(constants.OrderExpireTTL),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := uc.orderRepo.CreateOrder(ctx, order); err != nil {
			return err
		}

		// 9. 创建课程学员关联
		for _, studentID := range studentIDs {
			cs := &CourseStudent{
				ID:        NewID(),
				CourseID:  courseID,
				StudentID: studentID,
				OrderID:   order.ID,
				Price:     unitPrice,
				IsNewUser: 0,
				Status:    constants.EnrollmentStatusPending,
				CreatedAt: now,
			}
			if err := uc.enrollRepo.CreateCourseStudent(ctx, cs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Errorf("Failed to create order for user %s: %v", userID, err)
		return nil, err
	}

	uc.log.Infof("Created order %s (%s) for user %s", order.ID, order.OrderNo, userID)
	return order, nil
}

// GetOrder 获取订单详情
// userID 为空时跳过归属校验(管理端);读到已超期的待支付订单时先落盘过期状态
func (uc *OrderUsecase) GetOrder(ctx context.Context, orderID, userID string) (*Order, error) {
	order, err := uc.orderRepo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.ErrOrderNotFound()
	}
	if userID != "" && order.UserID != userID {
		return nil, errors.ErrOrderNotBelong()
	}

	if order.IsExpired(time.Now()) {
		flipped, err := uc.expireOrder(ctx, order)
		if err != nil {
			return nil, err
		}
		if !flipped {
			// 并发写路径已把订单改走其他状态,返回最新落盘状态
			order, err = uc.orderRepo.GetOrder(ctx, orderID)
			if err != nil {
				return nil, err
			}
			if order == nil {
				return nil, errors.ErrOrderNotFound()
			}
		}
	}
	return order, nil
}

// expireOrder 将超期的待支付订单置为过期(独立事务,不随调用方失败回滚)
// 条件更新:快照里的 pending 可能已被并发结算/取消消费,此时不落盘
func (uc *OrderUsecase) expireOrder(ctx context.Context, order *Order) (bool, error) {
	order.Status = constants.OrderStatusExpired
	order.UpdatedAt = time.Now()
	var flipped bool
	err := uc.tx.Exec(ctx, func(ctx context.Context) error {
		var err error
		flipped, err = uc.orderRepo.TransitionOrder(ctx, order, constants.OrderStatusPending)
		return err
	})
	if err != nil {
		return false, err
	}
	if flipped {
		uc.log.Infof("Order %s passed expire_at, flipped to expired", order.ID)
	}
	return flipped, nil
}

// flipExpiredInList 列表读取路径的懒惰过期,逐单条件落盘
func (uc *OrderUsecase) flipExpiredInList(ctx context.Context, orders []*Order) error {
	now := time.Now()
	for i, o := range orders {
		if !o.IsExpired(now) {
			continue
		}
		flipped, err := uc.expireOrder(ctx, o)
		if err != nil {
			return err
		}
		if !flipped {
			fresh, err := uc.orderRepo.GetOrder(ctx, o.ID)
			if err != nil {
				return err
			}
			if fresh != nil {
				orders[i] = fresh
			}
		}
	}
	return nil
}

// ListOrders 获取当前用户的订单列表
func (uc *OrderUsecase) ListOrders(ctx context.Context, userID, status string, page, pageSize int) ([]*Order, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > constants.MaxPageSize {
		pageSize = constants.DefaultPageSize
	}
	orders, total, err := uc.orderRepo.ListOrdersByUser(ctx, userID, status, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.flipExpiredInList(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListAllOrders 获取所有订单(管理端)
func (uc *OrderUsecase) ListAllOrders(ctx context.Context, page, pageSize int) ([]*Order, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > constants.MaxPageSize {
		pageSize = constants.DefaultPageSize
	}
	orders, total, err := uc.orderRepo.ListOrders(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.flipExpiredInList(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// CancelOrder 取消订单(仅待支付状态)
// 删除课程学员关联记录,允许学员后续重新报名;
// 待支付订单从未占用名额,enrolled_count 不变
func (uc *OrderUsecase) CancelOrder(ctx context.Context, orderID, userID string) (*Order, error) {
	uc.log.Infof("CancelOrder: order=%s, user=%s", orderID, userID)

	var order *Order
	err := uc.tx.Exec(ctx, func(ctx context.Context) error {
		var err error
		order, err = uc.orderRepo.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return errors.ErrOrderNotFound()
		}
		if order.UserID != userID {
			return errors.ErrOrderNotBelong()
		}
		if order.Status != constants.OrderStatusPending {
			return errors.ErrOrderCannotCancel()
		}

		order.Status = constants.OrderStatusCancelled
		order.UpdatedAt = time.Now()
		ok, err := uc.orderRepo.TransitionOrder(ctx, order, constants.OrderStatusPending)
		if err != nil {
			return err
		}
		if !ok {
			// 快照过时:并发结算或过期已抢先转移
			return errors.ErrOrderCannotCancel()
		}
		return uc.enrollRepo.DeleteByOrder(ctx, orderID)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Order %s cancelled", orderID)
	return order, nil
}

// RequestRefund 申请退款(已支付 -> 退款中)
// 只记录意向与原因,资金在管理端处理退款时才变动
func (uc *OrderUsecase) RequestRefund(ctx context.Context, orderID, userID, reason string) (*Order, error) {
	uc.log.Infof("RequestRefund: order=%s, user=%s", orderID, userID)

	var order *Order
	err := uc.tx.Exec(ctx, func(ctx context.Context) error {
		var err error
		order, err = uc.orderRepo.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return errors.ErrOrderNotFound()
		}
		if order.UserID != userID {
			return errors.ErrOrderNotBelong()
		}
		if order.Status != constants.OrderStatusPaid {
			return errors.ErrOrderCannotRefund()
		}

		order.Status = constants.OrderStatusRefunding
		order.Remark = reason
		order.UpdatedAt = time.Now()
		ok, err := uc.orderRepo.TransitionOrder(ctx, order, constants.OrderStatusPaid)
		if err != nil {
			return err
		}
		if !ok {
			return errors.ErrOrderCannotRefund()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ProcessRefund 处理退款(管理端,退款中 -> 已退款)
// 结算的对称逆操作:关联记录置为已退款,课程名额原子回落
func (uc *OrderUsecase) ProcessRefund(ctx context.Context, orderID string) (*Order, error) {
	uc.log.Infof("ProcessRefund: order=%s", orderID)

	var order *Order
	err := uc.tx.Exec(ctx, func(ctx context.Context) error {
		var err error
		order, err = uc.orderRepo.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return errors.ErrOrderNotFound()
		}
		if order.Status != constants.OrderStatusRefunding {
			return errors.ErrOrderNotRefunding()
		}

		enrollments, err := uc.enrollRepo.ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}

		// 锁课程行,保证并发结算/退款下 enrolled_count 不丢失更新
		course, err := uc.courseRepo.GetCourseForUpdate(ctx, order.CourseID)
		if err != nil {
			return err
		}

		now := time.Now()
		order.Status = constants.OrderStatusRefunded
		order.RefundTime = &now
		order.RefundAmount = order.PayAmount
		order.UpdatedAt = now
		ok, err := uc.orderRepo.TransitionOrder(ctx, order, constants.OrderStatusRefunding)
		if err != nil {
			return err
		}
		if !ok {
			return errors.ErrOrderNotRefunding()
		}

		if err := uc.enrollRepo.UpdateStatusByOrder(ctx, orderID, constants.EnrollmentStatusRefunded); err != nil {
			return err
		}

		if course != nil && len(enrollments) > 0 {
			if err := uc.courseRepo.IncrEnrolledCount(ctx, order.CourseID, -len(enrollments)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Order %s refunded, amount=%.2f", orderID, order.RefundAmount)
	return order, nil
}

// ExpireStaleOrders 批量过期超时未支付订单(定时任务)
func (uc *OrderUsecase) ExpireStaleOrders(ctx context.Context) (int, error) {
	count, err := uc.orderRepo.ExpireStaleOrders(ctx)
	if err != nil {
		uc.log.Errorf("Failed to expire stale orders: %v", err)
		return 0, err
	}
	if count > 0 {
		uc.log.Infof("Expired %d stale pending orders", count)
	}
	return count, nil
}
