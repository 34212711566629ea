package biz

import (
	"context"
	"testing"
	"time"

	"xinyuan_tech/booking-service/internal/constants"
	"xinyuan_tech/booking-service/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	courseRepo  *fakeCourseRepo
	studentRepo *fakeStudentRepo
	enrollRepo  *fakeEnrollRepo
	orderRepo   *fakeOrderRepo
	paymentRepo *fakePaymentRepo
	cardRepo    *fakeMemberCardRepo
	memberRepo  *fakeUserMemberRepo
	gateway     *fakeGateway

	member  *MemberUsecase
	order   *OrderUsecase
	payment *PaymentUsecase
}

func newTestEnv() *testEnv {
	logger := testLogger()
	env := &testEnv{
		courseRepo:  newFakeCourseRepo(),
		studentRepo: newFakeStudentRepo(),
		enrollRepo:  newFakeEnrollRepo(),
		orderRepo:   newFakeOrderRepo(),
		paymentRepo: newFakePaymentRepo(),
		cardRepo:    newFakeMemberCardRepo(),
		memberRepo:  newFakeUserMemberRepo(),
		gateway:     &fakeGateway{},
	}
	env.member = NewMemberUsecase(env.cardRepo, env.memberRepo, logger)
	env.order = NewOrderUsecase(fakeTx{}, env.courseRepo, env.studentRepo, env.enrollRepo, env.orderRepo, env.member, logger)
	env.payment = NewPaymentUsecase(fakeTx{}, env.orderRepo, env.paymentRepo, env.enrollRepo, env.courseRepo, env.gateway, nil, logger)
	return env
}

func (env *testEnv) addCourse(id string, price, memberPrice float64, maxStudents, enrolled int, status string) {
	env.courseRepo.put(&Course{
		ID:            id,
		Name:          "测试课程",
		Price:         price,
		MemberPrice:   memberPrice,
		MaxStudents:   maxStudents,
		EnrolledCount: enrolled,
		Deadline:      time.Now().Add(24 * time.Hour),
		Status:        status,
	})
}

func (env *testEnv) addStudent(id, userID string) {
	env.studentRepo.put(&Student{ID: id, UserID: userID, IDName: "学员" + id, Status: 1})
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("success with two students", func(t *testing.T) {
		env := newTestEnv()
		env.addCourse("c1", 100, 80, 10, 0, constants.CourseStatusEnrolling)
		env.addStudent("s1", "u1")
		env.addStudent("s2", "u1")

		order, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s1", "s2"}, "")
		require.NoError(t, err)
		assert.Equal(t, constants.OrderStatusPending, order.Status)
		assert.Equal(t, 200.0, order.TotalAmount)
		assert.Equal(t, order.TotalAmount-order.DiscountAmount, order.PayAmount)
		assert.NotEmpty(t, order.OrderNo)
		assert.True(t, order.ExpireAt.After(time.Now()))

		rows, err := env.enrollRepo.ListByOrder(ctx, order.ID)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
		for _, row := range rows {
			assert.Equal(t, constants.EnrollmentStatusPending, row.Status)
			assert.Equal(t, 100.0, row.Price)
		}

		// 待支付订单不占名额
		course, _ := env.courseRepo.GetCourse(ctx, "c1")
		assert.Equal(t, 0, course.EnrolledCount)
	})

	t.Run("member price applied", func(t *testing.T) {
		env := newTestEnv()
		env.addCourse("c1", 100, 80, 10, 0, constants.CourseStatusEnrolling)
		env.addStudent("s1", "u1")
		env.memberRepo.members = append(env.memberRepo.members, &UserMember{
			ID:       "m1",
			UserID:   "u1",
			ExpireAt: time.Now().Add(24 * time.Hour),
			Status:   constants.UserMemberStatusActive,
		})

		order, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s1"}, "")
		require.NoError(t, err)
		assert.Equal(t, 80.0, order.PayAmount)
	})

	t.Run("course not found", func(t *testing.T) {
		env := newTestEnv()
		env.addStudent("s1", "u1")

		_, err := env.order.CreateOrder(ctx, "u1", "missing", []string{"s1"}, "")
		assert.True(t, errors.IsBizCode(err, errors.ErrCodeCourseNotFound))
	})

	t.Run("course not enrolling", func(t *testing.T) {
		env := newTestEnv()
		env.addCourse("c1", 100, 80, 10, 0, constants.CourseStatusOngoing)
		env.addStudent("s1", "u1")

		_, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s1"}, "")
		assert.True(t, errors.IsBizCode(err, errors.ErrCodeCourseNotEnrolling))
	})

	t.Run("student of another user rejected", func(t *testing.T) {
		env := newTestEnv()
		env.addCourse("c1", 100, 80, 10, 0, constants.CourseStatusEnrolling)
		env.addStudent("s1", "u2")

		_, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s1"}, "")
		assert.True(t, errors.IsBizCode(err, errors.ErrCodeStudentNotFound))
	})

	t.Run("duplicate enrollment rejected", func(t *testing.T) {
		env := newTestEnv()
		env.addCourse("c1", 100, 80, 10, 0, constants.CourseStatusEnrolling)
		env.addStudent("s1", "u1")

		_, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s1"}, "")
		require.NoError(t, err)

		_, err = env.order.CreateOrder(ctx, "u1", "c1", []string{"s1"}, "")
		assert.True(t, errors.IsBizCode(err, errors.ErrCodeStudentAlreadyEnrolled))
	})

	t.Run("capacity exceeded", func(t *testing.T) {
		env := newTestEnv()
		env.addCourse("c1", 100, 80, 3, 2, constants.CourseStatusEnrolling)
		env.addStudent("s1", "u1")
		env.addStudent("s2", "u1")

		_, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s1", "s2"}, "")
		assert.True(t, errors.IsBizCode(err, errors.ErrCodeCourseFull))
	})
}

func TestGetOrderLazyExpiry(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.addCourse("c1", 100, 80, 10, 0, constants.CourseStatusEnrolling)
	env.addStudent("s1", "u1")

	order, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s1"}, "")
	require.NoError(t, err)

	// 把订单推到有效期之外
	stored, _ := env.orderRepo.GetOrder(ctx, order.ID)
	stored.ExpireAt = time.Now().Add(-time.Minute)
	env.orderRepo.put(stored)

	got, err := env.order.GetOrder(ctx, order.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusExpired, got.Status)

	// 过期状态已落盘
	persisted, _ := env.orderRepo.GetOrder(ctx, order.ID)
	assert.Equal(t, constants.OrderStatusExpired, persisted.Status)
}

func TestGetOrderExpiryRespectsConcurrentSettlement(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.addCourse("c1", 100, 80, 10, 0, constants.CourseStatusEnrolling)
	env.addStudent("s1", "u1")

	order, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s1"}, "")
	require.NoError(t, err)

	// 过时快照里订单还是超期的 pending,真实落盘状态随后被结算成 paid
	snapshot, _ := env.orderRepo.GetOrder(ctx, order.ID)
	snapshot.ExpireAt = time.Now().Add(-time.Minute)

	_, err = env.payment.CreatePrepay(ctx, "u1", order.ID)
	require.NoError(t, err)
	settled, err := env.payment.HandlePaymentCallback(ctx, order.ID, "txn_1")
	require.NoError(t, err)
	require.True(t, settled)

	reader := NewOrderUsecase(fakeTx{}, env.courseRepo, env.studentRepo, env.enrollRepo,
		&staleOrderRepo{fakeOrderRepo: env.orderRepo, stale: snapshot}, env.member, testLogger())
	got, err := reader.GetOrder(ctx, order.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, constants.OrderStatusPaid, got.Status)

	// 懒惰过期的条件更新落败,不会把已结算订单改写成过期
	persisted, _ := env.orderRepo.GetOrder(ctx, order.ID)
	assert.Equal(t, constants.OrderStatusPaid, persisted.Status)
}

func TestListOrdersLazyExpiry(t *testing.T) {
	ctx := context.Background()

	setup := func() (*testEnv, *Order, *Order) {
		env := newTestEnv()
		env.addCourse("c1", 100, 80, 10, 0, constants.CourseStatusEnrolling)
		env.addStudent("s1", "u1")
		env.addStudent("s2", "u1")

		overdue, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s1"}, "")
		require.NoError(t, err)
		fresh, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s2"}, "")
		require.NoError(t, err)

		row, _ := env.orderRepo.GetOrder(ctx, overdue.ID)
		row.ExpireAt = time.Now().Add(-time.Minute)
		env.orderRepo.put(row)
		return env, overdue, fresh
	}

	t.Run("user list flips overdue orders", func(t *testing.T) {
		env, overdue, fresh := setup()

		orders, total, err := env.order.ListOrders(ctx, "u1", "", 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 2, total)

		byID := make(map[string]*Order, len(orders))
		for _, o := range orders {
			byID[o.ID] = o
		}
		assert.Equal(t, constants.OrderStatusExpired, byID[overdue.ID].Status)
		assert.Equal(t, constants.OrderStatusPending, byID[fresh.ID].Status)

		// 过期状态已落盘
		persisted, _ := env.orderRepo.GetOrder(ctx, overdue.ID)
		assert.Equal(t, constants.OrderStatusExpired, persisted.Status)
	})

	t.Run("admin list flips overdue orders", func(t *testing.T) {
		env, overdue, _ := setup()

		orders, _, err := env.order.ListAllOrders(ctx, 1, 10)
		require.NoError(t, err)

		for _, o := range orders {
			if o.ID == overdue.ID {
				assert.Equal(t, constants.OrderStatusExpired, o.Status)
			}
		}
		persisted, _ := env.orderRepo.GetOrder(ctx, overdue.ID)
		assert.Equal(t, constants.OrderStatusExpired, persisted.Status)
	})
}

func TestGetOrderOwnership(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.addCourse("c1", 100, 80, 10, 0, constants.CourseStatusEnrolling)
	env.addStudent("s1", "u1")

	order, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s1"}, "")
	require.NoError(t, err)

	_, err = env.order.GetOrder(ctx, order.ID, "u2")
	assert.True(t, errors.IsBizCode(err, errors.ErrCodeOrderNotBelong))

	// userID 为空跳过归属校验(管理端)
	got, err := env.order.GetOrder(ctx, order.ID, "")
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel frees re-enrollment", func(t *testing.T) {
		env := newTestEnv()
		env.addCourse("c1", 100, 80, 10, 0, constants.CourseStatusEnrolling)
		env.addStudent("s1", "u1")

		order, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s1"}, "")
		require.NoError(t, err)

		cancelled, err := env.order.CancelOrder(ctx, order.ID, "u1")
		require.NoError(t, err)
		assert.Equal(t, constants.OrderStatusCancelled, cancelled.Status)

		// 取消后同一学员可以重新下单
		_, err = env.order.CreateOrder(ctx, "u1", "c1", []string{"s1"}, "")
		assert.NoError(t, err)
	})

	t.Run("only pending cancellable", func(t *testing.T) {
		env := newTestEnv()
		env.addCourse("c1", 100, 80, 10, 0, constants.CourseStatusEnrolling)
		env.addStudent("s1", "u1")

		order, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s1"}, "")
		require.NoError(t, err)

		_, err = env.payment.CreatePrepay(ctx, "u1", order.ID)
		require.NoError(t, err)
		settled, err := env.payment.HandlePaymentCallback(ctx, order.ID, "txn_1")
		require.NoError(t, err)
		require.True(t, settled)

		_, err = env.order.CancelOrder(ctx, order.ID, "u1")
		assert.True(t, errors.IsBizCode(err, errors.ErrCodeOrderCannotCancel))
	})

	t.Run("wrong user rejected", func(t *testing.T) {
		env := newTestEnv()
		env.addCourse("c1", 100, 80, 10, 0, constants.CourseStatusEnrolling)
		env.addStudent("s1", "u1")

		order, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s1"}, "")
		require.NoError(t, err)

		_, err = env.order.CancelOrder(ctx, order.ID, "u2")
		assert.True(t, errors.IsBizCode(err, errors.ErrCodeOrderNotBelong))
	})
}

func TestRefundFlow(t *testing.T) {
	ctx := context.Background()

	setupPaid := func(t *testing.T) (*testEnv, *Order) {
		env := newTestEnv()
		env.addCourse("c1", 100, 80, 10, 0, constants.CourseStatusEnrolling)
		env.addStudent("s1", "u1")
		env.addStudent("s2", "u1")

		order, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s1", "s2"}, "")
		require.NoError(t, err)
		_, err = env.payment.CreatePrepay(ctx, "u1", order.ID)
		require.NoError(t, err)
		settled, err := env.payment.HandlePaymentCallback(ctx, order.ID, "txn_1")
		require.NoError(t, err)
		require.True(t, settled)
		return env, order
	}

	t.Run("request then process refund restores seats", func(t *testing.T) {
		env, order := setupPaid(t)

		course, _ := env.courseRepo.GetCourse(ctx, "c1")
		require.Equal(t, 2, course.EnrolledCount)

		refunding, err := env.order.RequestRefund(ctx, order.ID, "u1", "时间冲突")
		require.NoError(t, err)
		assert.Equal(t, constants.OrderStatusRefunding, refunding.Status)
		assert.Equal(t, "时间冲突", refunding.Remark)

		refunded, err := env.order.ProcessRefund(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, constants.OrderStatusRefunded, refunded.Status)
		assert.Equal(t, refunded.PayAmount, refunded.RefundAmount)
		assert.NotNil(t, refunded.RefundTime)

		course, _ = env.courseRepo.GetCourse(ctx, "c1")
		assert.Equal(t, 0, course.EnrolledCount)

		rows, _ := env.enrollRepo.ListByOrder(ctx, order.ID)
		for _, row := range rows {
			assert.Equal(t, constants.EnrollmentStatusRefunded, row.Status)
		}
	})

	t.Run("refund requires paid status", func(t *testing.T) {
		env := newTestEnv()
		env.addCourse("c1", 100, 80, 10, 0, constants.CourseStatusEnrolling)
		env.addStudent("s1", "u1")

		order, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s1"}, "")
		require.NoError(t, err)

		_, err = env.order.RequestRefund(ctx, order.ID, "u1", "")
		assert.True(t, errors.IsBizCode(err, errors.ErrCodeOrderCannotRefund))
	})

	t.Run("process requires refunding status", func(t *testing.T) {
		env, order := setupPaid(t)

		_, err := env.order.ProcessRefund(ctx, order.ID)
		assert.True(t, errors.IsBizCode(err, errors.ErrCodeOrderNotRefunding))
	})

	t.Run("refund then re-enroll allowed", func(t *testing.T) {
		env, order := setupPaid(t)

		_, err := env.order.RequestRefund(ctx, order.ID, "u1", "")
		require.NoError(t, err)
		_, err = env.order.ProcessRefund(ctx, order.ID)
		require.NoError(t, err)

		_, err = env.order.CreateOrder(ctx, "u1", "c1", []string{"s1"}, "")
		assert.NoError(t, err)
	})
}

func TestExpireStaleOrders(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.addCourse("c1", 100, 80, 10, 0, constants.CourseStatusEnrolling)
	env.addStudent("s1", "u1")
	env.addStudent("s2", "u1")

	stale, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s1"}, "")
	require.NoError(t, err)
	fresh, err := env.order.CreateOrder(ctx, "u1", "c1", []string{"s2"}, "")
	require.NoError(t, err)

	row, _ := env.orderRepo.GetOrder(ctx, stale.ID)
	row.ExpireAt = time.Now().Add(-time.Hour)
	env.orderRepo.put(row)

	count, err := env.order.ExpireStaleOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	expired, _ := env.orderRepo.GetOrder(ctx, stale.ID)
	assert.Equal(t, constants.OrderStatusExpired, expired.Status)
	pending, _ := env.orderRepo.GetOrder(ctx, fresh.ID)
	assert.Equal(t, constants.OrderStatusPending, pending.Status)
}
