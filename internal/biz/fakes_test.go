package biz

import (
	"context"
	"io"
	"time"

	"xinyuan_tech/booking-service/internal/constants"

	"github.com/go-kratos/kratos/v2/log"
)

func testLogger() log.Logger {
	return log.NewStdLogger(io.Discard)
}

// 内存版仓库实现,测试用

type fakeTx struct{}

func (fakeTx) Exec(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCourseRepo struct {
	courses map[string]*Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[string]*Course)}
}

func (r *fakeCourseRepo) put(c *Course) {
	clone := *c
	r.courses[c.ID] = &clone
}

func (r *fakeCourseRepo) GetCourse(ctx context.Context, id string) (*Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCourseRepo) GetCourseForUpdate(ctx context.Context, id string) (*Course, error) {
	return r.GetCourse(ctx, id)
}

func (r *fakeCourseRepo) ListCourses(ctx context.Context, filter *CourseFilter) ([]*Course, int, error) {
	var result []*Course
	for _, c := range r.courses {
		if filter.CommunityID != "" && c.CommunityID != filter.CommunityID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		clone := *c
		result = append(result, &clone)
	}
	return result, len(result), nil
}

func (r *fakeCourseRepo) CreateCourse(ctx context.Context, course *Course) error {
	r.put(course)
	return nil
}

func (r *fakeCourseRepo) UpdateCourse(ctx context.Context, course *Course) error {
	r.put(course)
	return nil
}

func (r *fakeCourseRepo) DeleteCourse(ctx context.Context, id string) error {
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) IncrEnrolledCount(ctx context.Context, id string, delta int) error {
	if c, ok := r.courses[id]; ok {
		c.EnrolledCount += delta
	}
	return nil
}

type fakeStudentRepo struct {
	students map[string]*Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[string]*Student)}
}

func (r *fakeStudentRepo) put(s *Student) {
	clone := *s
	r.students[s.ID] = &clone
}

func (r *fakeStudentRepo) GetStudent(ctx context.Context, id string) (*Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

func (r *fakeStudentRepo) ListStudentsByUser(ctx context.Context, userID string) ([]*Student, error) {
	var result []*Student
	for _, s := range r.students {
		if s.UserID == userID {
			clone := *s
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeStudentRepo) CreateStudent(ctx context.Context, student *Student) error {
	r.put(student)
	return nil
}

func (r *fakeStudentRepo) DeleteStudent(ctx context.Context, id string) error {
	delete(r.students, id)
	return nil
}

type fakeEnrollRepo struct {
	rows []*CourseStudent
}

func newFakeEnrollRepo() *fakeEnrollRepo {
	return &fakeEnrollRepo{}
}

func (r *fakeEnrollRepo) CreateCourseStudent(ctx context.Context, cs *CourseStudent) error {
	clone := *cs
	r.rows = append(r.rows, &clone)
	return nil
}

func (r *fakeEnrollRepo) FindActiveByCourse(ctx context.Context, courseID string, studentIDs []string) ([]*CourseStudent, error) {
	ids := make(map[string]struct{}, len(studentIDs))
	for _, id := range studentIDs {
		ids[id] = struct{}{}
	}
	var result []*CourseStudent
	for _, row := range r.rows {
		if row.CourseID != courseID {
			continue
		}
		if row.Status == constants.EnrollmentStatusCancelled || row.Status == constants.EnrollmentStatusRefunded {
			continue
		}
		if _, ok := ids[row.StudentID]; ok {
			clone := *row
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeEnrollRepo) ListByOrder(ctx context.Context, orderID string) ([]*CourseStudent, error) {
	var result []*CourseStudent
	for _, row := range r.rows {
		if row.OrderID == orderID {
			clone := *row
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *fakeEnrollRepo) UpdateStatusByOrder(ctx context.Context, orderID, status string) error {
	for _, row := range r.rows {
		if row.OrderID == orderID {
			row.Status = status
		}
	}
	return nil
}

func (r *fakeEnrollRepo) DeleteByOrder(ctx context.Context, orderID string) error {
	var kept []*CourseStudent
	for _, row := range r.rows {
		if row.OrderID != orderID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

type fakeOrderRepo struct {
	orders map[string]*Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*Order)}
}

func (r *fakeOrderRepo) put(o *Order) {
	clone := *o
	r.orders[o.ID] = &clone
}

func (r *fakeOrderRepo) CreateOrder(ctx context.Context, order *Order) error {
	r.put(order)
	return nil
}

func (r *fakeOrderRepo) GetOrder(ctx context.Context, id string) (*Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	clone := *o
	return &clone, nil
}

func (r *fakeOrderRepo) TransitionOrder(ctx context.Context, order *Order, from string) (bool, error) {
	cur, ok := r.orders[order.ID]
	if !ok || cur.Status != from {
		return false, nil
	}
	r.put(order)
	return true, nil
}

func (r *fakeOrderRepo) ListOrdersByUser(ctx context.Context, userID, status string, page, pageSize int) ([]*Order, int, error) {
	var result []*Order
	for _, o := range r.orders {
		if o.UserID != userID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		clone := *o
		result = append(result, &clone)
	}
	return result, len(result), nil
}

func (r *fakeOrderRepo) ListOrders(ctx context.Context, page, pageSize int) ([]*Order, int, error) {
	var result []*Order
	for _, o := range r.orders {
		clone := *o
		result = append(result, &clone)
	}
	return result, len(result), nil
}

// staleOrderRepo 第一次 GetOrder 返回事先捕获的过时快照
// 模拟 REPEATABLE READ 事务快照落后于已提交写入的读取
type staleOrderRepo struct {
	*fakeOrderRepo
	stale  *Order
	served bool
}

func (r *staleOrderRepo) GetOrder(ctx context.Context, id string) (*Order, error) {
	if !r.served && r.stale != nil && r.stale.ID == id {
		r.served = true
		clone := *r.stale
		return &clone, nil
	}
	return r.fakeOrderRepo.GetOrder(ctx, id)
}

func (r *fakeOrderRepo) ExpireStaleOrders(ctx context.Context) (int, error) {
	now := time.Now()
	count := 0
	for _, o := range r.orders {
		if o.Status == constants.OrderStatusPending && now.After(o.ExpireAt) {
			o.Status = constants.OrderStatusExpired
			o.UpdatedAt = now
			count++
		}
	}
	return count, nil
}

type fakePaymentRepo struct {
	payments map[string]*Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[string]*Payment)}
}

func (r *fakePaymentRepo) CreatePayment(ctx context.Context, payment *Payment) error {
	clone := *payment
	r.payments[payment.ID] = &clone
	return nil
}

func (r *fakePaymentRepo) GetPendingByOrder(ctx context.Context, orderID string) (*Payment, error) {
	var latest *Payment
	for _, p := range r.payments {
		if p.OrderID != orderID || p.Status != constants.PaymentStatusPending {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	if latest == nil {
		return nil, nil
	}
	clone := *latest
	return &clone, nil
}

func (r *fakePaymentRepo) UpdatePayment(ctx context.Context, payment *Payment) error {
	clone := *payment
	r.payments[payment.ID] = &clone
	return nil
}

// stalePaymentRepo 第一次 GetPendingByOrder 返回事先捕获的过时快照,配合 staleOrderRepo 使用
type stalePaymentRepo struct {
	*fakePaymentRepo
	stale  *Payment
	served bool
}

func (r *stalePaymentRepo) GetPendingByOrder(ctx context.Context, orderID string) (*Payment, error) {
	if !r.served && r.stale != nil && r.stale.OrderID == orderID {
		r.served = true
		clone := *r.stale
		return &clone, nil
	}
	return r.fakePaymentRepo.GetPendingByOrder(ctx, orderID)
}

type fakeMemberCardRepo struct {
	cards map[string]*MemberCard
}

func newFakeMemberCardRepo() *fakeMemberCardRepo {
	return &fakeMemberCardRepo{cards: make(map[string]*MemberCard)}
}

func (r *fakeMemberCardRepo) ListCards(ctx context.Context, activeOnly bool) ([]*MemberCard, error) {
	var result []*MemberCard
	for _, c := range r.cards {
		if activeOnly && c.Status != 1 {
			continue
		}
		clone := *c
		result = append(result, &clone)
	}
	return result, nil
}

func (r *fakeMemberCardRepo) GetCard(ctx context.Context, id string) (*MemberCard, error) {
	c, ok := r.cards[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (r *fakeMemberCardRepo) CreateCard(ctx context.Context, card *MemberCard) error {
	clone := *card
	r.cards[card.ID] = &clone
	return nil
}

func (r *fakeMemberCardRepo) UpdateCard(ctx context.Context, card *MemberCard) error {
	clone := *card
	r.cards[card.ID] = &clone
	return nil
}

type fakeUserMemberRepo struct {
	members []*UserMember
}

func newFakeUserMemberRepo() *fakeUserMemberRepo {
	return &fakeUserMemberRepo{}
}

func (r *fakeUserMemberRepo) GetActiveMember(ctx context.Context, userID string) (*UserMember, error) {
	now := time.Now()
	var latest *UserMember
	for _, m := range r.members {
		if m.UserID != userID || m.Status != constants.UserMemberStatusActive || !m.ExpireAt.After(now) {
			continue
		}
		if latest == nil || m.ExpireAt.After(latest.ExpireAt) {
			latest = m
		}
	}
	if latest == nil {
		return nil, nil
	}
	clone := *latest
	return &clone, nil
}

func (r *fakeUserMemberRepo) CreateUserMember(ctx context.Context, member *UserMember) error {
	clone := *member
	r.members = append(r.members, &clone)
	return nil
}

func (r *fakeUserMemberRepo) ExpireMembers(ctx context.Context) (int, error) {
	now := time.Now()
	count := 0
	for _, m := range r.members {
		if m.Status == constants.UserMemberStatusActive && m.ExpireAt.Before(now) {
			m.Status = constants.UserMemberStatusExpired
			count++
		}
	}
	return count, nil
}

type fakeGateway struct {
	err   error
	calls int
}

func (g *fakeGateway) CreatePrepay(ctx context.Context, payment *Payment, order *Order) (*PrepayParams, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &PrepayParams{
		PrepayID:  "prepay_" + payment.ID,
		Timestamp: "1700000000",
		NonceStr:  "nonce",
		Sign:      "sign",
	}, nil
}
