package biz

import (
	"context"
	"time"
)

// CourseStudent 课程学员关联(订单的按学员行项目)
// 同一 (course, student) 在非终态(非 cancelled/refunded)下最多存在一条记录
type CourseStudent struct {
	ID        string
	CourseID  string
	StudentID string
	OrderID   string
	Price     float64 // 下单时的单价快照
	IsNewUser int     // 是否新人价 1是 0否
	Status    string  // pending, active, cancelled, refunded
	CreatedAt time.Time
}

// CourseStudentRepo 课程学员关联仓库接口
type CourseStudentRepo interface {
	CreateCourseStudent(ctx context.Context, cs *CourseStudent) error
	// FindActiveByCourse 查询指定学员在该课程下的非终态记录(排除 cancelled/refunded)
	FindActiveByCourse(ctx context.Context, courseID string, studentIDs []string) ([]*CourseStudent, error)
	ListByOrder(ctx context.Context, orderID string) ([]*CourseStudent, error)
	UpdateStatusByOrder(ctx context.Context, orderID, status string) error
	// DeleteByOrder 取消未支付订单时直接删除关联,释放学员重新报名资格
	DeleteByOrder(ctx context.Context, orderID string) error
}
