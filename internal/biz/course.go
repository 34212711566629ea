package biz

import (
	"context"
	"time"

	"xinyuan_tech/booking-service/internal/constants"
	"xinyuan_tech/booking-service/internal/errors"

	"github.com/go-kratos/kratos/v2/log"
)

// Course 课程
type Course struct {
	ID            string
	CommunityID   string
	TeacherID     string
	Name          string
	Image         string
	AgeMin        int
	AgeMax        int
	TotalWeeks    int
	TotalLessons  int
	ScheduleDay   string
	Location      string
	Price         float64
	MemberPrice   float64
	MinStudents   int
	MaxStudents   int
	EnrolledCount int
	Deadline      time.Time
	StartDate     *time.Time
	Status        string // pending, enrolling, ongoing, completed, cancelled
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Enrollable 课程是否处于可报名状态
func (c *Course) Enrollable() bool {
	return c.Status == constants.CourseStatusPending || c.Status == constants.CourseStatusEnrolling
}

// CourseFilter 课程列表过滤条件
type CourseFilter struct {
	CommunityID string
	Status      string
	Page        int
	PageSize    int
}

// CourseRepo 课程仓库接口
type CourseRepo interface {
	// GetCourse 不存在时返回 (nil, nil)
	GetCourse(ctx context.Context, id string) (*Course, error)
	// GetCourseForUpdate 加行锁读取课程,必须在事务内调用
	GetCourseForUpdate(ctx context.Context, id string) (*Course, error)
	ListCourses(ctx context.Context, filter *CourseFilter) ([]*Course, int, error)
	CreateCourse(ctx context.Context, course *Course) error
	UpdateCourse(ctx context.Context, course *Course) error
	DeleteCourse(ctx context.Context, id string) error
	// IncrEnrolledCount 原子增减已报名人数,避免读改写丢失更新
	IncrEnrolledCount(ctx context.Context, id string, delta int) error
}

// CourseUsecase 课程业务逻辑
type CourseUsecase struct {
	repo CourseRepo
	log  *log.Helper
}

// NewCourseUsecase 创建课程业务用例
func NewCourseUsecase(repo CourseRepo, logger log.Logger) *CourseUsecase {
	return &CourseUsecase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// GetCourse 获取课程详情
func (uc *CourseUsecase) GetCourse(ctx context.Context, id string) (*Course, error) {
	course, err := uc.repo.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, errors.ErrCourseNotFound()
	}
	return course, nil
}

// ListCourses 获取课程列表(支持小区、状态过滤和分页)
func (uc *CourseUsecase) ListCourses(ctx context.Context, filter *CourseFilter) ([]*Course, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > constants.MaxPageSize {
		filter.PageSize = constants.DefaultPageSize
	}
	return uc.repo.ListCourses(ctx, filter)
}

// CreateCourse 创建课程(管理端)
func (uc *CourseUsecase) CreateCourse(ctx context.Context, course *Course) error {
	uc.log.Infof("CreateCourse: name=%s, community=%s", course.Name, course.CommunityID)

	now := time.Now()
	course.ID = NewID()
	course.EnrolledCount = 0
	if course.Status == "" {
		course.Status = constants.CourseStatusEnrolling
	}
	course.CreatedAt = now
	course.UpdatedAt = now

	if err := uc.repo.CreateCourse(ctx, course); err != nil {
		uc.log.Errorf("Failed to create course: %v", err)
		return err
	}
	return nil
}

// UpdateCourse 更新课程(管理端)
// 不触碰 enrolled_count,名额变化只允许通过订单结算/退款路径发生
func (uc *CourseUsecase) UpdateCourse(ctx context.Context, course *Course) error {
	existing, err := uc.repo.GetCourse(ctx, course.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.ErrCourseNotFound()
	}

	course.EnrolledCount = existing.EnrolledCount
	course.CreatedAt = existing.CreatedAt
	course.UpdatedAt = time.Now()

	if err := uc.repo.UpdateCourse(ctx, course); err != nil {
		uc.log.Errorf("Failed to update course %s: %v", course.ID, err)
		return err
	}
	return nil
}

// DeleteCourse 删除课程(管理端)
// 已有学员报名的课程不允许删除
func (uc *CourseUsecase) DeleteCourse(ctx context.Context, id string) error {
	uc.log.Infof("DeleteCourse: id=%s", id)

	course, err := uc.repo.GetCourse(ctx, id)
	if err != nil {
		return err
	}
	if course == nil {
		return errors.ErrCourseNotFound()
	}
	if course.EnrolledCount > 0 {
		return errors.ErrCourseHasStudents()
	}

	return uc.repo.DeleteCourse(ctx, id)
}
