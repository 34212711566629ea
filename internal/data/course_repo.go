package data

import (
	"context"
	"errors"

	"xinyuan_tech/booking-service/internal/biz"
	"xinyuan_tech/booking-service/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// courseRepo 课程仓库实现
type courseRepo struct {
	data *Data
	log  *log.Helper
}

// NewCourseRepo 创建课程仓库
func NewCourseRepo(data *Data, logger log.Logger) biz.CourseRepo {
	return &courseRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func toCourseBiz(m *model.Course) *biz.Course {
	return &biz.Course{
		ID:            m.CourseID,
		CommunityID:   m.CommunityID,
		TeacherID:     m.TeacherID,
		Name:          m.Name,
		Image:         m.Image,
		AgeMin:        m.AgeMin,
		AgeMax:        m.AgeMax,
		TotalWeeks:    m.TotalWeeks,
		TotalLessons:  m.TotalLessons,
		ScheduleDay:   m.ScheduleDay,
		Location:      m.Location,
		Price:         m.Price,
		MemberPrice:   m.MemberPrice,
		MinStudents:   m.MinStudents,
		MaxStudents:   m.MaxStudents,
		EnrolledCount: m.EnrolledCount,
		Deadline:      m.Deadline,
		StartDate:     m.StartDate,
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toCourseModel(c *biz.Course) *model.Course {
	return &model.Course{
		CourseID:      c.ID,
		CommunityID:   c.CommunityID,
		TeacherID:     c.TeacherID,
		Name:          c.Name,
		Image:         c.Image,
		AgeMin:        c.AgeMin,
		AgeMax:        c.AgeMax,
		TotalWeeks:    c.TotalWeeks,
		TotalLessons:  c.TotalLessons,
		ScheduleDay:   c.ScheduleDay,
		Location:      c.Location,
		Price:         c.Price,
		MemberPrice:   c.MemberPrice,
		MinStudents:   c.MinStudents,
		MaxStudents:   c.MaxStudents,
		EnrolledCount: c.EnrolledCount,
		Deadline:      c.Deadline,
		StartDate:     c.StartDate,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// GetCourse 根据ID获取课程
func (r *courseRepo) GetCourse(ctx context.Context, id string) (*biz.Course, error) {
	var m model.Course
	err := r.data.DB(ctx).First(&m, "course_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Errorf("Failed to get course %s: %v", id, err)
		return nil, err
	}
	return toCourseBiz(&m), nil
}

// GetCourseForUpdate 加行锁读取课程(SELECT ... FOR UPDATE)
// 订单创建与结算/退款路径在事务内用它串行化同课程的并发请求
func (r *courseRepo) GetCourseForUpdate(ctx context.Context, id string) (*biz.Course, error) {
	var m model.Course
	err := r.data.DB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "course_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Errorf("Failed to lock course %s: %v", id, err)
		return nil, err
	}
	return toCourseBiz(&m), nil
}

// ListCourses 获取课程列表(小区、状态过滤+分页)
func (r *courseRepo) ListCourses(ctx context.Context, filter *biz.CourseFilter) ([]*biz.Course, int, error) {
	var models []model.Course
	var total int64

	query := r.data.DB(ctx).Model(&model.Course{})
	if filter.CommunityID != "" {
		query = query.Where("community_id = ?", filter.CommunityID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PageSize
	if err := query.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&models).Error; err != nil {
		r.log.Errorf("Failed to list courses: %v", err)
		return nil, 0, err
	}

	courses := make([]*biz.Course, len(models))
	for i := range models {
		courses[i] = toCourseBiz(&models[i])
	}
	return courses, int(total), nil
}

// CreateCourse 创建课程
func (r *courseRepo) CreateCourse(ctx context.Context, course *biz.Course) error {
	if err := r.data.DB(ctx).Create(toCourseModel(course)).Error; err != nil {
		r.log.Errorf("Failed to create course: %v", err)
		return err
	}
	return nil
}

// UpdateCourse 更新课程
func (r *courseRepo) UpdateCourse(ctx context.Context, course *biz.Course) error {
	if err := r.data.DB(ctx).Save(toCourseModel(course)).Error; err != nil {
		r.log.Errorf("Failed to update course %s: %v", course.ID, err)
		return err
	}
	return nil
}

// DeleteCourse 删除课程
func (r *courseRepo) DeleteCourse(ctx context.Context, id string) error {
	if err := r.data.DB(ctx).Delete(&model.Course{}, "course_id = ?", id).Error; err != nil {
		r.log.Errorf("Failed to delete course %s: %v", id, err)
		return err
	}
	return nil
}

// IncrEnrolledCount 原子增减已报名人数
// 使用 SQL 表达式而非读改写,避免并发结算丢失更新
func (r *courseRepo) IncrEnrolledCount(ctx context.Context, id string, delta int) error {
	res := r.data.DB(ctx).Model(&model.Course{}).
		Where("course_id = ?", id).
		UpdateColumn("enrolled_count", gorm.Expr("enrolled_count + ?", delta))
	if res.Error != nil {
		r.log.Errorf("Failed to adjust enrolled_count for course %s: %v", id, res.Error)
		return res.Error
	}
	return nil
}
