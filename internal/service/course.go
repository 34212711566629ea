package service

import (
	"context"
	"time"

	"xinyuan_tech/booking-service/internal/auth"
	"xinyuan_tech/booking-service/internal/biz"

	"github.com/go-kratos/kratos/v2/errors"
)

// CourseService 课程服务
type CourseService struct {
	uc *biz.CourseUsecase
}

// NewCourseService 创建课程服务
func NewCourseService(uc *biz.CourseUsecase) *CourseService {
	return &CourseService{uc: uc}
}

// CourseReply 课程响应
type CourseReply struct {
	CourseID      string  `json:"course_id"`
	CommunityID   string  `json:"community_id"`
	TeacherID     string  `json:"teacher_id"`
	Name          string  `json:"name"`
	Image         string  `json:"image"`
	AgeMin        int     `json:"age_min"`
	AgeMax        int     `json:"age_max"`
	TotalWeeks    int     `json:"total_weeks"`
	TotalLessons  int     `json:"total_lessons"`
	ScheduleDay   string  `json:"schedule_day"`
	Location      string  `json:"location"`
	Price         float64 `json:"price"`
	MemberPrice   float64 `json:"member_price"`
	MinStudents   int     `json:"min_students"`
	MaxStudents   int     `json:"max_students"`
	EnrolledCount int     `json:"enrolled_count"`
	Deadline      int64   `json:"deadline"`
	StartDate     int64   `json:"start_date,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     int64   `json:"created_at"`
}

func toCourseReply(c *biz.Course) *CourseReply {
	reply := &CourseReply{
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
		Deadline:      c.Deadline.Unix(),
		Status:        c.Status,
		CreatedAt:     c.CreatedAt.Unix(),
	}
	if c.StartDate != nil {
		reply.StartDate = c.StartDate.Unix()
	}
	return reply
}

// ListCoursesRequest 课程列表请求
type ListCoursesRequest struct {
	CommunityID string `json:"community_id" form:"community_id"`
	Status      string `json:"status" form:"status"`
	Page        int    `json:"page" form:"page"`
	PageSize    int    `json:"page_size" form:"page_size"`
}

// ListCoursesReply 课程列表响应
type ListCoursesReply struct {
	Courses []*CourseReply `json:"courses"`
	Total   int            `json:"total"`
}

// ListCourses 获取课程列表
func (s *CourseService) ListCourses(ctx context.Context, req *ListCoursesRequest) (*ListCoursesReply, error) {
	courses, total, err := s.uc.ListCourses(ctx, &biz.CourseFilter{
		CommunityID: req.CommunityID,
		Status:      req.Status,
		Page:        req.Page,
		PageSize:    req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	replies := make([]*CourseReply, len(courses))
	for i, c := range courses {
		replies[i] = toCourseReply(c)
	}
	return &ListCoursesReply{Courses: replies, Total: total}, nil
}

// GetCourseRequest 课程详情请求
type GetCourseRequest struct {
	CourseID string `json:"course_id" form:"course_id"`
}

// GetCourse 获取课程详情
func (s *CourseService) GetCourse(ctx context.Context, req *GetCourseRequest) (*CourseReply, error) {
	course, err := s.uc.GetCourse(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	return toCourseReply(course), nil
}

// SaveCourseRequest 创建/更新课程请求(管理端)
type SaveCourseRequest struct {
	CourseID     string  `json:"course_id" form:"course_id"`
	CommunityID  string  `json:"community_id"`
	TeacherID    string  `json:"teacher_id"`
	Name         string  `json:"name"`
	Image        string  `json:"image"`
	AgeMin       int     `json:"age_min"`
	AgeMax       int     `json:"age_max"`
	TotalWeeks   int     `json:"total_weeks"`
	TotalLessons int     `json:"total_lessons"`
	ScheduleDay  string  `json:"schedule_day"`
	Location     string  `json:"location"`
	Price        float64 `json:"price"`
	MemberPrice  float64 `json:"member_price"`
	MinStudents  int     `json:"min_students"`
	MaxStudents  int     `json:"max_students"`
	Deadline     int64   `json:"deadline"`
	StartDate    int64   `json:"start_date"`
	Status       string  `json:"status"`
}

// Validate 请求参数校验
func (r *SaveCourseRequest) Validate() error {
	if r.Name == "" {
		return errors.BadRequest("INVALID_PARAM", "name is required")
	}
	if r.CommunityID == "" {
		return errors.BadRequest("INVALID_PARAM", "community_id is required")
	}
	if r.MaxStudents <= 0 {
		return errors.BadRequest("INVALID_PARAM", "max_students must be positive")
	}
	if r.Price < 0 || r.MemberPrice < 0 {
		return errors.BadRequest("INVALID_PARAM", "price must not be negative")
	}
	return nil
}

func (r *SaveCourseRequest) toBiz() *biz.Course {
	course := &biz.Course{
		ID:           r.CourseID,
		CommunityID:  r.CommunityID,
		TeacherID:    r.TeacherID,
		Name:         r.Name,
		Image:        r.Image,
		AgeMin:       r.AgeMin,
		AgeMax:       r.AgeMax,
		TotalWeeks:   r.TotalWeeks,
		TotalLessons: r.TotalLessons,
		ScheduleDay:  r.ScheduleDay,
		Location:     r.Location,
		Price:        r.Price,
		MemberPrice:  r.MemberPrice,
		MinStudents:  r.MinStudents,
		MaxStudents:  r.MaxStudents,
		Deadline:     time.Unix(r.Deadline, 0),
		Status:       r.Status,
	}
	if r.StartDate > 0 {
		startDate := time.Unix(r.StartDate, 0)
		course.StartDate = &startDate
	}
	return course
}

// CreateCourse 创建课程(管理端)
func (s *CourseService) CreateCourse(ctx context.Context, req *SaveCourseRequest) (*CourseReply, error) {
	if err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	course := req.toBiz()
	if err := s.uc.CreateCourse(ctx, course); err != nil {
		return nil, err
	}
	return toCourseReply(course), nil
}

// UpdateCourse 更新课程(管理端)
func (s *CourseService) UpdateCourse(ctx context.Context, req *SaveCourseRequest) (*CourseReply, error) {
	if err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	course := req.toBiz()
	if err := s.uc.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}
	return toCourseReply(course), nil
}

// DeleteCourseRequest 删除课程请求(管理端)
type DeleteCourseRequest struct {
	CourseID string `json:"course_id" form:"course_id"`
}

// DeleteCourseReply 删除课程响应
type DeleteCourseReply struct {
	Success bool `json:"success"`
}

// DeleteCourse 删除课程(管理端)
func (s *CourseService) DeleteCourse(ctx context.Context, req *DeleteCourseRequest) (*DeleteCourseReply, error) {
	if err := auth.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := s.uc.DeleteCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}
	return &DeleteCourseReply{Success: true}, nil
}
