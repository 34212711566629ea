package service

import (
	"context"
	"time"

	"xinyuan_tech/booking-service/internal/auth"
	"xinyuan_tech/booking-service/internal/biz"

	"github.com/go-kratos/kratos/v2/errors"
)

// StudentService 学员服务
type StudentService struct {
	uc *biz.StudentUsecase
}

// NewStudentService 创建学员服务
func NewStudentService(uc *biz.StudentUsecase) *StudentService {
	return &StudentService{uc: uc}
}

// StudentReply 学员响应
type StudentReply struct {
	StudentID string `json:"student_id"`
	UserID    string `json:"user_id"`
	IDType    string `json:"id_type"`
	IDName    string `json:"id_name"`
	IDNumber  string `json:"id_number"`
	Birthday  int64  `json:"birthday"`
	Gender    string `json:"gender"`
	Status    int    `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

func toStudentReply(s *biz.Student) *StudentReply {
	return &StudentReply{
		StudentID: s.ID,
		UserID:    s.UserID,
		IDType:    s.IDType,
		IDName:    s.IDName,
		IDNumber:  s.IDNumber,
		Birthday:  s.Birthday.Unix(),
		Gender:    s.Gender,
		Status:    s.Status,
		CreatedAt: s.CreatedAt.Unix(),
	}
}

// CreateStudentRequest 添加学员请求
type CreateStudentRequest struct {
	IDType   string `json:"id_type"`
	IDName   string `json:"id_name"`
	IDNumber string `json:"id_number"`
	Birthday int64  `json:"birthday"`
	Gender   string `json:"gender"`
}

// Validate 请求参数校验
func (r *CreateStudentRequest) Validate() error {
	if r.IDName == "" {
		return errors.BadRequest("INVALID_PARAM", "id_name is required")
	}
	return nil
}

// CreateStudent 添加学员
func (s *StudentService) CreateStudent(ctx context.Context, req *CreateStudentRequest) (*StudentReply, error) {
	uid, err := auth.RequireUID(ctx)
	if err != nil {
		return nil, err
	}

	student, err := s.uc.CreateStudent(ctx, &biz.Student{
		UserID:   uid,
		IDType:   req.IDType,
		IDName:   req.IDName,
		IDNumber: req.IDNumber,
		Birthday: time.Unix(req.Birthday, 0),
		Gender:   req.Gender,
	})
	if err != nil {
		return nil, err
	}
	return toStudentReply(student), nil
}

// ListStudentsReply 学员列表响应
type ListStudentsReply struct {
	Students []*StudentReply `json:"students"`
}

// ListStudents 获取当前用户名下的学员列表
func (s *StudentService) ListStudents(ctx context.Context) (*ListStudentsReply, error) {
	uid, err := auth.RequireUID(ctx)
	if err != nil {
		return nil, err
	}

	students, err := s.uc.ListStudents(ctx, uid)
	if err != nil {
		return nil, err
	}

	replies := make([]*StudentReply, len(students))
	for i, st := range students {
		replies[i] = toStudentReply(st)
	}
	return &ListStudentsReply{Students: replies}, nil
}

// DeleteStudentRequest 删除学员请求
type DeleteStudentRequest struct {
	StudentID string `json:"student_id" form:"student_id"`
}

// DeleteStudentReply 删除学员响应
type DeleteStudentReply struct {
	Success bool `json:"success"`
}

// DeleteStudent 删除学员
func (s *StudentService) DeleteStudent(ctx context.Context, req *DeleteStudentRequest) (*DeleteStudentReply, error) {
	if _, err := auth.RequireUID(ctx); err != nil {
		return nil, err
	}

	if err := s.uc.DeleteStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}
	return &DeleteStudentReply{Success: true}, nil
}
