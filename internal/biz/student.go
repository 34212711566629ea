package biz

import (
	"context"
	"time"

	"xinyuan_tech/booking-service/internal/auth"
	"xinyuan_tech/booking-service/internal/errors"

	"github.com/go-kratos/kratos/v2/log"
)

// Student 学员(用户名下的受托报名人)
type Student struct {
	ID        string
	UserID    string // 所属用户
	IDType    string
	IDName    string
	IDNumber  string
	Birthday  time.Time
	Gender    string
	Status    int // 1正常 0禁用
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StudentRepo 学员仓库接口
type StudentRepo interface {
	// GetStudent 不存在时返回 (nil, nil)
	GetStudent(ctx context.Context, id string) (*Student, error)
	ListStudentsByUser(ctx context.Context, userID string) ([]*Student, error)
	CreateStudent(ctx context.Context, student *Student) error
	DeleteStudent(ctx context.Context, id string) error
}

// StudentUsecase 学员业务逻辑
type StudentUsecase struct {
	repo StudentRepo
	log  *log.Helper
}

// NewStudentUsecase 创建学员业务用例
func NewStudentUsecase(repo StudentRepo, logger log.Logger) *StudentUsecase {
	return &StudentUsecase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// CreateStudent 添加学员
func (uc *StudentUsecase) CreateStudent(ctx context.Context, student *Student) (*Student, error) {
	uc.log.Infof("CreateStudent: user=%s, name=%s", student.UserID, student.IDName)

	now := time.Now()
	student.ID = NewID()
	student.Status = 1
	student.CreatedAt = now
	student.UpdatedAt = now

	if err := uc.repo.CreateStudent(ctx, student); err != nil {
		uc.log.Errorf("Failed to create student: %v", err)
		return nil, err
	}
	return student, nil
}

// ListStudents 获取当前用户名下的学员列表
func (uc *StudentUsecase) ListStudents(ctx context.Context, userID string) ([]*Student, error) {
	return uc.repo.ListStudentsByUser(ctx, userID)
}

// GetStudent 获取学员详情(含归属校验)
func (uc *StudentUsecase) GetStudent(ctx context.Context, id string) (*Student, error) {
	student, err := uc.repo.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, errors.ErrStudentNotFound()
	}
	if err := auth.CheckOwnership(ctx, student.UserID); err != nil {
		return nil, err
	}
	return student, nil
}

// DeleteStudent 删除学员(含归属校验)
func (uc *StudentUsecase) DeleteStudent(ctx context.Context, id string) error {
	student, err := uc.repo.GetStudent(ctx, id)
	if err != nil {
		return err
	}
	if student == nil {
		return errors.ErrStudentNotFound()
	}
	if err := auth.CheckOwnership(ctx, student.UserID); err != nil {
		return err
	}
	return uc.repo.DeleteStudent(ctx, id)
}
