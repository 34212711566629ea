package data

import (
	"context"
	"errors"

	"xinyuan_tech/booking-service/internal/biz"
	"xinyuan_tech/booking-service/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
)

// studentRepo 学员仓库实现
type studentRepo struct {
	data *Data
	log  *log.Helper
}

// NewStudentRepo 创建学员仓库
func NewStudentRepo(data *Data, logger log.Logger) biz.StudentRepo {
	return &studentRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func toStudentBiz(m *model.Student) *biz.Student {
	return &biz.Student{
		ID:        m.StudentID,
		UserID:    m.UserID,
		IDType:    m.IDType,
		IDName:    m.IDName,
		IDNumber:  m.IDNumber,
		Birthday:  m.Birthday,
		Gender:    m.Gender,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toStudentModel(s *biz.Student) *model.Student {
	return &model.Student{
		StudentID: s.ID,
		UserID:    s.UserID,
		IDType:    s.IDType,
		IDName:    s.IDName,
		IDNumber:  s.IDNumber,
		Birthday:  s.Birthday,
		Gender:    s.Gender,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// GetStudent 根据ID获取学员
func (r *studentRepo) GetStudent(ctx context.Context, id string) (*biz.Student, error) {
	var m model.Student
	err := r.data.DB(ctx).First(&m, "student_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Errorf("Failed to get student %s: %v", id, err)
		return nil, err
	}
	return toStudentBiz(&m), nil
}

// ListStudentsByUser 获取用户名下的学员列表
func (r *studentRepo) ListStudentsByUser(ctx context.Context, userID string) ([]*biz.Student, error) {
	var models []model.Student
	if err := r.data.DB(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		r.log.Errorf("Failed to list students for user %s: %v", userID, err)
		return nil, err
	}

	students := make([]*biz.Student, len(models))
	for i := range models {
		students[i] = toStudentBiz(&models[i])
	}
	return students, nil
}

// CreateStudent 创建学员
func (r *studentRepo) CreateStudent(ctx context.Context, student *biz.Student) error {
	if err := r.data.DB(ctx).Create(toStudentModel(student)).Error; err != nil {
		r.log.Errorf("Failed to create student: %v", err)
		return err
	}
	return nil
}

// DeleteStudent 删除学员
func (r *studentRepo) DeleteStudent(ctx context.Context, id string) error {
	if err := r.data.DB(ctx).Delete(&model.Student{}, "student_id = ?", id).Error; err != nil {
		r.log.Errorf("Failed to delete student %s: %v", id, err)
		return err
	}
	return nil
}
