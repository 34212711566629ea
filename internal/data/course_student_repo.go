package data

import (
	"context"

	"xinyuan_tech/booking-service/internal/biz"
	"xinyuan_tech/booking-service/internal/constants"
	"xinyuan_tech/booking-service/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
)

// courseStudentRepo 课程学员关联仓库实现
type courseStudentRepo struct {
	data *Data
	log  *log.Helper
}

// NewCourseStudentRepo 创建课程学员关联仓库
func NewCourseStudentRepo(data *Data, logger log.Logger) biz.CourseStudentRepo {
	return &courseStudentRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func toCourseStudentBiz(m *model.CourseStudent) *biz.CourseStudent {
	return &biz.CourseStudent{
		ID:        m.CourseStudentID,
		CourseID:  m.CourseID,
		StudentID: m.StudentID,
		OrderID:   m.OrderID,
		Price:     m.Price,
		IsNewUser: m.IsNewUser,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
}

func toCourseStudentModel(cs *biz.CourseStudent) *model.CourseStudent {
	return &model.CourseStudent{
		CourseStudentID: cs.ID,
		CourseID:        cs.CourseID,
		StudentID:       cs.StudentID,
		OrderID:         cs.OrderID,
		Price:           cs.Price,
		IsNewUser:       cs.IsNewUser,
		Status:          cs.Status,
		CreatedAt:       cs.CreatedAt,
	}
}

// CreateCourseStudent 创建课程学员关联
func (r *courseStudentRepo) CreateCourseStudent(ctx context.Context, cs *biz.CourseStudent) error {
	if err := r.data.DB(ctx).Create(toCourseStudentModel(cs)).Error; err != nil {
		r.log.Errorf("Failed to create course_student: %v", err)
		return err
	}
	return nil
}

// FindActiveByCourse 查询指定学员在该课程下的非终态记录(排除已取消和已退款)
func (r *courseStudentRepo) FindActiveByCourse(ctx context.Context, courseID string, studentIDs []string) ([]*biz.CourseStudent, error) {
	var models []model.CourseStudent
	if err := r.data.DB(ctx).
		Where("course_id = ? AND student_id IN ? AND status NOT IN ?",
			courseID, studentIDs,
			[]string{constants.EnrollmentStatusCancelled, constants.EnrollmentStatusRefunded}).
		Find(&models).Error; err != nil {
		r.log.Errorf("Failed to find enrollments for course %s: %v", courseID, err)
		return nil, err
	}

	result := make([]*biz.CourseStudent, len(models))
	for i := range models {
		result[i] = toCourseStudentBiz(&models[i])
	}
	return result, nil
}

// ListByOrder 获取订单下的所有关联记录
func (r *courseStudentRepo) ListByOrder(ctx context.Context, orderID string) ([]*biz.CourseStudent, error) {
	var models []model.CourseStudent
	if err := r.data.DB(ctx).
		Where("order_id = ?", orderID).
		Find(&models).Error; err != nil {
		r.log.Errorf("Failed to list enrollments for order %s: %v", orderID, err)
		return nil, err
	}

	result := make([]*biz.CourseStudent, len(models))
	for i := range models {
		result[i] = toCourseStudentBiz(&models[i])
	}
	return result, nil
}

// UpdateStatusByOrder 按订单批量更新关联状态
func (r *courseStudentRepo) UpdateStatusByOrder(ctx context.Context, orderID, status string) error {
	if err := r.data.DB(ctx).Model(&model.CourseStudent{}).
		Where("order_id = ?", orderID).
		Update("status", status).Error; err != nil {
		r.log.Errorf("Failed to update enrollment status for order %s: %v", orderID, err)
		return err
	}
	return nil
}

// DeleteByOrder 按订单删除关联记录
func (r *courseStudentRepo) DeleteByOrder(ctx context.Context, orderID string) error {
	if err := r.data.DB(ctx).
		Delete(&model.CourseStudent{}, "order_id = ?", orderID).Error; err != nil {
		r.log.Errorf("Failed to delete enrollments for order %s: %v", orderID, err)
		return err
	}
	return nil
}
