package model

import "time"

// Course 课程模型
type Course struct {
	CourseID      string     `gorm:"primaryKey;column:course_id"`
	CommunityID   string     `gorm:"column:community_id;not null;index:idx_community_id"`
	TeacherID     string     `gorm:"column:teacher_id;not null;index:idx_teacher_id"`
	Name          string     `gorm:"column:name"`
	Image         string     `gorm:"column:image"`
	AgeMin        int        `gorm:"column:age_min"`
	AgeMax        int        `gorm:"column:age_max"`
	TotalWeeks    int        `gorm:"column:total_weeks"`
	TotalLessons  int        `gorm:"column:total_lessons"`
	ScheduleDay   string     `gorm:"column:schedule_day"`
	Location      string     `gorm:"column:location"`
	Price         float64    `gorm:"column:price"`
	MemberPrice   float64    `gorm:"column:member_price"`
	MinStudents   int        `gorm:"column:min_students"`
	MaxStudents   int        `gorm:"column:max_students"`
	EnrolledCount int        `gorm:"column:enrolled_count;default:0"`
	Deadline      time.Time  `gorm:"column:deadline;index:idx_deadline"`
	StartDate     *time.Time `gorm:"column:start_date"`
	Status        string     `gorm:"column:status;default:'enrolling';index:idx_status"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (Course) TableName() string { return "course" }
