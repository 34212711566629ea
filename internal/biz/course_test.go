package biz

import (
	"context"
	"testing"

	"xinyuan_tech/booking-service/internal/constants"
	"xinyuan_tech/booking-service/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseUsecase(t *testing.T) {
	ctx := context.Background()

	t.Run("get missing course", func(t *testing.T) {
		env := newTestEnv()
		course := NewCourseUsecase(env.courseRepo, testLogger())

		_, err := course.GetCourse(ctx, "missing")
		assert.True(t, errors.IsBizCode(err, errors.ErrCodeCourseNotFound))
	})

	t.Run("create defaults to enrolling", func(t *testing.T) {
		env := newTestEnv()
		course := NewCourseUsecase(env.courseRepo, testLogger())

		c := &Course{Name: "围棋入门", CommunityID: "cm1", MaxStudents: 10}
		require.NoError(t, course.CreateCourse(ctx, c))
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, constants.CourseStatusEnrolling, c.Status)
		assert.Equal(t, 0, c.EnrolledCount)
	})

	t.Run("update preserves enrolled count", func(t *testing.T) {
		env := newTestEnv()
		env.addCourse("c1", 100, 80, 10, 5, constants.CourseStatusEnrolling)
		course := NewCourseUsecase(env.courseRepo, testLogger())

		update := &Course{ID: "c1", Name: "改名", MaxStudents: 10, EnrolledCount: 99}
		require.NoError(t, course.UpdateCourse(ctx, update))

		got, err := course.GetCourse(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, 5, got.EnrolledCount)
		assert.Equal(t, "改名", got.Name)
	})

	t.Run("delete blocked when students enrolled", func(t *testing.T) {
		env := newTestEnv()
		env.addCourse("c1", 100, 80, 10, 1, constants.CourseStatusEnrolling)
		course := NewCourseUsecase(env.courseRepo, testLogger())

		err := course.DeleteCourse(ctx, "c1")
		assert.True(t, errors.IsBizCode(err, errors.ErrCodeCourseHasStudents))
	})

	t.Run("delete empty course", func(t *testing.T) {
		env := newTestEnv()
		env.addCourse("c1", 100, 80, 10, 0, constants.CourseStatusEnrolling)
		course := NewCourseUsecase(env.courseRepo, testLogger())

		require.NoError(t, course.DeleteCourse(ctx, "c1"))
		_, err := course.GetCourse(ctx, "c1")
		assert.True(t, errors.IsBizCode(err, errors.ErrCodeCourseNotFound))
	})

	t.Run("list clamps page size", func(t *testing.T) {
		env := newTestEnv()
		env.addCourse("c1", 100, 80, 10, 0, constants.CourseStatusEnrolling)
		course := NewCourseUsecase(env.courseRepo, testLogger())

		filter := &CourseFilter{Page: 0, PageSize: 10000}
		_, _, err := course.ListCourses(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, 1, filter.Page)
		assert.Equal(t, constants.DefaultPageSize, filter.PageSize)
	})
}

func TestEnrollable(t *testing.T) {
	assert.True(t, (&Course{Status: constants.CourseStatusPending}).Enrollable())
	assert.True(t, (&Course{Status: constants.CourseStatusEnrolling}).Enrollable())
	assert.False(t, (&Course{Status: constants.CourseStatusOngoing}).Enrollable())
	assert.False(t, (&Course{Status: constants.CourseStatusCompleted}).Enrollable())
	assert.False(t, (&Course{Status: constants.CourseStatusCancelled}).Enrollable())
}

func TestNewOrderNo(t *testing.T) {
	no := NewOrderNo()
	assert.Len(t, no, len(constants.OrderNoPrefix)+14+8)
	assert.Equal(t, constants.OrderNoPrefix, no[:len(constants.OrderNoPrefix)])
	assert.NotEqual(t, no, NewOrderNo())
}
