package ports

import (
	"context"

	"github.com/eduskill/eduskill-api/internal/core/domain"
)

// ListCoursesFilter carries the optional catalogue filters.
type ListCoursesFilter struct {
	Category     string
	Level        string
	InstructorID string // non-empty = only courses owned by this instructor
}

// CourseRepository defines persistence operations on the courses collection.
type CourseRepository interface {
	Create(ctx context.Context, c *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context, filter ListCoursesFilter) ([]*domain.Course, error)
	// Update applies the given field set to the course matching id, scoped to
	// instructorID when non-empty (owner-or-admin enforcement in the query).
	Update(ctx context.Context, id, instructorID string, update CourseUpdate) (*domain.Course, error)
	Delete(ctx context.Context, id, instructorID string) error
	AddModule(ctx context.Context, id, instructorID string, m domain.Module) (*domain.Course, error)
	SetExam(ctx context.Context, id, instructorID string, questions []domain.ExamQuestion) (*domain.Course, error)
	Count(ctx context.Context) (int64, error)
}

// CourseUpdate carries the editable course fields. Nil pointers mean "leave
// unchanged".
type CourseUpdate struct {
	Title           *string
	Description     *string
	Thumbnail       *string
	Category        *domain.Category
	Level           *domain.Level
	Price           *float64
	DurationMinutes *int
	IsActive        *bool
}
