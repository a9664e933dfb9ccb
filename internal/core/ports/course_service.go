package ports

import (
	"context"

	"github.com/eduskill/eduskill-api/internal/core/domain"
)

// CreateCourseInput carries all data needed to publish a new course.
type CreateCourseInput struct {
	Title           string
	Description     string
	Thumbnail       string
	Category        domain.Category
	Level           domain.Level
	Price           float64
	DurationMinutes int
	InstructorID    string
}

// ExamQuestionView is a single question as exposed to a caller. CorrectAnswer
// is nil on the redacted (student-facing) view.
type ExamQuestionView struct {
	Question      string
	Options       []string
	CorrectAnswer *int
}

// ExamView is the exam read model returned by GetExam.
type ExamView struct {
	CourseTitle string
	Questions   []ExamQuestionView
}

// ExamResult is returned by SubmitExam. Certificate is nil when the
// submission did not pass.
type ExamResult struct {
	Passed         bool
	Score          float64
	TotalQuestions int
	CorrectAnswers int
	Certificate    *domain.Certification
}

// CourseService defines use-case operations for the course catalogue and the
// exam grading / certification flow.
type CourseService interface {
	Create(ctx context.Context, input CreateCourseInput) (*domain.Course, error)
	Get(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context, filter ListCoursesFilter) ([]*domain.Course, error)
	MyCourses(ctx context.Context, instructorID string) ([]*domain.Course, error)
	// Update and Delete are scoped to the owner; admins bypass the scoping.
	Update(ctx context.Context, id, userID string, role domain.Role, update CourseUpdate) (*domain.Course, error)
	Delete(ctx context.Context, id, userID string, role domain.Role) error
	AddModule(ctx context.Context, id, userID string, m domain.Module) (*domain.Course, error)
	SetExam(ctx context.Context, id, userID string, questions []domain.ExamQuestion) (*domain.Course, error)
	// GetExam redacts correct-option indices unless the caller owns the course
	// or is an admin.
	GetExam(ctx context.Context, id, userID string, role domain.Role) (*ExamView, error)
	// SubmitExam grades the answers and, on a first pass, mints a certificate.
	// Re-passing returns the existing certificate unchanged.
	SubmitExam(ctx context.Context, courseID, userID string, answers []int) (*ExamResult, error)
}
