package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eduskill/eduskill-api/internal/metrics"
	"github.com/eduskill/eduskill-api/internal/core/domain"
	"github.com/eduskill/eduskill-api/internal/core/ports"
)

// CourseService implements the catalogue and the exam grading /
// certification flow.
type CourseService struct {
	courses ports.CourseRepository
	certs   ports.CertificationRepository
	users   ports.UserRepository
	logger  zerolog.Logger
}

func NewCourseService(
	courses ports.CourseRepository,
	certs ports.CertificationRepository,
	users ports.UserRepository,
	logger zerolog.Logger,
) *CourseService {
	return &CourseService{courses: courses, certs: certs, users: users, logger: logger}
}

func (s *CourseService) Create(ctx context.Context, input ports.CreateCourseInput) (*domain.Course, error) {
	course := &domain.Course{
		Title:           input.Title,
		Description:     input.Description,
		Thumbnail:       input.Thumbnail,
		Category:        input.Category,
		Level:           input.Level,
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		InstructorID:    input.InstructorID,
		IsActive:        true,
		CreatedAt:       time.Now().UTC(),
	}

	created, err := s.courses.Create(ctx, course)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create course")
		return nil, err
	}

	s.logger.Info().Str("course_id", created.ID).Str("instructor_id", input.InstructorID).Msg("course created")
	return created, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	return s.courses.FindByID(ctx, id)
}

func (s *CourseService) List(ctx context.Context, filter ports.ListCoursesFilter) ([]*domain.Course, error) {
	return s.courses.List(ctx, filter)
}

func (s *CourseService) MyCourses(ctx context.Context, instructorID string) ([]*domain.Course, error) {
	return s.courses.List(ctx, ports.ListCoursesFilter{InstructorID: instructorID})
}

// ownerScope returns the instructor filter to apply: empty for admins (no
// scoping), the caller's id otherwise. Ownership is enforced in the query so
// a non-owner sees not-found rather than a distinguishable forbidden.
func ownerScope(userID string, role domain.Role) string {
	if role == domain.RoleAdmin {
		return ""
	}
	return userID
}

func (s *CourseService) Update(ctx context.Context, id, userID string, role domain.Role, update ports.CourseUpdate) (*domain.Course, error) {
	return s.courses.Update(ctx, id, ownerScope(userID, role), update)
}

func (s *CourseService) Delete(ctx context.Context, id, userID string, role domain.Role) error {
	if err := s.courses.Delete(ctx, id, ownerScope(userID, role)); err != nil {
		return err
	}
	s.logger.Info().Str("course_id", id).Str("user_id", userID).Msg("course deleted")
	return nil
}

func (s *CourseService) AddModule(ctx context.Context, id, userID string, m domain.Module) (*domain.Course, error) {
	return s.courses.AddModule(ctx, id, userID, m)
}

func (s *CourseService) SetExam(ctx context.Context, id, userID string, questions []domain.ExamQuestion) (*domain.Course, error) {
	if len(questions) == 0 {
		return nil, domain.ErrNoExam
	}
	return s.courses.SetExam(ctx, id, userID, questions)
}

// GetExam returns the course's question list. The correct-option index is
// stripped from every question unless the caller owns the course or is an
// admin; the redacted view is built fresh on every call so an unredacted form
// never reaches a student-facing response.
func (s *CourseService) GetExam(ctx context.Context, id, userID string, role domain.Role) (*ports.ExamView, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	includeAnswers := course.OwnedBy(userID, role)
	view := &ports.ExamView{
		CourseTitle: course.Title,
		Questions:   make([]ports.ExamQuestionView, 0, len(course.Exam)),
	}
	for _, q := range course.Exam {
		qv := ports.ExamQuestionView{Question: q.Question, Options: q.Options}
		if includeAnswers {
			answer := q.CorrectAnswer
			qv.CorrectAnswer = &answer
		}
		view.Questions = append(view.Questions, qv)
	}
	return view, nil
}

// SubmitExam grades the submission and, on a first pass, mints a certificate
// and attaches it to the user's profile. Certificate issuance is idempotent
// per (user, course): re-passing returns the original certificate and never
// updates its recorded score.
func (s *CourseService) SubmitExam(ctx context.Context, courseID, userID string, answers []int) (*ports.ExamResult, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if len(course.Exam) == 0 {
		return nil, domain.ErrNoExam
	}

	correct, score := domain.GradeExam(course.Exam, answers)
	passed := score >= domain.PassThreshold

	result := &ports.ExamResult{
		Passed:         passed,
		Score:          score,
		TotalQuestions: len(course.Exam),
		CorrectAnswers: correct,
	}

	if !passed {
		metrics.ExamsSubmittedTotal.WithLabelValues("failed").Inc()
		s.logger.Info().
			Str("course_id", courseID).
			Str("user_id", userID).
			Float64("score", score).
			Msg("exam failed")
		return result, nil
	}

	existing, err := s.certs.FindByUserAndCourse(ctx, userID, courseID)
	switch {
	case err == nil:
		// Already certified: first pass wins, return it unchanged.
		result.Certificate = existing
	case errors.Is(err, domain.ErrCertificationNotFound):
		cert := &domain.Certification{
			UserID:        userID,
			CourseID:      courseID,
			ExamScore:     score,
			IssueDate:     time.Now().UTC(),
			CertificateID: uuid.NewString(),
		}
		created, createErr := s.certs.Create(ctx, cert)
		if createErr != nil {
			return nil, createErr
		}
		// Attaching the reference is a separate write; a crash in between
		// leaves an orphaned certificate rather than a missing one.
		if refErr := s.users.AddCertification(ctx, userID, created.ID); refErr != nil {
			return nil, refErr
		}
		metrics.CertificatesIssuedTotal.Inc()
		s.logger.Info().
			Str("course_id", courseID).
			Str("user_id", userID).
			Str("certificate_id", created.CertificateID).
			Float64("score", score).
			Msg("certificate issued")
		result.Certificate = created
	default:
		return nil, err
	}

	metrics.ExamsSubmittedTotal.WithLabelValues("passed").Inc()
	return result, nil
}
