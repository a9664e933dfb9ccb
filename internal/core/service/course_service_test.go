package service

import (
	"context"
	"errors"
	"testing"

	"github.com/eduskill/eduskill-api/internal/core/domain"
	"github.com/eduskill/eduskill-api/internal/core/ports"
)

func newCourseFixture() (*CourseService, *stubCourseRepo, *stubCertRepo, *stubUserRepo) {
	courses := newStubCourseRepo()
	certs := newStubCertRepo()
	users := newStubUserRepo()
	return NewCourseService(courses, certs, users, discardLogger), courses, certs, users
}

// seedExamCourse creates a course with a 4-question exam whose correct
// answers are 0, 1, 2, 0.
func seedExamCourse(t *testing.T, svc *CourseService, instructorID string) *domain.Course {
	t.Helper()
	course, err := svc.Create(context.Background(), ports.CreateCourseInput{
		Title:        "Photo Basics",
		Description:  "camera fundamentals",
		Category:     domain.CategoryPhotography,
		Level:        domain.LevelBeginner,
		InstructorID: instructorID,
	})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	questions := []domain.ExamQuestion{
		{Question: "q1", Options: []string{"a", "b"}, CorrectAnswer: 0},
		{Question: "q2", Options: []string{"a", "b"}, CorrectAnswer: 1},
		{Question: "q3", Options: []string{"a", "b", "c"}, CorrectAnswer: 2},
		{Question: "q4", Options: []string{"a", "b"}, CorrectAnswer: 0},
	}
	if _, err := svc.SetExam(context.Background(), course.ID, instructorID, questions); err != nil {
		t.Fatalf("set exam: %v", err)
	}
	return course
}

func TestSubmitExam_NoExam(t *testing.T) {
	svc, _, _, _ := newCourseFixture()
	course, err := svc.Create(context.Background(), ports.CreateCourseInput{
		Title: "No Exam Yet", Description: "d", Category: domain.CategoryOther,
		Level: domain.LevelBeginner, InstructorID: "inst",
	})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	if _, err := svc.SubmitExam(context.Background(), course.ID, "student", []int{0}); !errors.Is(err, domain.ErrNoExam) {
		t.Fatalf("expected ErrNoExam, got %v", err)
	}
}

func TestSubmitExam_UnknownCourse(t *testing.T) {
	svc, _, _, _ := newCourseFixture()
	if _, err := svc.SubmitExam(context.Background(), "nope", "student", nil); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestSubmitExam_FailBelowThreshold(t *testing.T) {
	svc, _, certs, users := newCourseFixture()
	users.addUser("student", "Sam", domain.RoleStudent)
	course := seedExamCourse(t, svc, "inst")

	// 2 of 4 correct = 50%.
	result, err := svc.SubmitExam(context.Background(), course.ID, "student", []int{0, 1, 0, 1})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Passed {
		t.Fatalf("50%% must not pass")
	}
	if result.Score != 50 || result.CorrectAnswers != 2 || result.TotalQuestions != 4 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Certificate != nil {
		t.Fatalf("failed submission must not carry a certificate")
	}
	if n, _ := certs.Count(context.Background()); n != 0 {
		t.Fatalf("no certificate may be stored on failure, found %d", n)
	}
}

func TestSubmitExam_ExactThresholdPasses(t *testing.T) {
	svc, _, _, users := newCourseFixture()
	users.addUser("student", "Sam", domain.RoleStudent)
	course := seedExamCourse(t, svc, "inst")

	// 3 of 4 correct = 75% >= 70.
	result, err := svc.SubmitExam(context.Background(), course.ID, "student", []int{0, 1, 2, 1})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Passed {
		t.Fatalf("75%% must pass")
	}
	if result.Certificate == nil {
		t.Fatalf("passing submission must mint a certificate")
	}
	if result.Certificate.CertificateID == "" {
		t.Fatalf("certificate must carry a public certificate id")
	}
	if result.Certificate.ExamScore != 75 {
		t.Fatalf("certificate must record the passing score, got %v", result.Certificate.ExamScore)
	}

	// The reference landed on the user's profile.
	u, err := users.FindByID(context.Background(), "student")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if len(u.Certifications) != 1 || u.Certifications[0] != result.Certificate.ID {
		t.Fatalf("certification reference not attached: %v", u.Certifications)
	}
}

func TestSubmitExam_RepassKeepsOriginalCertificate(t *testing.T) {
	svc, _, certs, users := newCourseFixture()
	users.addUser("student", "Sam", domain.RoleStudent)
	course := seedExamCourse(t, svc, "inst")

	first, err := svc.SubmitExam(context.Background(), course.ID, "student", []int{0, 1, 2, 1}) // 75
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}

	second, err := svc.SubmitExam(context.Background(), course.ID, "student", []int{0, 1, 2, 0}) // 100
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if !second.Passed || second.Score != 100 {
		t.Fatalf("second result must report the fresh grade, got %+v", second)
	}
	if second.Certificate.ID != first.Certificate.ID {
		t.Fatalf("re-pass must return the original certificate")
	}
	if second.Certificate.ExamScore != 75 {
		t.Fatalf("certificate score must stay at the first passing score, got %v", second.Certificate.ExamScore)
	}
	if n, _ := certs.Count(context.Background()); n != 1 {
		t.Fatalf("exactly one certificate per (user, course), found %d", n)
	}

	u, _ := users.FindByID(context.Background(), "student")
	if len(u.Certifications) != 1 {
		t.Fatalf("certification reference must not duplicate: %v", u.Certifications)
	}
}

func TestSubmitExam_MissingAnswersCountWrong(t *testing.T) {
	svc, _, _, users := newCourseFixture()
	users.addUser("student", "Sam", domain.RoleStudent)
	course := seedExamCourse(t, svc, "inst")

	// Only one answer submitted for four questions.
	result, err := svc.SubmitExam(context.Background(), course.ID, "student", []int{0})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.CorrectAnswers != 1 || result.Score != 25 {
		t.Fatalf("missing answers must count wrong: %+v", result)
	}

	// Extra answers past the question count are ignored.
	result, err = svc.SubmitExam(context.Background(), course.ID, "student", []int{0, 1, 2, 0, 9, 9})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 100 {
		t.Fatalf("extra answers must not affect the score: %+v", result)
	}
}

func TestGetExam_RedactsAnswersForStudents(t *testing.T) {
	svc, _, _, _ := newCourseFixture()
	course := seedExamCourse(t, svc, "inst")

	view, err := svc.GetExam(context.Background(), course.ID, "student", domain.RoleStudent)
	if err != nil {
		t.Fatalf("get exam: %v", err)
	}
	if len(view.Questions) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(view.Questions))
	}
	for i, q := range view.Questions {
		if q.CorrectAnswer != nil {
			t.Fatalf("question %d leaked its correct answer", i)
		}
	}
}

func TestGetExam_IncludesAnswersForOwnerAndAdmin(t *testing.T) {
	svc, _, _, _ := newCourseFixture()
	course := seedExamCourse(t, svc, "inst")

	for _, tc := range []struct {
		userID string
		role   domain.Role
	}{
		{"inst", domain.RoleCreator},
		{"someone-else", domain.RoleAdmin},
	} {
		view, err := svc.GetExam(context.Background(), course.ID, tc.userID, tc.role)
		if err != nil {
			t.Fatalf("get exam as %s: %v", tc.role, err)
		}
		if view.Questions[1].CorrectAnswer == nil || *view.Questions[1].CorrectAnswer != 1 {
			t.Fatalf("%s must see correct answers", tc.role)
		}
	}
}

func TestUpdate_OwnerScoping(t *testing.T) {
	svc, _, _, _ := newCourseFixture()
	course := seedExamCourse(t, svc, "inst")

	title := "Renamed"
	// Non-owner creator sees not-found, not forbidden.
	if _, err := svc.Update(context.Background(), course.ID, "other", domain.RoleCreator, ports.CourseUpdate{Title: &title}); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound for non-owner, got %v", err)
	}

	// Admin bypasses the scope.
	updated, err := svc.Update(context.Background(), course.ID, "other", domain.RoleAdmin, ports.CourseUpdate{Title: &title})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("title not applied: %q", updated.Title)
	}
}

func TestSetExam_RejectsEmptyQuestionList(t *testing.T) {
	svc, _, _, _ := newCourseFixture()
	course := seedExamCourse(t, svc, "inst")

	if _, err := svc.SetExam(context.Background(), course.ID, "inst", nil); !errors.Is(err, domain.ErrNoExam) {
		t.Fatalf("expected ErrNoExam, got %v", err)
	}
}
