package handler

import (
	"time"

	"github.com/eduskill/eduskill-api/internal/core/domain"
	"github.com/eduskill/eduskill-api/internal/core/ports"
)

type createCourseRequest struct {
	Title           string  `json:"title" validate:"required"`
	Description     string  `json:"description" validate:"required"`
	Thumbnail       string  `json:"thumbnail"`
	Category        string  `json:"category" validate:"required,oneof='Video Editing' Photography Cooking 'Event Management' Other"`
	Level           string  `json:"level" validate:"required,oneof=Beginner Intermediate Advanced"`
	Price           float64 `json:"price" validate:"gte=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"gte=0"`
}

type updateCourseRequest struct {
	Title           *string  `json:"title" validate:"omitempty,min=1"`
	Description     *string  `json:"description"`
	Thumbnail       *string  `json:"thumbnail"`
	Category        *string  `json:"category" validate:"omitempty,oneof='Video Editing' Photography Cooking 'Event Management' Other"`
	Level           *string  `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Price           *float64 `json:"price" validate:"omitempty,gte=0"`
	DurationMinutes *int     `json:"duration_minutes" validate:"omitempty,gte=0"`
	IsActive        *bool    `json:"is_active"`
}

type addModuleRequest struct {
	Title    string `json:"title" validate:"required"`
	VideoURL string `json:"video_url" validate:"required"`
	Duration int    `json:"duration" validate:"gte=0"`
}

type examQuestionRequest struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2"`
	CorrectAnswer int      `json:"correct_answer" validate:"gte=0"`
}

type setExamRequest struct {
	Questions []examQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

type submitExamRequest struct {
	Answers []int `json:"answers"`
}

// courseResponse is the course read model returned by every course endpoint.
// The exam never rides along: question lists are served only by the exam
// endpoint, which strips correct-option indices for non-owners.
type courseResponse struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Thumbnail       string          `json:"thumbnail"`
	Category        domain.Category `json:"category"`
	Level           domain.Level    `json:"level"`
	Price           float64         `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	InstructorID    string          `json:"instructor_id"`
	InstructorName  string          `json:"instructor_name,omitempty"`
	Modules         []domain.Module `json:"modules"`
	HasExam         bool            `json:"has_exam"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toCourseResponse(c *domain.Course) courseResponse {
	return courseResponse{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		Thumbnail:       c.Thumbnail,
		Category:        c.Category,
		Level:           c.Level,
		Price:           c.Price,
		DurationMinutes: c.DurationMinutes,
		InstructorID:    c.InstructorID,
		InstructorName:  c.InstructorName,
		Modules:         c.Modules,
		HasExam:         len(c.Exam) > 0,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
	}
}

func toCourseResponses(courses []*domain.Course) []courseResponse {
	out := make([]courseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, toCourseResponse(c))
	}
	return out
}

type examQuestionResponse struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correct_answer,omitempty"`
}

type examResponse struct {
	CourseTitle string                 `json:"course_title"`
	Questions   []examQuestionResponse `json:"questions"`
}

type examResultResponse struct {
	Passed         bool                  `json:"passed"`
	Score          float64               `json:"score"`
	TotalQuestions int                   `json:"total_questions"`
	CorrectAnswers int                   `json:"correct_answers"`
	Certificate    *domain.Certification `json:"certificate,omitempty"`
}

func (r createCourseRequest) toInput(instructorID string) ports.CreateCourseInput {
	return ports.CreateCourseInput{
		Title:           r.Title,
		Description:     r.Description,
		Thumbnail:       r.Thumbnail,
		Category:        domain.Category(r.Category),
		Level:           domain.Level(r.Level),
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		InstructorID:    instructorID,
	}
}

func (r updateCourseRequest) toUpdate() ports.CourseUpdate {
	update := ports.CourseUpdate{
		Title:           r.Title,
		Description:     r.Description,
		Thumbnail:       r.Thumbnail,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		IsActive:        r.IsActive,
	}
	if r.Category != nil {
		cat := domain.Category(*r.Category)
		update.Category = &cat
	}
	if r.Level != nil {
		lvl := domain.Level(*r.Level)
		update.Level = &lvl
	}
	return update
}

func toExamResponse(view *ports.ExamView) examResponse {
	resp := examResponse{
		CourseTitle: view.CourseTitle,
		Questions:   make([]examQuestionResponse, 0, len(view.Questions)),
	}
	for _, q := range view.Questions {
		resp.Questions = append(resp.Questions, examQuestionResponse{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return resp
}
