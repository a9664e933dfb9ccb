package domain

import "time"

// Category is the subject area a course belongs to.
type Category string

const (
	CategoryVideoEditing    Category = "Video Editing"
	CategoryPhotography     Category = "Photography"
	CategoryCooking         Category = "Cooking"
	CategoryEventManagement Category = "Event Management"
	CategoryOther           Category = "Other"
)

// Level is the difficulty rating of a course.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// PassThreshold is the minimum exam score (percent) required to earn a
// certificate. It is fixed platform-wide, not configurable per course.
const PassThreshold = 70.0

// Module is a single lesson inside a course.
type Module struct {
	Title    string `json:"title" bson:"title"`
	VideoURL string `json:"video_url" bson:"video_url"`
	Duration int    `json:"duration" bson:"duration"` // minutes
}

// ExamQuestion is a multiple-choice question. CorrectAnswer is the index into
// Options and must never reach a non-owner response.
type ExamQuestion struct {
	Question      string   `json:"question" bson:"question"`
	Options       []string `json:"options" bson:"options"`
	CorrectAnswer int      `json:"correct_answer" bson:"correct_answer"`
}

// Course is owned by exactly one instructor.
type Course struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Thumbnail       string         `json:"thumbnail"`
	Category        Category       `json:"category"`
	Level           Level          `json:"level"`
	Price           float64        `json:"price"`
	DurationMinutes int            `json:"duration_minutes"`
	InstructorID    string         `json:"instructor_id"`
	InstructorName  string         `json:"instructor_name,omitempty"`
	Modules         []Module       `json:"modules"`
	Exam            []ExamQuestion `json:"exam,omitempty"`
	IsActive        bool           `json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
}

// OwnedBy reports whether the given user may edit this course. Admins may
// edit any course.
func (c *Course) OwnedBy(userID string, role Role) bool {
	return role == RoleAdmin || c.InstructorID == userID
}

// GradeExam scores submitted answer indices against the stored questions.
// Grading is positional: the answer at index i is compared to question i's
// correct-option index. Missing or out-of-range answers count as wrong, extra
// answers beyond the question count are ignored. There is no partial credit.
func GradeExam(questions []ExamQuestion, answers []int) (correct int, score float64) {
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	score = float64(correct) / float64(len(questions)) * 100
	return correct, score
}
