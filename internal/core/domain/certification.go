package domain

import "time"

// Certification proves a user passed a course's exam at least once. Exactly
// one exists per (user, course) pair; the recorded score is the score of the
// first passing submission and is never updated by retakes.
type Certification struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	CourseID       string    `json:"course_id"`
	CourseTitle    string    `json:"course_title,omitempty"`
	CourseCategory Category  `json:"course_category,omitempty"`
	ExamScore      float64   `json:"exam_score"`
	IssueDate      time.Time `json:"issue_date"`
	CertificateID  string    `json:"certificate_id"`
}
