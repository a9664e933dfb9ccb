package domain

import "testing"

func TestGradeExam(t *testing.T) {
	questions := []ExamQuestion{
		{Question: "q1", Options: []string{"a", "b"}, CorrectAnswer: 0},
		{Question: "q2", Options: []string{"a", "b"}, CorrectAnswer: 1},
		{Question: "q3", Options: []string{"a", "b", "c"}, CorrectAnswer: 2},
	}

	tests := []struct {
		name        string
		answers     []int
		wantCorrect int
		wantScore   float64
	}{
		{"all correct", []int{0, 1, 2}, 3, 100},
		{"all wrong", []int{1, 0, 0}, 0, 0},
		{"partial", []int{0, 0, 2}, 2, 200.0 / 3.0},
		{"missing answers count wrong", []int{0}, 1, 100.0 / 3.0},
		{"extra answers ignored", []int{0, 1, 2, 0, 1}, 3, 100},
		{"empty submission", nil, 0, 0},
		{"out of range index is wrong", []int{9, 1, 2}, 2, 200.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			correct, score := GradeExam(questions, tt.answers)
			if correct != tt.wantCorrect {
				t.Fatalf("correct = %d, want %d", correct, tt.wantCorrect)
			}
			if diff := score - tt.wantScore; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("score = %v, want %v", score, tt.wantScore)
			}
		})
	}
}

func TestCourseOwnedBy(t *testing.T) {
	course := &Course{InstructorID: "inst"}

	if !course.OwnedBy("inst", RoleCreator) {
		t.Fatalf("owner must pass")
	}
	if course.OwnedBy("other", RoleCreator) {
		t.Fatalf("non-owner creator must fail")
	}
	if !course.OwnedBy("other", RoleAdmin) {
		t.Fatalf("admin must pass regardless of ownership")
	}
}
