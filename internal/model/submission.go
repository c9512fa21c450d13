package model

import "time"

// QuizSubmission is the raw, immutable record of one quiz attempt, kept for
// manual instructor review. Distinct from the automatic score in Progress.
type QuizSubmission struct {
	BaseModel
	QuizLectureID uint         `gorm:"index;not null" json:"quizLectureId"`
	QuizLecture   *QuizLecture `gorm:"foreignKey:QuizLectureID" json:"-"`
	StudentID     uint         `gorm:"index;not null" json:"studentId"`
	Student       *User        `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	SubmittedAt   time.Time    `json:"submittedAt"`
	Answers       []Answer     `gorm:"foreignKey:SubmissionID" json:"answers,omitempty"`
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}

// Answer records one selected option per question of a submission.
type Answer struct {
	BaseModel
	SubmissionID        uint `gorm:"index;not null" json:"submissionId"`
	QuestionID          uint `gorm:"index;not null" json:"questionId"`
	SelectedOptionIndex int  `gorm:"not null" json:"selectedOptionIndex"`
}

func (Answer) TableName() string {
	return "answers"
}

// Grade is the optional manual overlay an instructor attaches to a raw
// submission. It never touches Progress.
type Grade struct {
	BaseModel
	SubmissionID uint      `gorm:"uniqueIndex;not null" json:"submissionId"`
	TeacherID    uint      `gorm:"index;not null" json:"teacherId"`
	Score        float64   `json:"score"`
	GradedAt     time.Time `json:"gradedAt"`
}

func (Grade) TableName() string {
	return "grades"
}
