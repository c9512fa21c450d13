package model

import "time"

type LectureType string

const (
	LectureReading LectureType = "READING"
	LectureVideo   LectureType = "VIDEO"
	LecturePDF     LectureType = "PDF"
	LectureQuiz    LectureType = "QUIZ"
)

// IsContent reports whether the type is consumed by viewing rather than by
// submitting answers. Content lectures auto-complete on first gated view.
func (t LectureType) IsContent() bool {
	return t == LectureReading || t == LectureVideo || t == LecturePDF
}

func ValidLectureType(t LectureType) bool {
	return t.IsContent() || t == LectureQuiz
}

// Lecture is one ordered entry of a course. (CourseID, OrderIndex) is unique;
// OrderIndex is 1-based and defines the sequence used for gating.
type Lecture struct {
	BaseModel
	CourseID    uint        `gorm:"uniqueIndex:idx_course_order;not null" json:"courseId"`
	Course      *Course     `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Title       string      `gorm:"size:200;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	Type        LectureType `gorm:"size:10;not null" json:"type"`
	OrderIndex  uint        `gorm:"uniqueIndex:idx_course_order;not null" json:"orderIndex"`
}

func (Lecture) TableName() string {
	return "lectures"
}

// ReadingLecture is the one-to-one extension of a content lecture. Its
// lifecycle is tied to its Lecture: created alongside, deleted with it.
type ReadingLecture struct {
	BaseModel
	LectureID  uint   `gorm:"uniqueIndex;not null" json:"lectureId"`
	Content    string `gorm:"type:text" json:"content"`
	ContentURL string `gorm:"size:500" json:"contentUrl"`
	FileURL    string `gorm:"size:500" json:"fileUrl"`
}

func (ReadingLecture) TableName() string {
	return "reading_lectures"
}

// QuizLecture is the one-to-one extension of a QUIZ lecture, holding the
// submission window and duration.
type QuizLecture struct {
	BaseModel
	LectureID       uint      `gorm:"uniqueIndex;not null" json:"lectureId"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	DurationMinutes int       `gorm:"default:30" json:"durationMinutes"`
}

func (QuizLecture) TableName() string {
	return "quiz_lectures"
}

// IsActive reports whether now falls inside [StartDate, EndDate].
func (q *QuizLecture) IsActive() bool {
	now := time.Now()
	return !now.Before(q.StartDate) && !now.After(q.EndDate)
}

func (q *QuizLecture) IsExpired() bool {
	return time.Now().After(q.EndDate)
}

func (q *QuizLecture) IsNotStarted() bool {
	return time.Now().Before(q.StartDate)
}
