package model

import "gorm.io/datatypes"

// Question belongs to one QuizLecture. CorrectIndex must index into Options;
// the range is enforced at the service boundary.
type Question struct {
	BaseModel
	QuizLectureID uint                        `gorm:"index;not null" json:"quizLectureId"`
	Text          string                      `gorm:"type:text;not null" json:"text"`
	Options       datatypes.JSONSlice[string] `json:"options"`
	CorrectIndex  int                         `gorm:"not null" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}
