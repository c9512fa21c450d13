package model

// Enrollment ties a student to a course. One per (student, course) pair,
// immutable after creation.
type Enrollment struct {
	BaseModel
	StudentID uint    `gorm:"uniqueIndex:idx_student_course;not null" json:"studentId"`
	Student   *User   `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	CourseID  uint    `gorm:"uniqueIndex:idx_student_course;not null" json:"courseId"`
	Course    *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
