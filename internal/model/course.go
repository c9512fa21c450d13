package model

type Course struct {
	BaseModel
	Title        string `gorm:"size:200;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	InstructorID uint   `gorm:"index;not null" json:"instructorId"`
	Instructor   *User  `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	IsPublished  bool   `gorm:"default:false" json:"isPublished"`
}

func (Course) TableName() string {
	return "courses"
}

// IsOwnedBy reports whether the given user is the owning instructor.
func (c *Course) IsOwnedBy(userID uint) bool {
	return c.InstructorID == userID
}
