package model

type UserRole string

const (
	Instructor UserRole = "instructor"
	Student    UserRole = "student"
)

// ValidRole reports whether r is one of the closed set of actor roles.
func ValidRole(r UserRole) bool {
	return r == Instructor || r == Student
}

type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;default:'student'" json:"role"`
	Bio      string   `gorm:"size:500" json:"bio"`
	Avatar   string   `gorm:"size:255" json:"avatar"`
}

func (User) TableName() string {
	return "users"
}
