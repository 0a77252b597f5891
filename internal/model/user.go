package model

import "time"

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('student','teacher','admin');default:'student'" json:"role"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// StudentProfile 学生档案，考试记录挂在档案而不是账号上
type StudentProfile struct {
	BaseModel
	UserID         uint   `gorm:"uniqueIndex;type:bigint unsigned" json:"userId"`
	FirstName      string `gorm:"size:30" json:"firstName"`
	LastName       string `gorm:"size:30" json:"lastName"`
	PhoneNumber    string `gorm:"size:15" json:"phoneNumber,omitempty"`
	CourseEnrolled string `gorm:"size:100" json:"courseEnrolled,omitempty"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}
