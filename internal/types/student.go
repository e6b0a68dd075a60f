package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Student struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID    string         `gorm:"column:student_id;not null;uniqueIndex" json:"studentId"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	Name         string         `gorm:"column:name;not null" json:"name"`
	Email        string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Program      string         `gorm:"column:program" json:"program"`
	Year         int            `gorm:"column:year" json:"year"`
	GPA          float64        `gorm:"column:gpa" json:"gpa"`
	Courses      datatypes.JSON `gorm:"column:courses" json:"courses,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Student) TableName() string { return "student" }

type StudentCourse struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Credits int    `json:"credits"`
	Grade   string `json:"grade"`
}
