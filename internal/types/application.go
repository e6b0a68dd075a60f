package types

import (
	"time"
)

type Application struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Email        string    `gorm:"column:email;not null;index" json:"email"`
	Program      string    `gorm:"column:program;not null" json:"program"`
	Message      string    `gorm:"column:message;not null" json:"message"`
	Status       string    `gorm:"column:status;not null;default:'submitted'" json:"status"`
	ReviewStatus string    `gorm:"column:review_status;not null;default:'pending'" json:"reviewStatus"`
	SubmittedAt  time.Time `gorm:"column:submitted_at;not null" json:"submittedAt"`
}

func (Application) TableName() string { return "application" }
