package types

import (
	"time"
)

type ContactMessage struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Email       string    `gorm:"column:email;not null;index" json:"email"`
	Subject     string    `gorm:"column:subject;not null" json:"subject"`
	Message     string    `gorm:"column:message;not null" json:"message"`
	Status      string    `gorm:"column:status;not null;default:'received'" json:"status"`
	Priority    string    `gorm:"column:priority;not null" json:"priority"`
	AssignedTo  string    `gorm:"column:assigned_to;not null" json:"assignedTo"`
	SubmittedAt time.Time `gorm:"column:submitted_at;not null" json:"submittedAt"`
}

func (ContactMessage) TableName() string { return "contact_message" }
