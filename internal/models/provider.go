package models

import "time"

type Provider struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	DateAdded string    `gorm:"type:date" json:"date_added"`
	CreatedAt time.Time `json:"created_at"`
}

func (Provider) TableName() string { return "providers" }
