package models

import "time"

type Client struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name"`
	Phone     string    `json:"phone"`
	DateAdded string    `gorm:"type:date" json:"date_added"`
	CreatedAt time.Time `json:"created_at"`
}

func (Client) TableName() string { return "clients" }
