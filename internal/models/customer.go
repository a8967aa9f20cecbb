package models

import "time"

type Customer struct {

	ID        uint   `gorm:"primaryKey"`
	Author    string
	Password  string `gorm:"not null"` // shared record secret, unique via LOWER(password) index
	FirstName string
	LastName  string
	Details   string
	Tel       string
	Email     string
	Resume    string // stored upload filename, empty when no resume was attached
	CreatedAt time.Time
	UpdatedAt time.Time
}
