package entity

import "time"

// Donor representa un donante (persona o empresa).
type Donor struct {
	ID        string
	Name      string
	DocType   string // CC, NIT, CE...
	DocNumber string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
