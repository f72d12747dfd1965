package entity

import "time"

// Beneficiary representa una persona o familia beneficiaria de entregas.
type Beneficiary struct {
	ID         string
	Name       string
	DocType    string
	DocNumber  string
	Phone      string
	Address    string
	FamilySize int // personas en el núcleo familiar
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
