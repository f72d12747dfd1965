package dto

import "time"

// CreateDonorRequest body para POST /api/donors.
type CreateDonorRequest struct {
	Name      string `json:"name"`
	DocType   string `json:"doc_type"`
	DocNumber string `json:"doc_number"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// DonorResponse donante.
type DonorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	DocType   string    `json:"doc_type"`
	DocNumber string    `json:"doc_number"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateBeneficiaryRequest body para POST /api/beneficiaries.
type CreateBeneficiaryRequest struct {
	Name       string `json:"name"`
	DocType    string `json:"doc_type"`
	DocNumber  string `json:"doc_number"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	FamilySize int    `json:"family_size,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// BeneficiaryResponse beneficiario.
type BeneficiaryResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	DocType    string    `json:"doc_type"`
	DocNumber  string    `json:"doc_number"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address,omitempty"`
	FamilySize int       `json:"family_size,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
