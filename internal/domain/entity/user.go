package entity

import "time"

// Roles de usuario de la fundación.
const (
	RoleAdmin       = "admin"
	RoleCoordinador = "coordinador"
	RoleVoluntario  = "voluntario"
)

// User representa un usuario de la aplicación (operadores de la fundación).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | coordinador | voluntario
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
