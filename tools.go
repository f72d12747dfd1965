//go:build tools

package main

// Dependencias de herramientas: swag genera docs/swagger.json a partir de las
// anotaciones de los handlers (make docs / swag init -g cmd/api/main.go).
import (
	_ "github.com/swaggo/swag/cmd/swag"
)
