// seed_items genera un script SQL para poblar el catálogo de artículos a
// partir del CSV exportado del inventario anterior de la fundación (Excel en
// ISO-8859-1, separado por punto y coma).
//
// Formato esperado por línea: sku;nombre;categoria;unidad;valor_unitario;stock_minimo
//
// Uso: go run ./cmd/seed_items [ruta/articulos.csv]
// Por defecto busca articulos.csv en el directorio actual.
// Escribe: migrations/002_seed_items.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	csvPath := "articulos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// El export viene en ISO-8859-1 (tildes y eñes).
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.FieldsPerRecord = 6

	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	type row struct {
		sku, name, category, unit, unitValue, minStock string
	}
	seen := make(map[string]bool)
	var rows []row
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "sku") {
			continue // cabecera
		}
		sku := strings.TrimSpace(rec[0])
		name := strings.TrimSpace(rec[1])
		if sku == "" || name == "" || seen[sku] {
			continue
		}
		seen[sku] = true
		rows = append(rows, row{
			sku:       sku,
			name:      name,
			category:  strings.TrimSpace(rec[2]),
			unit:      nonEmpty(strings.TrimSpace(rec[3]), "unidad"),
			unitValue: nonEmpty(strings.TrimSpace(rec[4]), "0"),
			minStock:  nonEmpty(strings.TrimSpace(rec[5]), "0"),
		})
	}

	// Salida estable por SKU
	sort.Slice(rows, func(i, j int) bool { return rows[i].sku < rows[j].sku })

	var b strings.Builder
	b.WriteString("-- Generado por cmd/seed_items. No editar a mano.\n")
	b.WriteString("-- Catálogo inicial de artículos importado del inventario anterior.\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf(
			"INSERT INTO items (id, sku, name, category, unit, unit_value, stock_current, min_stock)\n"+
				"VALUES ('%s', '%s', '%s', '%s', '%s', %s, 0, %s)\n"+
				"ON CONFLICT (sku) DO NOTHING;\n\n",
			uuid.New().String(), esc(r.sku), esc(r.name), esc(r.category), esc(r.unit), r.unitValue, r.minStock,
		))
	}

	outPath := filepath.Join("migrations", "002_seed_items.sql")
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Escrito %s (%d artículos)\n", outPath, len(rows))
}

// esc escapa comillas simples para el literal SQL.
func esc(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
