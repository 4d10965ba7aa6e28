// seed genera un script SQL para poblar el catálogo inicial de productos de
// un owner a partir de un CSV (sku;nombre;descripcion;precio;stock).
//
// Uso: go run ./cmd/seed <owner-uuid> [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual. Acepta CSV en
// UTF-8 o ISO-8859-1 (exportes viejos de planillas).
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed <owner-uuid> [catalogo.csv]")
		os.Exit(1)
	}
	ownerID := os.Args[1]
	csvPath := "catalogo.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var reader io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		// Exporte Latin-1: transcodificar a UTF-8 antes de parsear.
		reader = transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
	}

	r := csv.NewReader(reader)
	r.Comma = ';'
	r.FieldsPerRecord = 5
	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parsear CSV: %v\n", err)
		os.Exit(1)
	}

	type row struct{ sku, name, description, price, stock string }
	var rows []row
	for i, rec := range records {
		// Primera fila con encabezado se salta.
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "sku") {
			continue
		}
		sku := strings.TrimSpace(rec[0])
		name := strings.TrimSpace(rec[1])
		if sku == "" || name == "" {
			continue
		}
		rows = append(rows, row{
			sku:         sku,
			name:        name,
			description: strings.TrimSpace(rec[2]),
			price:       strings.TrimSpace(rec[3]),
			stock:       strings.TrimSpace(rec[4]),
		})
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "El CSV no tiene filas válidas")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo inicial de productos\n")
	fmt.Fprintf(out, "-- Generado desde %s\n\n", filepath.Base(csvPath))
	for _, p := range rows {
		fmt.Fprintf(out,
			"INSERT INTO products (id, owner_id, sku, name, description, price, stock)\n"+
				"VALUES (gen_random_uuid(), '%s', '%s', '%s', '%s', %s, %s)\n"+
				"ON CONFLICT (owner_id, sku) DO UPDATE SET\n"+
				"  name = EXCLUDED.name, description = EXCLUDED.description,\n"+
				"  price = EXCLUDED.price, updated_at = now();\n",
			escapeSQL(ownerID), escapeSQL(p.sku), escapeSQL(p.name),
			escapeSQL(p.description), numericOrZero(p.price), numericOrZero(p.stock),
		)
	}

	fmt.Printf("Generado %s: %d productos\n", outPath, len(rows))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// numericOrZero deja pasar solo literales numéricos simples; todo lo demás
// cae a 0 para no inyectar SQL desde el CSV.
func numericOrZero(s string) string {
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return "0"
	}
	for _, c := range s {
		if (c < '0' || c > '9') && c != '.' && c != '-' {
			return "0"
		}
	}
	return s
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
