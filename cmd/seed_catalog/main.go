// seed_catalog genera un script SQL para poblar el catálogo de productos de
// una empresa a partir de un CSV exportado de sistemas legados (codificado en
// ISO-8859-1, separado por punto y coma).
//
// Columnas esperadas: sku;nombre;precio;umbral_stock_bajo
// El umbral puede ir vacío (producto sin alertas).
//
// Uso: go run ./cmd/seed_catalog <company_id> [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe: seed_catalog.sql en el directorio actual.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type row struct {
	sku       string
	name      string
	price     decimal.Decimal
	threshold *int64
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed_catalog <company_id> [catalogo.csv]")
		os.Exit(1)
	}
	companyID := os.Args[1]
	csvPath := "catalogo.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Los exportes legados vienen en ISO-8859-1 (tildes y eñes)
	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var rows []row
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "sku") {
			continue // encabezado
		}
		if len(rec) < 3 {
			fmt.Fprintf(os.Stderr, "Línea %d: se esperan al menos 3 columnas\n", i+1)
			os.Exit(1)
		}
		sku := strings.TrimSpace(rec[0])
		name := strings.TrimSpace(rec[1])
		if sku == "" || name == "" {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
		if err != nil || price.IsNegative() {
			fmt.Fprintf(os.Stderr, "Línea %d: precio inválido %q\n", i+1, rec[2])
			os.Exit(1)
		}
		var threshold *int64
		if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
			n, err := strconv.ParseInt(strings.TrimSpace(rec[3]), 10, 64)
			if err != nil || n < 0 {
				fmt.Fprintf(os.Stderr, "Línea %d: umbral inválido %q\n", i+1, rec[3])
				os.Exit(1)
			}
			threshold = &n
		}
		rows = append(rows, row{sku: sku, name: name, price: price, threshold: threshold})
	}

	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "CSV sin filas de productos")
		os.Exit(1)
	}

	outPath := "seed_catalog.sql"
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprintf(out, "-- Catálogo inicial para la empresa %s\n", escapeSQL(companyID))
	fmt.Fprintf(out, "-- Generado desde %s\n\n", csvPath)
	for _, p := range rows {
		th := "NULL"
		if p.threshold != nil {
			th = strconv.FormatInt(*p.threshold, 10)
		}
		fmt.Fprintf(out, "INSERT INTO products (product_id, company_id, name, sku, price, is_bundle, low_stock_threshold)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', '%s', %s, false, %s)\n",
			escapeSQL(companyID), escapeSQL(p.name), escapeSQL(p.sku), p.price.String(), th)
		out.WriteString("ON CONFLICT (company_id, sku) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price, low_stock_threshold = EXCLUDED.low_stock_threshold;\n")
	}

	fmt.Printf("Generado %s: %d productos\n", outPath, len(rows))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
