// Command seedsin converts the GSA schedule SIN crosswalk Excel file into a
// SQL seed file for the sin_mappings table.
// Usage: go run ./cmd/seedsin
// Output: db/seeds/sin_mappings.sql
package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

const batchSize = 500

type sinEntry struct {
	naics string
	sin   string
	title string
}

var naicsPattern = regexp.MustCompile(`^[0-9]{6}$`)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxPath := "MAS_NAICS_SIN_Crosswalk.xlsx"
	outPath := "db/seeds/sin_mappings.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parseCrosswalkSheet(f)
	if err != nil {
		return fmt.Errorf("parse crosswalk sheet: %w", err)
	}
	log.Printf("crosswalk sheet: %d entries", len(entries))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- SIN mapping seed data generated from the GSA MAS NAICS/SIN crosswalk.",
		fmt.Sprintf("-- %d entries in batches of %d.", len(entries), batchSize),
		"-- Run: make seed-sins",
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}

	log.Printf("Generated %d entries (%d batches) in %s",
		len(entries), (len(entries)+batchSize-1)/batchSize, outPath)
	return nil
}

// parseCrosswalkSheet reads the first sheet of the crosswalk workbook.
// Columns: A(0)=NAICS code, B(1)=SIN, C(2)=SIN title. Data starts at row
// index 1 (header row).
func parseCrosswalkSheet(f *excelize.File) ([]sinEntry, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []sinEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 3 {
			continue
		}

		naics := strings.TrimSpace(cellVal(row, 0))
		sin := strings.TrimSpace(cellVal(row, 1))
		title := strings.TrimSpace(cellVal(row, 2))
		if !naicsPattern.MatchString(naics) || sin == "" {
			continue
		}
		// first SIN listed for a NAICS code wins
		if seen[naics] {
			continue
		}
		seen[naics] = true
		entries = append(entries, sinEntry{naics: naics, sin: sin, title: title})
	}
	return entries, nil
}

func writeBatch(out *os.File, batch []sinEntry) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO sin_mappings (naics, sin, title) VALUES\n")
	for i, e := range batch {
		b.WriteString(fmt.Sprintf("('%s', '%s', '%s')", e.naics, escapeSQL(e.sin), escapeSQL(e.title)))
		if i < len(batch)-1 {
			b.WriteString(",\n")
		}
	}
	b.WriteString("\nON CONFLICT (naics) DO NOTHING;\n")

	_, err := fmt.Fprintln(out, b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
