// Package csvexport renders a compliance checklist as CSV for download.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"getgsa/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Request ID",
	"Required OK",
	"Problem Code",
	"Rule ID",
	"Evidence",
}

// Writer wraps csv.Writer for exporting checklists as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteChecklist writes one row per checklist problem, in checklist order. A
// clean checklist produces a single row with empty problem columns.
func (w *Writer) WriteChecklist(requestID string, cl domain.ComplianceChecklist) error {
	if len(cl.Problems) == 0 {
		return w.csv.Write([]string{requestID, formatBool(cl.RequiredOK), "", "", ""})
	}
	for _, p := range cl.Problems {
		row := []string{requestID, formatBool(cl.RequiredOK), p.Code, string(p.RuleID), p.Evidence}
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition. Replaces
// non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: checklist_{request_id}_{YYYY-MM-DD}.csv
func BuildFilename(requestID string) string {
	sanitized := SanitizeFilename(requestID)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("checklist_%s_%s.csv", sanitized, date)
}
