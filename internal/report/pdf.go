package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"code-auditor/internal/audit"
)

// PDF renders the audit into a simple paginated report.
func PDF(r audit.Result) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.MultiCell(0, 9, "Code Audit Report", "", "L", false)
	doc.SetFont("Helvetica", "", 12)
	doc.MultiCell(0, 7, r.Repo, "", "L", false)
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, 6, fmt.Sprintf("Files scanned: %d   Issues: %d   Enhancements: %d",
		r.FilesScanned, len(r.Issues), len(r.Enhancements)), "", "L", false)
	doc.Ln(4)

	section := func(title string) {
		doc.SetFont("Helvetica", "B", 14)
		doc.MultiCell(0, 8, title, "", "L", false)
		doc.SetFont("Helvetica", "", 10)
	}

	if len(r.Issues) > 0 {
		section("Issues")
		for _, is := range r.Issues {
			doc.MultiCell(0, 5, fmt.Sprintf("[%s] %s (%s:%d)", is.Severity, is.Title, is.File, is.Line), "", "L", false)
			if is.Description != "" {
				doc.MultiCell(0, 5, "    "+is.Description, "", "L", false)
			}
		}
		doc.Ln(3)
	}

	if len(r.Enhancements) > 0 {
		section("Enhancements")
		for _, e := range r.Enhancements {
			doc.MultiCell(0, 5, fmt.Sprintf("%s (%s:%d)", e.Title, e.File, e.Line), "", "L", false)
		}
		doc.Ln(3)
	}

	if r.Hosting != nil {
		section("Deployment: " + r.Hosting.Name)
		for i, step := range r.Hosting.Steps {
			doc.MultiCell(0, 5, fmt.Sprintf("%d. %s", i+1, step), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
