package output

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// SanitizeCompany strips everything but letters, digits and spaces
// from a company name, then replaces spaces with underscores so the
// result is safe inside a file name.
func SanitizeCompany(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
}

// ReportFileName builds the output file name for a run:
// Quote_Report_<company>_<timestamp>.<ext>
func ReportFileName(company string, ts time.Time, ext string) string {
	return fmt.Sprintf("Quote_Report_%s_%s.%s",
		SanitizeCompany(company), ts.Format("20060102_150405"), ext)
}
