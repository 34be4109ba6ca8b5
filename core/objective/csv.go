package objective

import (
	"strings"

	"github.com/volatiletech/null/v8"

	"github.com/klasbord/klasbord/core"
)

// Expected column order: domain, order, title, description, phase.
// An optional header line is tolerated and auto-detected by keyword.

const maxPhaseLen = 20

var headerKeywords = []string{"domein", "domain", "nummer", "titel", "title"}

// ImportRow is one parsed line of pasted import text.
type ImportRow struct {
	Domain      null.String
	Order       int
	Title       string
	Description null.String
	Phase       null.String
	Line        int // 1-based line number in the pasted text
}

// TokenizeLine splits one line of comma-separated text into trimmed fields.
// Double quotes delimit literal content when they open a field; an escaped
// quote ("") inside quoted content yields a single literal quote. Unterminated
// quotes are tolerated: the rest of the line is treated as literal content.
// A non-empty input always yields at least one (possibly empty) field.
func TokenizeLine(line string) []string {
	fields := make([]string, 0, 8)
	var buf strings.Builder
	inQuotes := false
	fieldStart := true

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if fieldStart && !inQuotes {
				inQuotes = true
				fieldStart = false
			} else if inQuotes {
				if i+1 < len(runes) && runes[i+1] == '"' {
					buf.WriteRune('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				// stray quote mid-field: literal content
				buf.WriteRune(ch)
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(buf.String()))
			buf.Reset()
			fieldStart = true
		default:
			buf.WriteRune(ch)
			fieldStart = false
		}
	}
	fields = append(fields, strings.TrimSpace(buf.String()))
	return fields
}

// MapImport turns a multi-line CSV blob into import rows. The first line is
// skipped when it looks like a header. Lines tokenizing to fewer than 2 fields
// are dropped; skipped reports how many. Rows come back in input order.
func MapImport(text string) (rows []ImportRow, skipped int) {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	start := 0
	if len(lines) > 0 && isHeaderLine(lines[0]) {
		start = 1
	}

	for i := start; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		fields := TokenizeLine(line)
		if len(fields) < 2 {
			skipped++
			continue
		}

		title := fieldAt(fields, 2)
		if title == "" {
			// an empty title falls back to the order column
			title = fieldAt(fields, 1)
		}

		rows = append(rows, ImportRow{
			Domain:      nullableField(fields, 0),
			Order:       parseOrder(fieldAt(fields, 1)),
			Title:       title,
			Description: nullableField(fields, 3),
			Phase:       nullablePhase(fieldAt(fields, 4)),
			Line:        i + 1,
		})
	}
	return rows, skipped
}

func isHeaderLine(line string) bool {
	l := strings.ToLower(line)
	for _, kw := range headerKeywords {
		if strings.Contains(l, kw) {
			return true
		}
	}
	return false
}

func fieldAt(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func nullableField(fields []string, i int) null.String {
	if s := fieldAt(fields, i); s != "" {
		return null.StringFrom(s)
	}
	return null.String{}
}

func nullablePhase(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(NormalizePhase(s))
}

// parseOrder parses a base-10 integer out of the leading characters of s,
// falling back to 0 when there are none (never errors).
func parseOrder(s string) int {
	i, sign := 0, 1
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		if s[i] == '-' {
			sign = -1
		}
		i++
	}
	var n, digits int
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		digits++
	}
	if digits == 0 {
		return 0
	}
	return sign * n
}

// NormalizePhase maps the import shorthands onto the two curriculum phases;
// anything else passes through truncated to 20 characters.
func NormalizePhase(raw string) string {
	switch strings.ToUpper(raw) {
	case "B", "ONDERBOUW":
		return PhaseLower
	case "E", "BOVENBOUW":
		return PhaseUpper
	}
	return core.Truncate(raw, maxPhaseLen)
}
