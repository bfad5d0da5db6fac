// Package extract locates identity fields in raw recognized text. The
// heuristics are best-effort over unstructured output from heterogeneous
// document layouts and prefer reporting a field as absent over guessing a
// wrong value; downstream decisioning treats absence conservatively through
// confidence scoring.
package extract

import (
	"regexp"
	"strings"
)

var (
	// Date shapes tried in order; the first match anywhere in the
	// normalized text wins. Calendar validity is not checked.
	dobPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{2}[/-]\d{2}[/-]\d{4})`),
		regexp.MustCompile(`(?i)(\d{4}[/-]\d{2}[/-]\d{2})`),
		regexp.MustCompile(`(?i)(\d{2}\s+[A-Za-z]{3,}\s+\d{4})`),
	}

	// PAN-shaped token: 5 letters, 4 digits, 1 alphanumeric. The trailing
	// character may be recognition noise (a stray parenthesis picked up by
	// the engine), so a closing paren is accepted there; non-letters in that
	// position are dropped after the match. Only this shape is tried for the
	// ID number; no fallback patterns exist yet.
	idNumberPattern = regexp.MustCompile(`\b([A-Z]{5}[0-9]{4}(?:[A-Z0-9]\b|\)))`)

	nameLabelPattern = regexp.MustCompile(`(?i)Name\s+([A-Za-z ]{3,40})`)
	nameLinePattern  = regexp.MustCompile(`^[A-Za-z .-]+$`)

	collapseWhitespace = regexp.MustCompile(`\s{2,}`)
)

// Document-boilerplate terms that disqualify a line from the name heuristic.
// Matched as case-insensitive substrings.
var nameBlocklist = []string{
	"government", "national", "identity", "id", "no.",
	"dob", "date", "father", "son", "account",
}

// ExtractFields parses raw recognized text into candidate identity fields.
// It is deterministic and total: fields that cannot be confidently located
// come back nil rather than causing an error.
func ExtractFields(text string) ExtractedFields {
	normalized := strings.TrimSpace(collapseWhitespace.ReplaceAllString(text, " "))
	lines := nonBlankLines(text)

	return ExtractedFields{
		RawText:        normalized,
		Name:           extractName(normalized, lines),
		DOB:            extractDOB(normalized),
		IDNumber:       extractIDNumber(normalized),
		AddressSnippet: extractAddress(lines),
	}
}

func extractDOB(text string) *string {
	for _, pat := range dobPatterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			return optional(strings.TrimSpace(m[1]))
		}
	}
	return nil
}

func extractIDNumber(text string) *string {
	m := idNumberPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	candidate := m[1]
	last := candidate[len(candidate)-1]
	if !isLetter(last) {
		candidate = candidate[:len(candidate)-1]
	}
	return optional(candidate)
}

// extractName first looks for a "Name" label in the normalized text and falls
// back to scanning the top lines of the original text for a short run of
// plain words free of document boilerplate.
func extractName(normalized string, lines []string) *string {
	if m := nameLabelPattern.FindStringSubmatch(normalized); m != nil {
		if name := optional(strings.TrimSpace(m[1])); name != nil {
			return name
		}
	}

	top := lines
	if len(top) > 8 {
		top = top[:8]
	}
	for _, line := range top {
		words := len(strings.Fields(line))
		if words < 2 || words > 4 {
			continue
		}
		if !nameLineAllowed(line) {
			continue
		}
		return optional(line)
	}
	return nil
}

func nameLineAllowed(line string) bool {
	if !nameLinePattern.MatchString(line) {
		return false
	}
	lower := strings.ToLower(line)
	for _, term := range nameBlocklist {
		if strings.Contains(lower, term) {
			return false
		}
	}
	return true
}

// extractAddress joins the last lines of the document into a short snippet.
// Documents with three or fewer non-blank lines yield no address.
func extractAddress(lines []string) *string {
	if len(lines) <= 3 {
		return nil
	}
	candidates := lines[len(lines)-4:]
	var kept []string
	for _, line := range candidates {
		if len(line) > 8 {
			kept = append(kept, line)
		}
	}
	return optional(truncate(strings.Join(kept, ", "), 200))
}

func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// optional converts a string to its pointer form, mapping empty to absent so
// the "never an empty string" invariant holds by construction.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
