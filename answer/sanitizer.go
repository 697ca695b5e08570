package answer

import (
	"regexp"
	"strings"
)

// MaxCandidates is the number of reply candidates kept after sanitization.
const MaxCandidates = 3

var (
	// "1)", "2.", "3-" style enumerators.
	enumeratorRe = regexp.MustCompile(`^\d+\s*[).\-]\s+`)
	// Plain bullets and dashes.
	bulletRe = regexp.MustCompile(`^[-*•]\s+`)
	// "Answer A:" / "**Answer 1:**" style headers.
	headerRe = regexp.MustCompile(`^[*_]*[Aa]nswer\s+\w+\s*[:.][*_]*\s*`)
)

// quotePairs maps an opening quote rune to its closing counterpart.
var quotePairs = map[rune]rune{
	'"':  '"',
	'\'': '\'',
	'«':  '»',
	'“':  '”',
	'‘':  '’',
}

// Sanitize parses raw generation output into at most MaxCandidates clean
// reply strings. Splitting happens on newline boundaries; see SanitizeLines
// for the per-line rules.
func Sanitize(raw string) []string {
	return SanitizeLines(strings.Split(raw, "\n"))
}

// SanitizeLines cleans candidate lines directly. Each line is trimmed and
// stripped of enumerators, bullets, "Answer X:" headers, wrapping emphasis,
// and wrapping quotes; lines left empty are discarded. Of the survivors only
// the last MaxCandidates are kept: generation models tend to prepend
// preamble lines despite instructions, so the tail is the trustworthy part.
// Fewer survivors than MaxCandidates is not an error.
func SanitizeLines(lines []string) []string {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		c := cleanLine(line)
		if c == "" {
			continue
		}
		cleaned = append(cleaned, c)
	}

	if len(cleaned) > MaxCandidates {
		cleaned = cleaned[len(cleaned)-MaxCandidates:]
	}
	return cleaned
}

func cleanLine(line string) string {
	s := strings.TrimSpace(line)
	if s == "" {
		return ""
	}

	s = enumeratorRe.ReplaceAllString(s, "")
	s = bulletRe.ReplaceAllString(s, "")
	s = headerRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = stripEmphasis(s)
	s = stripQuotes(s)
	return strings.TrimSpace(s)
}

// stripEmphasis removes markdown emphasis wrapping the whole line
// (**bold**, *italic*, _underscore_), repeatedly for nested wrapping.
func stripEmphasis(s string) string {
	for {
		switch {
		case len(s) >= 4 && strings.HasPrefix(s, "**") && strings.HasSuffix(s, "**"):
			s = strings.TrimSpace(s[2 : len(s)-2])
		case len(s) >= 2 && strings.HasPrefix(s, "*") && strings.HasSuffix(s, "*"):
			s = strings.TrimSpace(s[1 : len(s)-1])
		case len(s) >= 2 && strings.HasPrefix(s, "_") && strings.HasSuffix(s, "_"):
			s = strings.TrimSpace(s[1 : len(s)-1])
		default:
			return s
		}
	}
}

// stripQuotes removes one matching pair of quotation marks wrapping the
// whole line.
func stripQuotes(s string) string {
	runes := []rune(s)
	if len(runes) < 2 {
		return s
	}
	if closing, ok := quotePairs[runes[0]]; ok && runes[len(runes)-1] == closing {
		return strings.TrimSpace(string(runes[1 : len(runes)-1]))
	}
	return s
}
