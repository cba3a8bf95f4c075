package game

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	oscarMentionRe  = regexp.MustCompile(`(?i)oscar|academy award`)
	oscarCategoryRe = regexp.MustCompile(`(?i)won\s+(?:an\s+)?Oscar\s+(?:for\s+)?([^.]+)`)
	oscarCountRe    = regexp.MustCompile(`(?i)won\s+(\d+)\s+(?:Oscar|Academy Award)`)
)

// AcademyAwardSummary condenses a provider awards string to an
// Oscar-focused one-liner. Returns "" when the string mentions no
// Academy Awards at all; falls back to the raw string when it does but
// no win can be parsed out.
func AcademyAwardSummary(awards string) string {
	if awards == "" || !oscarMentionRe.MatchString(awards) {
		return ""
	}
	if m := oscarCountRe.FindStringSubmatch(awards); m != nil {
		if m[1] == "1" {
			return "This movie won 1 Oscar"
		}
		return fmt.Sprintf("This movie won %s Oscars", m[1])
	}
	if m := oscarCategoryRe.FindStringSubmatch(awards); m != nil {
		if category := strings.TrimSpace(m[1]); category != "" {
			return "This movie won an Oscar for " + category
		}
	}
	return awards
}
