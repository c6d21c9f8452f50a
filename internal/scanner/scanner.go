// Package scanner is the deterministic, line-oriented detector. It is pure:
// the same diff text always yields the same ordered findings.
package scanner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tracker-tv/phi-guard/internal/policy"
	"github.com/tracker-tv/phi-guard/models"
)

type compiledRule struct {
	models.Rule
	patterns []*regexp.Regexp
}

type Scanner struct {
	rules []compiledRule
}

func New(rules []models.Rule) (*Scanner, error) {
	s := &Scanner{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		cr := compiledRule{Rule: r}
		for _, p := range r.AllOf {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("compiling rule %s: %w", r.ID, err)
			}
			cr.patterns = append(cr.patterns, re)
		}
		for _, p := range r.Paths {
			if !doublestar.ValidatePattern(p) {
				return nil, fmt.Errorf("rule %s: invalid path glob %q", r.ID, p)
			}
		}
		s.rules = append(s.rules, cr)
	}
	return s, nil
}

// NewDefault returns a scanner over the built-in rule pack.
func NewDefault() (*Scanner, error) {
	rules, err := policy.Default()
	if err != nil {
		return nil, fmt.Errorf("loading default rules: %w", err)
	}
	return New(rules)
}

// Scan checks every physical line of diff against every rule. Findings are
// ordered by line number, then rule order. Removed lines are skipped.
//
// Rules restricted to paths apply only below a matching "+++ b/<path>"
// header. Text without headers is checked against every rule.
func (s *Scanner) Scan(diff string) []models.Finding {
	var findings []models.Finding
	file := ""

	for i, line := range strings.Split(diff, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if name, ok := newFileName(line); ok {
			file = name
		}
		if strings.HasPrefix(line, "-") {
			continue
		}

		for _, r := range s.rules {
			if !r.appliesTo(file) || !r.matches(line) {
				continue
			}
			findings = append(findings, models.Finding{
				Category: r.Category,
				Severity: r.Severity,
				Message:  fmt.Sprintf("%s at line %d", r.Message, i+1),
				Line:     i + 1,
				Source:   models.SourceScanner,
				Label:    r.ID,
			})
		}
	}

	return findings
}

func (r compiledRule) appliesTo(file string) bool {
	if len(r.Paths) == 0 || file == "" {
		return true
	}
	for _, p := range r.Paths {
		// validated in New
		if ok, _ := doublestar.Match(p, file); ok {
			return true
		}
	}
	return false
}

func newFileName(line string) (string, bool) {
	name, ok := strings.CutPrefix(line, "+++ ")
	if !ok {
		return "", false
	}
	if i := strings.IndexByte(name, '\t'); i >= 0 {
		name = name[:i]
	}
	if name == "/dev/null" {
		return "", true
	}
	return strings.TrimPrefix(name, "b/"), true
}

func (r compiledRule) matches(line string) bool {
	for _, re := range r.patterns {
		if !re.MatchString(line) {
			return false
		}
	}
	return true
}
