package models

import "strings"

type Category string

const (
	CategoryPHILogging        Category = "PHI_LOGGING"
	CategoryUnsafeBlock       Category = "UNSAFE_BLOCK"
	CategoryHardcodedSecret   Category = "HARDCODED_SECRET"
	CategorySensitiveFunction Category = "SENSITIVE_FUNCTION"
	CategoryStaticAnalysis    Category = "STATIC_ANALYSIS"
	// CategoryOther is the extension point: the original tag is kept in
	// Finding.Label.
	CategoryOther Category = "OTHER"
)

// ParseCategory maps a free-form tag onto the closed category set. Unknown
// tags map to CategoryOther and report ok=false.
func ParseCategory(s string) (Category, bool) {
	switch Category(strings.ToUpper(strings.TrimSpace(s))) {
	case CategoryPHILogging:
		return CategoryPHILogging, true
	case CategoryUnsafeBlock, "UNSAFE_FUNCTION":
		return CategoryUnsafeBlock, true
	case CategoryHardcodedSecret:
		return CategoryHardcodedSecret, true
	case CategorySensitiveFunction:
		return CategorySensitiveFunction, true
	case CategoryStaticAnalysis, "SEMGREP", "SEMGREP_POLICY":
		return CategoryStaticAnalysis, true
	case CategoryOther:
		return CategoryOther, true
	}
	return CategoryOther, false
}

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

func ParseSeverity(s string) (Severity, bool) {
	switch Severity(strings.ToUpper(strings.TrimSpace(s))) {
	case SeverityLow:
		return SeverityLow, true
	case SeverityMedium:
		return SeverityMedium, true
	case SeverityHigh:
		return SeverityHigh, true
	case SeverityCritical:
		return SeverityCritical, true
	}
	return SeverityMedium, false
}

type FindingSource string

const (
	SourceScanner        FindingSource = "scanner"
	SourceReviewer       FindingSource = "reviewer"
	SourceStaticAnalysis FindingSource = "static-analysis"
)

type Finding struct {
	Category Category      `json:"category"`
	Severity Severity      `json:"severity"`
	Message  string        `json:"message"`
	Line     int           `json:"line,omitempty"` // 1-based; 0 when unknown
	Source   FindingSource `json:"source"`
	Label    string        `json:"label,omitempty"`
}
