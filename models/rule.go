package models

// Rule is a single line-oriented detection rule. A line matches when every
// pattern in AllOf matches it.
type Rule struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	AllOf    []string `json:"all_of"`
	// Paths restricts the rule to files matching one of these globs
	// ("**/*.rs"). Empty means every file.
	Paths []string `json:"paths,omitempty"`
}
