package models

import "time"

type Status string

const (
	StatusClean     Status = "CLEAN"
	StatusViolation Status = "VIOLATION"
)

// AuditResult is the outcome of one audit run. Its JSON encoding is the
// canonical form hashed into the ledger, so field order matters.
type AuditResult struct {
	Status           Status    `json:"status"`
	RiskScore        int       `json:"risk_score"`
	Findings         []Finding `json:"findings"`
	ReviewerDegraded bool      `json:"reviewer_degraded"`
}

type LedgerEntry struct {
	Scope        string `json:"scope"`
	Seq          uint64 `json:"seq"`
	Timestamp    string `json:"timestamp"`
	DataHash     string `json:"data_hash"`
	PreviousHash string `json:"previous_hash"`
	EntryHash    string `json:"entry_hash"`
}

type AuditRecord struct {
	ID         string    `json:"id"`
	RepoName   string    `json:"repo_name"`
	PRNumber   int       `json:"pr_number"`
	Status     Status    `json:"status"`
	RiskScore  int       `json:"risk_score"`
	Report     string    `json:"report"`
	LedgerHash string    `json:"ledger_hash"`
	CreatedAt  time.Time `json:"created_at"`
}
