package models

import "fmt"

// AuditRequest is what the webhook decoder extracts from an accepted
// pull_request event.
type AuditRequest struct {
	DeliveryID     string
	Owner          string
	Repo           string
	Number         int
	Action         string
	BaseBranch     string
	HeadSHA        string
	InstallationID int64
}

func (r AuditRequest) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Repo)
}

type AuditContext struct {
	Owner       string
	Repo        string
	Number      int
	BaseRef     string
	Title       string
	Description string
	Diff        string
	Files       []string
}

func (c *AuditContext) FullName() string {
	return fmt.Sprintf("%s/%s", c.Owner, c.Repo)
}
