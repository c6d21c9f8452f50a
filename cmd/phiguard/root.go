package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "phiguard",
		Short: "Audits pull requests for exposure of patient health information",
		Long: `phiguard receives GitHub pull_request webhooks, scans the diff for PHI
exposure and related policy violations, reviews it with a language model,
records every verdict in a per-repository hash chain and reports back on the
pull request.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newAuditCmd(), newVerifyChainCmd(), newScanCmd())
	return root
}
