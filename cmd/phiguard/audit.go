package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tracker-tv/phi-guard/internal/config"
	"github.com/tracker-tv/phi-guard/internal/logger"
	"github.com/tracker-tv/phi-guard/internal/metrics"
	"github.com/tracker-tv/phi-guard/internal/orchestrator"
	"github.com/tracker-tv/phi-guard/internal/service"
	"github.com/tracker-tv/phi-guard/models"
	"go.uber.org/zap"
)

func newAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit owner/repo#number...",
		Short: "Audit pull requests now, without a webhook",
		Long: `audit runs the full pipeline for each pull request given, in order: it
fetches the diff, records the verdict in the ledger and the store and posts the
review, exactly as a webhook delivery would. It uses the same configuration as
serve. With a ledger path configured the server must be stopped first.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs := make([]models.AuditRequest, 0, len(args))
			for _, arg := range args {
				req, err := parsePullRef(arg)
				if err != nil {
					return err
				}
				reqs = append(reqs, req)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			log, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			audits, closePipeline, err := buildPipeline(cmd.Context(), cfg, metrics.NewNop(), log)
			if err != nil {
				return err
			}
			defer closePipeline()

			outcomes, err := orchestrator.NewRunner(audits, log).Run(cmd.Context(), reqs)
			printOutcomes(cmd.OutOrStdout(), outcomes)
			if err != nil {
				log.Error("some audits failed", zap.Error(err))
			}
			return err
		},
	}
}

// parsePullRef reads "owner/repo#number".
func parsePullRef(ref string) (models.AuditRequest, error) {
	repo, num, ok := strings.Cut(ref, "#")
	if !ok {
		return models.AuditRequest{}, fmt.Errorf("%q: want owner/repo#number", ref)
	}
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return models.AuditRequest{}, fmt.Errorf("%q: want owner/repo#number", ref)
	}
	number, err := strconv.Atoi(num)
	if err != nil || number <= 0 {
		return models.AuditRequest{}, fmt.Errorf("%q: invalid pull request number", ref)
	}
	return models.AuditRequest{
		DeliveryID: "cli-" + uuid.NewString(),
		Owner:      owner,
		Repo:       name,
		Number:     number,
		Action:     "manual",
	}, nil
}

func printOutcomes(out io.Writer, outcomes []*service.AuditOutcome) {
	for _, o := range outcomes {
		fmt.Fprintf(out, "%s#%d\t%s\t%d\t%s\n",
			o.Record.RepoName, o.Record.PRNumber, o.Result.Status, o.Result.RiskScore, o.Entry.EntryHash)
	}
}
