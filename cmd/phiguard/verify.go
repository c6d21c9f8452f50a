package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tracker-tv/phi-guard/internal/config"
	"github.com/tracker-tv/phi-guard/internal/ledger"
	"github.com/tracker-tv/phi-guard/internal/store"
	"go.uber.org/zap"
)

var errChainInvalid = errors.New("audit chain verification failed")

func newVerifyChainCmd() *cobra.Command {
	var (
		repo       string
		checkStore bool
	)

	cmd := &cobra.Command{
		Use:   "verify-chain",
		Short: "Recompute the audit chain and report tampering",
		Long: `verify-chain reads the ledger at PHIGUARD_LEDGER_PATH and recomputes every
entry hash and link. With --check-store it also confirms that every entry has
an audit record in PHIGUARD_DATABASE_URL. The server must be stopped first
because the ledger directory is locked while it runs.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := config.LoadStorage()
			if err != nil {
				return err
			}
			if st.LedgerPath == "" {
				return errors.New("PHIGUARD_LEDGER_PATH is not set")
			}

			log := zap.NewNop()
			backend, err := ledger.OpenBadger(st.LedgerPath, log)
			if err != nil {
				return fmt.Errorf("opening ledger: %w", err)
			}
			defer backend.Close()

			var records store.Store
			if checkStore {
				if st.DatabaseURL == "" {
					return errors.New("--check-store needs PHIGUARD_DATABASE_URL")
				}
				pg, err := store.OpenPostgres(cmd.Context(), st.DatabaseURL, log)
				if err != nil {
					return err
				}
				defer pg.Close()
				records = pg
			}

			return verifyChains(cmd.Context(), cmd.OutOrStdout(), ledger.New(backend, st.LedgerMaxRetries, log), records, repo)
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "", "verify only this owner/name chain")
	cmd.Flags().BoolVar(&checkStore, "check-store", false, "check that every entry has a persisted record")
	return cmd
}

// verifyChains checks every chain (or only repo) and prints one line per
// chain. records may be nil.
func verifyChains(ctx context.Context, out io.Writer, l *ledger.Ledger, records store.Store, repo string) error {
	scopes := []string{repo}
	if repo == "" {
		var err error
		if scopes, err = l.Scopes(ctx); err != nil {
			return err
		}
	}
	if len(scopes) == 0 {
		fmt.Fprintln(out, "ledger is empty")
		return nil
	}

	failed := false
	for _, scope := range scopes {
		entries, err := l.VerifyScope(ctx, scope)
		var tamper *ledger.TamperError
		switch {
		case errors.As(err, &tamper):
			failed = true
			fmt.Fprintf(out, "%s: TAMPERED at entry %d: %s\n", scope, tamper.Index, tamper.Reason)
			continue
		case err != nil:
			return err
		case len(entries) == 0:
			failed = true
			fmt.Fprintf(out, "%s: no entries\n", scope)
			continue
		}

		missing := 0
		if records != nil {
			for _, e := range entries {
				ok, err := records.HasLedgerHash(ctx, e.EntryHash)
				if err != nil {
					return err
				}
				if !ok {
					missing++
					fmt.Fprintf(out, "%s: entry %d (%s) has no audit record\n", scope, e.Seq, e.EntryHash)
				}
			}
		}
		if missing > 0 {
			failed = true
			continue
		}
		fmt.Fprintf(out, "%s: %d entries OK, head %s\n", scope, len(entries), entries[len(entries)-1].EntryHash)
	}

	if failed {
		return errChainInvalid
	}
	return nil
}
