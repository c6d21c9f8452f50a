package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tracker-tv/phi-guard/internal/policy"
	"github.com/tracker-tv/phi-guard/internal/risk"
	"github.com/tracker-tv/phi-guard/internal/scanner"
	"github.com/tracker-tv/phi-guard/models"
)

var errViolation = errors.New("diff violates PHI policy")

func newScanCmd() *cobra.Command {
	var (
		threshold int
		asJSON    bool
		rulesFile string
	)

	cmd := &cobra.Command{
		Use:   "scan [diff-file]",
		Short: "Run the deterministic scanner on a local diff",
		Long: `scan reads a unified diff from the given file, or from stdin when no file is
given, and prints the findings and verdict. It exits non-zero on a violation,
so it can run from a pre-push hook:

    git diff origin/main... | phiguard scan`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			raw, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("reading diff: %w", err)
			}

			sc, err := loadScanner(rulesFile)
			if err != nil {
				return err
			}
			result := risk.NewAggregator(threshold).Aggregate(sc.Scan(string(raw)))

			if err := printResult(cmd.OutOrStdout(), result, asJSON); err != nil {
				return err
			}
			if result.Status == models.StatusViolation {
				return errViolation
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", risk.DefaultThreshold, "risk score above which the diff is a violation")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "extra rules file, in the format of .github/phiguard-rules.json")
	return cmd
}

func loadScanner(rulesFile string) (*scanner.Scanner, error) {
	rules, err := policy.Default()
	if err != nil {
		return nil, err
	}
	if rulesFile != "" {
		data, err := os.ReadFile(rulesFile)
		if err != nil {
			return nil, err
		}
		extra, err := policy.FromJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", rulesFile, err)
		}
		rules = append(rules, extra...)
	}
	return scanner.New(rules)
}

func printResult(out io.Writer, result models.AuditResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tSEVERITY\tCATEGORY\tMESSAGE")
	for _, f := range result.Findings {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", f.Line, f.Severity, f.Category, f.Message)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%s (risk score %d)\n", result.Status, result.RiskScore)
	return err
}
