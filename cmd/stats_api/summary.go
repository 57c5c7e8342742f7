package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jonathan/recruit-stats/internal/observability"
	"github.com/jonathan/recruit-stats/internal/schemas"
	"github.com/jonathan/recruit-stats/internal/stats"
	"github.com/spf13/cobra"
)

var (
	summaryRecruiter string
	summaryJSON      bool
	summaryValidate  bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print a dashboard summary from the database",
	Long:  "Prints the administrator dashboard, or a recruiter's with --recruiter, as boxes or as JSON.",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryRecruiter, "recruiter", "", "Recruiter UUID (administrator view when empty)")
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "Print JSON instead of boxes")
	summaryCmd.Flags().BoolVar(&summaryValidate, "validate", false, "Check the payload against its JSON Schema")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	var ownerID uuid.UUID
	if summaryRecruiter != "" {
		id, err := uuid.Parse(summaryRecruiter)
		if err != nil {
			return fmt.Errorf("invalid --recruiter: %w", err)
		}
		ownerID = id
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := setup(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	dash := stats.NewDashboard(env.db, env.statsOptions())
	opts := summaryOptions{JSON: summaryJSON, Validate: summaryValidate}
	if ownerID == uuid.Nil {
		return writeAdminSummary(ctx, cmd.OutOrStdout(), dash, opts)
	}
	return writeRecruiterSummary(ctx, cmd.OutOrStdout(), dash, ownerID, opts)
}

type summaryOptions struct {
	JSON     bool
	Validate bool
}

func writeAdminSummary(ctx context.Context, out io.Writer, dash *stats.Dashboard, opts summaryOptions) error {
	summary, err := dash.AdminSummary(ctx)
	if err != nil {
		return fmt.Errorf("failed to build admin summary: %w", err)
	}
	if opts.Validate {
		if err := schemas.ValidateValue(schemas.AdminSummary, summary); err != nil {
			return err
		}
	}
	if opts.JSON {
		return writeJSON(out, summary)
	}

	byDepartment, err := dash.Breakdown(ctx, stats.Candidates, stats.Department, stats.Global())
	if err != nil {
		return fmt.Errorf("failed to count candidates by department: %w", err)
	}

	p := observability.NewPrinter(out)
	p.PrintAdminSummary(summary)
	p.PrintSeries("CANDIDATES BY DEPARTMENT", byDepartment)
	return nil
}

func writeRecruiterSummary(ctx context.Context, out io.Writer, dash *stats.Dashboard, ownerID uuid.UUID, opts summaryOptions) error {
	summary, err := dash.RecruiterSummary(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to build recruiter summary: %w", err)
	}
	if opts.Validate {
		if err := schemas.ValidateValue(schemas.RecruiterSummary, summary); err != nil {
			return err
		}
	}
	if opts.JSON {
		return writeJSON(out, summary)
	}

	upcoming, err := dash.UpcomingInterviews(ctx, ownerID, 0)
	if err != nil {
		return fmt.Errorf("failed to list upcoming interviews: %w", err)
	}
	week, err := dash.WeeklyInterviewCalendar(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to build interview calendar: %w", err)
	}

	p := observability.NewPrinter(out)
	p.PrintRecruiterSummary(summary)
	p.PrintUpcomingInterviews(upcoming)
	p.PrintSeries("INTERVIEWS THIS WEEK", week)
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
