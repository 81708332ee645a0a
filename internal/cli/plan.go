package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/riordanpawley/taskflow/internal/domain"
)

// GoalPlanner generates task drafts for a goal
type GoalPlanner interface {
	GeneratePlan(ctx context.Context, goal string) ([]domain.TaskDraft, error)
}

func newPlanCmd(opts *Options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "plan <goal>",
		Short: "Generate a task plan for a goal and print it",
		Long: `Ask the AI assistant to break a goal into tasks.

The plan is printed and no board is changed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := NewDependencies(*opts)
			if err != nil {
				return err
			}
			defer deps.Close()

			if deps.Planner == nil {
				return fmt.Errorf("%w: set GEMINI_API_KEY or ai.apiKey", domain.ErrAIDisabled)
			}
			return PlanCommand(cmd.Context(), deps.Planner, strings.Join(args, " "), format, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or table")
	return cmd
}

// PlanCommand generates a plan for goal and writes it to w
func PlanCommand(ctx context.Context, planner GoalPlanner, goal, format string, w io.Writer) error {
	if format != "json" && format != "table" {
		return fmt.Errorf("unknown format %q (use json or table)", format)
	}

	drafts, err := planner.GeneratePlan(ctx, goal)
	if err != nil {
		return err
	}

	if format == "table" {
		return writePlanTable(w, drafts)
	}

	data, err := sonic.ConfigStd.MarshalIndent(drafts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writePlanTable(w io.Writer, drafts []domain.TaskDraft) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPRIORITY\tTITLE\tTAGS")
	fmt.Fprintln(tw, "-\t--------\t-----\t----")

	for i, d := range drafts {
		priority := d.Priority
		if priority == "" {
			priority = string(domain.PriorityMedium)
		}
		title := d.Title
		// Truncate title if too long
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, priority, title, strings.Join(d.Tags, ", "))
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d tasks\n", len(drafts))
	return err
}
