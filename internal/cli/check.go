package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/orgkit/avail/internal/availability"
)

// NewCheckCommand creates "avail check": does a proposed window
// collide with anyone's existing commitments.
func NewCheckCommand(opts *RootOptions) *cobra.Command {
	var (
		users   string
		start   string
		end     string
		exclude string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a time window for conflicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine, err := buildEngine(ctx, opts)
			if err != nil {
				return err
			}
			conflicts, err := engine.CheckConflicts(ctx, splitUsers(users), start, end, exclude)
			if err != nil {
				return err
			}
			return renderConflicts(cmd.OutOrStdout(), opts.Format, conflicts)
		},
	}

	cmd.Flags().StringVar(&users, "users", "", "comma-separated user ids (required)")
	cmd.Flags().StringVar(&start, "start", "", "window start, e.g. 2024-06-04T14:00 (required)")
	cmd.Flags().StringVar(&end, "end", "", "window end (required)")
	cmd.Flags().StringVar(&exclude, "exclude", "", "event id to ignore (when editing that event)")
	for _, flag := range []string{"users", "start", "end"} {
		_ = cmd.MarkFlagRequired(flag)
	}

	return cmd
}

// buildEngine loads the calendar file and constructs an engine over
// it. The file's business hours, when present, become the engine's
// default table.
func buildEngine(ctx context.Context, opts *RootOptions) (*availability.Engine, error) {
	mem, hours, err := LoadCalendarFile(ctx, opts.CalendarFile)
	if err != nil {
		return nil, err
	}
	engineOpts := []availability.Option{}
	if hours != nil {
		engineOpts = append(engineOpts, availability.WithWeekHours(hours))
	}
	return availability.New(mem, mem, engineOpts...), nil
}
