package cli

import (
	"github.com/spf13/cobra"
)

// NewSlotsCommand creates "avail slots": list every free window of
// the requested duration within business hours.
func NewSlotsCommand(opts *RootOptions) *cobra.Command {
	var (
		users    string
		from     string
		to       string
		duration int
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List available time slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine, err := buildEngine(ctx, opts)
			if err != nil {
				return err
			}
			slots, err := engine.FindAvailableSlots(ctx, splitUsers(users), duration, from, to, nil)
			if err != nil {
				return err
			}
			return renderSlots(cmd.OutOrStdout(), opts.Format, slots)
		},
	}

	cmd.Flags().StringVar(&users, "users", "", "comma-separated user ids (required)")
	cmd.Flags().StringVar(&from, "from", "", "range start date (required)")
	cmd.Flags().StringVar(&to, "to", "", "range end date (required)")
	cmd.Flags().IntVar(&duration, "duration", 60, "slot duration in minutes")
	for _, flag := range []string{"users", "from", "to"} {
		_ = cmd.MarkFlagRequired(flag)
	}

	return cmd
}
