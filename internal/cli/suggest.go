package cli

import (
	"github.com/spf13/cobra"
)

// NewSuggestCommand creates "avail suggest": the top-ranked free
// windows for a meeting.
func NewSuggestCommand(opts *RootOptions) *cobra.Command {
	var (
		users    string
		from     string
		to       string
		duration int
		max      int
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest the best meeting times",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine, err := buildEngine(ctx, opts)
			if err != nil {
				return err
			}
			ranked, err := engine.SuggestMeetingTimes(ctx, splitUsers(users), duration, from, to, max)
			if err != nil {
				return err
			}
			return renderRanked(cmd.OutOrStdout(), opts.Format, ranked)
		},
	}

	cmd.Flags().StringVar(&users, "users", "", "comma-separated user ids (required)")
	cmd.Flags().StringVar(&from, "from", "", "range start date (required)")
	cmd.Flags().StringVar(&to, "to", "", "range end date (required)")
	cmd.Flags().IntVar(&duration, "duration", 60, "slot duration in minutes")
	cmd.Flags().IntVar(&max, "max", 5, "maximum suggestions to return")
	for _, flag := range []string{"users", "from", "to"} {
		_ = cmd.MarkFlagRequired(flag)
	}

	return cmd
}
