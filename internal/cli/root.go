// Package cli implements the avail command line front end: three
// commands mirroring the engine's public operations, fed by a
// CUE-validated YAML calendar file. No logic lives here beyond
// parsing flags and rendering results.
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	CalendarFile string
	Format       string // "text" | "json"
	Verbose      bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the avail root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "avail",
		Short: "Availability and conflict resolution for organization calendars",
		Long: "avail answers three questions over a calendar file: is a window\n" +
			"free for a set of people, which windows are free, and which free\n" +
			"windows make the best meeting suggestions.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.CalendarFile, "calendar", "c", "calendar.yaml", "calendar file (YAML)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewSlotsCommand(opts))
	cmd.AddCommand(NewSuggestCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// splitUsers parses the comma-separated --users flag.
func splitUsers(flag string) []string {
	var users []string
	for _, part := range strings.Split(flag, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			users = append(users, trimmed)
		}
	}
	return users
}
