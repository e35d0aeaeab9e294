package cli

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/civicstream/olympia-events/internal/config"
	"github.com/civicstream/olympia-events/internal/event"
	"github.com/civicstream/olympia-events/internal/legistar"
	"github.com/civicstream/olympia-events/internal/logger"
	"github.com/civicstream/olympia-events/internal/scraper"
	"github.com/civicstream/olympia-events/internal/storage"
)

const (
	ExitSuccess   = 0
	ExitError     = 1
	ExitNewEvents = 2
)

const dateLayout = "2006-01-02"

var (
	flagFrom        string
	flagTo          string
	flagBody        string
	flagDataDir     string
	flagFormat      string
	flagRefresh     bool
	flagVerbose     bool
	flagSkipContent bool
)

// NewRootCmd creates the root command.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "olympia-events",
		Short: "Scrape City of Olympia meeting events from Legistar",
		Long: `Scrapes legislative meeting events for a Legistar deployment,
resolves meeting video and caption URLs, and reports events added
since the last run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGather(cmd, cfg)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&flagFrom, "from", "", "Start of date range (YYYY-MM-DD, default: 7 days ago)")
	cmd.Flags().StringVar(&flagTo, "to", "", "End of date range, exclusive (YYYY-MM-DD, default: 60 days ahead)")
	cmd.Flags().StringVar(&flagBody, "body", "", "Only include bodies whose name contains this text")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", cfg.DataDir, "Data directory for snapshots")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, json or ics")
	cmd.Flags().BoolVar(&flagRefresh, "refresh", false, "Refresh snapshot without reporting new events")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")
	cmd.Flags().BoolVar(&flagSkipContent, "skip-content", false, "Skip video/caption URL resolution")

	return cmd
}

// runGather is the main command logic.
func runGather(cmd *cobra.Command, cfg *config.Config) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON && format != FormatICS {
		return fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'ics')", flagFormat)
	}

	from, to, err := dateRange(flagFrom, flagTo)
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store, err := storage.New(flagDataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	lc := legistar.NewClient(cfg.Client,
		legistar.WithUserAgent(cfg.UserAgent),
		legistar.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
	)

	gatherer := scraper.New(lc, loc)
	gatherer.SkipContent(flagSkipContent)

	currentEvents, err := gatherer.GetEvents(cmd.Context(), from, to)
	if err != nil {
		return fmt.Errorf("gathering events: %w", err)
	}

	var previous *event.Snapshot
	if !flagRefresh {
		previous, err = store.LoadSnapshot(cfg.Client)
		if err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}
	}

	diff := event.Diff(previous, currentEvents, flagBody)

	if err := store.CreateSnapshotFromEvents(currentEvents, cfg.Client); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	result := &OutputResult{
		CheckedAt:  time.Now().UTC(),
		Client:     cfg.Client,
		From:       from,
		To:         to,
		NewEvents:  diff.NewEvents,
		EventCount: len(diff.NewEvents),
		ByBody:     diff.ByBody,
	}

	if flagRefresh {
		if format == FormatText {
			fmt.Println("Snapshot refreshed successfully.")
		} else {
			result.NewEvents = nil
			result.EventCount = 0
			result.ByBody = nil
			WriteOutput(os.Stdout, result, format, flagVerbose)
		}
		os.Exit(ExitSuccess)
		return nil
	}

	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if len(diff.NewEvents) > 0 {
		os.Exit(ExitNewEvents)
	}
	os.Exit(ExitSuccess)
	return nil
}

// dateRange parses the --from/--to flags, applying the default window when
// either is omitted.
func dateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -7)
	to := now.AddDate(0, 0, 60)

	if fromStr != "" {
		t, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date %q: %w", fromStr, err)
		}
		from = t
	}
	if toStr != "" {
		t, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to date %q: %w", toStr, err)
		}
		to = t
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to must be after --from")
	}
	return from, to, nil
}

// Execute runs the CLI.
func Execute(cfg *config.Config) {
	if err := NewRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
