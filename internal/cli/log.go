package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/carbontrack/internal/activity"
	"github.com/rshade/carbontrack/internal/config"
	"github.com/rshade/carbontrack/internal/factors"
	"github.com/rshade/carbontrack/internal/stats"
	"github.com/rshade/carbontrack/internal/tui"
)

// logFlags mirrors the activity form.
type logFlags struct {
	mode          string
	distance      string
	diet          string
	meals         string
	electricity   string
	showDashboard bool
}

// logResult is the JSON shape of a successful log submission.
type logResult struct {
	Added      []activity.Record `json:"added"`
	AddedCO2e  float64           `json:"added_co2e_kg"`
	TotalCount int               `json:"activity_count"`
}

// NewLogCmd creates the log command for recording activities.
func NewLogCmd() *cobra.Command {
	var flags logFlags

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record transport, food and electricity activities",
		Long: `Records one activity per filled-in section of the activity form.

A section counts only when its amount is a positive number. Sections are
recorded in the order transport, food, energy and saved together.

Without amount flags on an interactive terminal, an input form is opened
instead. After a successful submission the form switches to the dashboard.`,
		Example: `  # Log a bus trip and a meat-based diet
  carbontrack log --mode bus --distance 100 --diet meat --meals 2

  # Log electricity only and show the dashboard afterwards
  carbontrack log --electricity 10 --show-dashboard

  # Open the interactive form
  carbontrack log`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLog(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.mode, "mode", factors.KeyCar, "transport mode: car, bus, train or bike")
	cmd.Flags().StringVar(&flags.distance, "distance", "", "distance travelled in km")
	cmd.Flags().StringVar(&flags.diet, "diet", factors.KeyVeg, "diet type: veg, mixed or meat")
	cmd.Flags().StringVar(&flags.meals, "meals", "", "food amount in kg")
	cmd.Flags().StringVar(&flags.electricity, "electricity", "", "electricity used in kWh")
	cmd.Flags().BoolVar(&flags.showDashboard, "show-dashboard", false,
		"print the dashboard after the redirect delay")

	return cmd
}

func runLog(cmd *cobra.Command, flags logFlags) error {
	ctx := cmd.Context()

	store, closeStore, err := openActivityStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if !hasAmountFlags(cmd) && !jsonOutput() && humanOutputMode() == tui.OutputModeInteractive {
		return runLogForm(cmd, store)
	}

	form := activity.Form{
		TransportMode: flags.mode,
		Distance:      flags.distance,
		DietType:      flags.diet,
		Meals:         flags.meals,
		Electricity:   flags.electricity,
	}
	subs, err := form.Submissions()
	if errors.Is(err, activity.ErrNoActivities) {
		cmd.PrintErrln(tui.InvalidInputText)
		return &ExitError{Code: 1, Err: err}
	}
	if err != nil {
		return err
	}

	added, err := store.Submit(ctx, subs)
	if err != nil {
		logger.Error().Ctx(ctx).
			Str("operation", "submit").
			Int("submissions", len(subs)).
			Err(err).
			Msg("saving activities failed")
		return fmt.Errorf("saving activities: %w", err)
	}

	logger.Info().Ctx(ctx).
		Int("added", len(added)).
		Float64("added_co2e_kg", activity.TotalCO2e(added)).
		Msg("activities logged")

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), logResult{
			Added:      added,
			AddedCO2e:  activity.TotalCO2e(added),
			TotalCount: store.Len(),
		})
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), tui.SubmittedMessage(added))

	if !flags.showDashboard {
		return nil
	}
	if err := waitRedirect(ctx, config.GetGlobalConfig().Dashboard.RedirectDelay); err != nil {
		return err
	}
	return printDashboard(cmd, store.Records())
}

// hasAmountFlags reports whether any section amount was given on the command line.
func hasAmountFlags(cmd *cobra.Command) bool {
	flags := cmd.Flags()
	return flags.Changed("distance") || flags.Changed("meals") || flags.Changed("electricity")
}

// waitRedirect pauses for the post-submission redirect delay.
func waitRedirect(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func runLogForm(cmd *cobra.Command, store *activity.Store) error {
	delay := config.GetGlobalConfig().Dashboard.RedirectDelay
	model := tui.NewLogFormModel(cmd.Context(), store, delay)

	p := tea.NewProgram(model, tea.WithContext(cmd.Context()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running log form: %w", err)
	}
	return nil
}

// printDashboard renders a static dashboard for non-interactive use.
func printDashboard(cmd *cobra.Command, records []activity.Record) error {
	out := cmd.OutOrStdout()
	s := stats.ComputeStats(records, time.Now())

	if humanOutputMode() == tui.OutputModePlain {
		if err := tui.WriteDashboardPlain(out, s); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out)
		return tui.WriteHistoryPlain(out, records)
	}

	width := tui.TerminalWidth()
	_, _ = fmt.Fprintln(out, tui.RenderDashboard(s, width))
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, tui.RenderHistory(records, width))
	return nil
}
