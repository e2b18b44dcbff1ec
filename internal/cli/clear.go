package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// Clear command outcomes.
const (
	ClearedMessage = "All activity data cleared."
	AbortedMessage = "Aborted: nothing was deleted."
)

// NewClearCmd creates the clear command that deletes the whole activity log.
func NewClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every logged activity",
		Long: `Deletes the entire activity log from the configured store.

You are asked to confirm unless --yes is given. This cannot be undone.`,
		Example: `  # Clear after confirming
  carbontrack clear

  # Clear without a prompt
  carbontrack clear --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClear(cmd, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func runClear(cmd *cobra.Command, yes bool) error {
	ctx := cmd.Context()

	store, closeStore, err := openActivityStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if !yes {
		result := ConfirmClear(cmd.OutOrStdout(), cmd.InOrStdin(), store.Len())
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
		if result.Cancelled {
			return errors.New("reading confirmation failed")
		}
		if !result.Accepted {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), AbortedMessage)
			return nil
		}
	}

	cleared := store.Len()
	if err := store.ClearAll(ctx); err != nil {
		logger.Error().Ctx(ctx).
			Str("operation", "clear").
			Err(err).
			Msg("clearing activity log failed")
		return fmt.Errorf("clearing activity log: %w", err)
	}

	logger.Info().Ctx(ctx).Int("cleared", cleared).Msg("activity log cleared")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), ClearedMessage)
	return nil
}
