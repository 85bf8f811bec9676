package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/deutsch-vocab/internal/service/practice"
)

type resetFlags struct {
	scope           string
	clearDifficulty bool
}

func (f *resetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.scope, "scope", string(practice.ResetScopeFull), "What to reset: full (status and counts) or counts")
	cmd.Flags().BoolVar(&f.clearDifficulty, "clear-difficulty", false, "Also remove hard flags")
}

func newResetCommand(cc *commandContext) *cobra.Command {
	var flags resetFlags

	cmd := &cobra.Command{
		Use:   "reset <level>",
		Short: "Reset progress of one level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cmd, cc, practice.ResetInput{
				Level:           args[0],
				Scope:           practice.ResetScope(strings.ToLower(flags.scope)),
				ClearDifficulty: flags.clearDifficulty,
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newResetAllCommand(cc *commandContext) *cobra.Command {
	var flags resetFlags

	cmd := &cobra.Command{
		Use:   "reset-all",
		Short: "Reset progress of every level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cmd, cc, practice.ResetInput{
				All:             true,
				Scope:           practice.ResetScope(strings.ToLower(flags.scope)),
				ClearDifficulty: flags.clearDifficulty,
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func runReset(cmd *cobra.Command, cc *commandContext, input practice.ResetInput) error {
	ctx := cmd.Context()
	progress, _, err := cc.openStore(ctx)
	if err != nil {
		return err
	}

	cfg, _ := cc.ensureConfig()
	svc := practice.NewService(cc.logger, progress, nil, practice.Options{DefaultLevel: cfg.Practice.DefaultLevel})

	res, err := svc.Reset(ctx, input)
	if err != nil {
		return err
	}
	if !res.Saved {
		return errors.New("reset applied in memory but the progress file could not be written")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Reset %d words in %s\n", res.Changed, strings.Join(res.Levels, ", "))
	return nil
}
