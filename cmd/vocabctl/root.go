package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var flags globalFlags
	cc := newCommandContext(&flags)

	rootCmd := &cobra.Command{
		Use:           "vocabctl",
		Short:         "Inspect and maintain vocabulary progress",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.storePath, "store", "", "Progress file path (overrides store.path)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log at info level")

	rootCmd.AddCommand(newStatsCommand(cc))
	rootCmd.AddCommand(newTopCommand(cc))
	rootCmd.AddCommand(newResetCommand(cc))
	rootCmd.AddCommand(newResetAllCommand(cc))
	rootCmd.AddCommand(newMigrateCommand(cc))
	rootCmd.AddCommand(newBackupCommand(cc))
	rootCmd.AddCommand(newExportCommand(cc))

	return rootCmd
}
