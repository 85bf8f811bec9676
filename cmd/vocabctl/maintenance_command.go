package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/deutsch-vocab/internal/export"
)

func newMigrateCommand(cc *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Rewrite the progress file in the current format",
		Long: "Loads the progress file, converting legacy word shapes and filling in defaults, " +
			"and writes it back in the current format.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			progress, info, err := cc.openStore(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Levels: %d, words: %d, format version: %d\n", info.Levels, info.Words, info.Version)
			fmt.Fprintf(out, "Legacy records: %d, normalized: %d, duplicates dropped: %d\n",
				info.Legacy, info.Normalized, info.Duplicates)

			if !info.Migrated() {
				fmt.Fprintln(out, "Already in the current format")
				return nil
			}
			if dryRun {
				fmt.Fprintln(out, "Dry run, nothing written")
				return nil
			}

			cfg, _ := cc.ensureConfig()
			backup, err := copyOriginal(cfg.Store.Path, cfg.Store.BackupDir)
			if err != nil {
				return fmt.Errorf("backup before migrate: %w", err)
			}
			if err := progress.Save(ctx); err != nil {
				return err
			}
			fmt.Fprintf(out, "Progress file rewritten, original kept at %s\n", backup)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")
	return cmd
}

// copyOriginal keeps the file bytes as they are on disk, since snapshots
// are written from the already normalized document.
func copyOriginal(path, dir string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dst := filepath.Join(dir, base+".pre-migrate-"+time.Now().UTC().Format("20060102-150405")+".json")
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", err
	}
	return dst, nil
}

func newBackupCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Write a timestamped snapshot of the progress file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			progress, _, err := cc.openStore(ctx)
			if err != nil {
				return err
			}

			path, err := progress.Snapshot(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newExportCommand(cc *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export progress as an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			progress, _, err := cc.openStore(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			w := bufio.NewWriter(f)
			if err := export.WriteWorkbook(w, progress); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d levels to %s\n", len(progress.Levels()), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "vocab_progress.xlsx", "Output file")
	return cmd
}
