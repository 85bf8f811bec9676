package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
	"github.com/heartmarshall/deutsch-vocab/internal/service/stats"
)

func newStatsCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [level...]",
		Short: "Show progress per level and in total",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			progress, _, err := cc.openStore(ctx)
			if err != nil {
				return err
			}

			cfg, _ := cc.ensureConfig()
			ov, err := stats.NewService(cc.logger, progress, cfg.Practice.TopDifficultLimit).Overview(ctx, args)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(ov.Levels)+1)
			for _, st := range ov.Levels {
				rows = append(rows, statsRow(st.Level, st))
			}
			rows = append(rows, statsRow("All", ov.Aggregate))

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"Level", "Total", "Correct", "Incorrect", "Not answered", "Remaining", "Done %", "Hard"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}
}

func statsRow(label string, st domain.LevelStats) []string {
	return []string{
		label,
		strconv.Itoa(st.Total),
		strconv.Itoa(st.Correct),
		strconv.Itoa(st.Incorrect),
		strconv.Itoa(st.NotAnswered),
		strconv.Itoa(st.Remaining()),
		strconv.FormatFloat(st.CompletionPercentage(), 'f', 1, 64),
		strconv.Itoa(st.HardWords),
	}
}

func newTopCommand(cc *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top <level>",
		Short: "List the words answered wrong most often",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			progress, _, err := cc.openStore(ctx)
			if err != nil {
				return err
			}

			cfg, _ := cc.ensureConfig()
			words, err := stats.NewService(cc.logger, progress, cfg.Practice.TopDifficultLimit).
				TopDifficultWords(ctx, args[0], limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(words) == 0 {
				fmt.Fprintf(out, "No mistakes recorded in %s\n", args[0])
				return nil
			}

			rows := make([][]string, 0, len(words))
			for i, w := range words {
				hard := ""
				if w.Difficulty.IsHard() {
					hard = "yes"
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					w.Identity().DisplayGerman(),
					w.English,
					strconv.Itoa(w.IncorrectCount),
					w.Status.String(),
					hard,
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"#", "German", "English", "Mistakes", "Status", "Hard"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of words to show (default from practice.top_difficult_limit)")
	return cmd
}
