// Package export renders the progress document as an xlsx workbook.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
)

// SummarySheet is the name of the first sheet, one row per level.
const SummarySheet = "Summary"

const maxSheetName = 31

var (
	summaryHeader = []any{"Level", "Total", "Correct", "Incorrect", "Not answered", "Completion %", "Incorrect attempts", "Hard words"}
	levelHeader   = []any{"Artikel", "Deutsch", "English", "Status", "Incorrect count", "Difficulty", "Example sentence"}
)

type progressReader interface {
	Levels() []string
	LevelWords(level string) ([]domain.WordRecord, error)
}

// WriteWorkbook writes a workbook with a summary sheet followed by one
// sheet per level.
func WriteWorkbook(w io.Writer, src progressReader) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	if err := writeRow(f, SummarySheet, 1, summaryHeader); err != nil {
		return err
	}
	if err := f.SetRowStyle(SummarySheet, 1, 1, bold); err != nil {
		return fmt.Errorf("style summary header: %w", err)
	}

	levels := src.Levels()
	all := make([]domain.LevelStats, 0, len(levels))
	used := map[string]bool{strings.ToLower(SummarySheet): true}

	for i, level := range levels {
		words, err := src.LevelWords(level)
		if err != nil {
			return fmt.Errorf("read level %s: %w", level, err)
		}
		st := domain.StatsFor(level, words)
		all = append(all, st)

		if err := writeRow(f, SummarySheet, i+2, statsRow(level, st)); err != nil {
			return err
		}

		sheet := uniqueSheetName(level, used)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
		if err := writeRow(f, sheet, 1, levelHeader); err != nil {
			return err
		}
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return fmt.Errorf("style %s header: %w", sheet, err)
		}
		for j, wr := range words {
			if err := writeRow(f, sheet, j+2, wordRow(wr)); err != nil {
				return err
			}
		}
		if err := f.SetColWidth(sheet, "A", "G", 18); err != nil {
			return fmt.Errorf("set %s widths: %w", sheet, err)
		}
	}

	totalRow := len(levels) + 2
	if err := writeRow(f, SummarySheet, totalRow, statsRow("All", domain.Aggregate(all))); err != nil {
		return err
	}
	if err := f.SetRowStyle(SummarySheet, totalRow, totalRow, bold); err != nil {
		return fmt.Errorf("style summary total: %w", err)
	}
	if err := f.SetColWidth(SummarySheet, "A", "H", 16); err != nil {
		return fmt.Errorf("set summary widths: %w", err)
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func statsRow(label string, st domain.LevelStats) []any {
	return []any{
		label, st.Total, st.Correct, st.Incorrect, st.NotAnswered,
		st.CompletionPercentage(), st.TotalIncorrectAttempts, st.HardWords,
	}
}

func wordRow(w domain.WordRecord) []any {
	return []any{
		w.Artikel, w.Deutsch, w.English, w.Status.String(),
		w.IncorrectCount, w.Difficulty.String(), w.ExampleSentence,
	}
}

// uniqueSheetName strips characters Excel rejects in sheet names, caps the
// length and disambiguates case-insensitive duplicates.
func uniqueSheetName(level string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.Trim(level, "'"))
	if name == "" {
		name = "Level"
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}

	candidate := name
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := []rune(name)
		if len(base)+len(suffix) > maxSheetName {
			base = base[:maxSheetName-len(suffix)]
		}
		candidate = string(base) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}
