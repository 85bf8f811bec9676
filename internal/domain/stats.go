package domain

import "math"

// LevelStats summarises the progress of one level, or of several levels
// when produced by Aggregate.
type LevelStats struct {
	Level                  string
	Total                  int
	Correct                int
	Incorrect              int
	NotAnswered            int
	Completed              bool
	TotalIncorrectAttempts int
	WordsWithErrors        int
	MostDifficultCount     int
	HardWords              int
}

// Remaining is the number of words not yet answered correctly.
func (s LevelStats) Remaining() int {
	return s.Total - s.Correct
}

// CompletionPercentage is the share of correct words, rounded to one decimal.
func (s LevelStats) CompletionPercentage() float64 {
	if s.Total == 0 {
		return 0
	}
	return math.Round(float64(s.Correct)/float64(s.Total)*1000) / 10
}

// StatsFor computes the stats of a single level's words.
func StatsFor(level string, words []WordRecord) LevelStats {
	st := LevelStats{Level: level, Total: len(words)}
	for _, w := range words {
		switch w.Status {
		case StatusCorrect:
			st.Correct++
		case StatusIncorrect:
			st.Incorrect++
		default:
			st.NotAnswered++
		}
		st.TotalIncorrectAttempts += w.IncorrectCount
		if w.IncorrectCount > 0 {
			st.WordsWithErrors++
		}
		if w.IncorrectCount > st.MostDifficultCount {
			st.MostDifficultCount = w.IncorrectCount
		}
		if w.Difficulty.IsHard() {
			st.HardWords++
		}
	}
	st.Completed = st.NotAnswered == 0 && st.Incorrect == 0
	return st
}

// Aggregate sums the numeric fields of several level stats. The result is
// completed only if every input is completed; no input means completed.
func Aggregate(stats []LevelStats) LevelStats {
	agg := LevelStats{Completed: true}
	for _, st := range stats {
		agg.Total += st.Total
		agg.Correct += st.Correct
		agg.Incorrect += st.Incorrect
		agg.NotAnswered += st.NotAnswered
		agg.TotalIncorrectAttempts += st.TotalIncorrectAttempts
		agg.WordsWithErrors += st.WordsWithErrors
		agg.MostDifficultCount += st.MostDifficultCount
		agg.HardWords += st.HardWords
		agg.Completed = agg.Completed && st.Completed
	}
	return agg
}
