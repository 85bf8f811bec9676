package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
)

type docReader struct {
	doc *domain.Document
}

func (r docReader) Levels() []string { return r.doc.Levels() }

func (r docReader) LevelWords(level string) ([]domain.WordRecord, error) {
	words, ok := r.doc.Words(level)
	if !ok {
		return nil, domain.ErrLevelNotFound
	}
	return words, nil
}

func TestWriteWorkbook(t *testing.T) {
	t.Parallel()

	doc := domain.NewDocument()
	doc.SetLevel("A1.1", []domain.WordRecord{
		{Artikel: "der", Deutsch: "Hund", English: "dog", Status: domain.StatusCorrect, IncorrectCount: 1},
		{Deutsch: "laufen", English: "to run", Status: domain.StatusIncorrect, IncorrectCount: 3, Difficulty: domain.DifficultyHard},
	})
	doc.SetLevel("A1.2", []domain.WordRecord{
		{Artikel: "die", Deutsch: "Katze", English: "cat", Status: domain.StatusNotYetAnswered, ExampleSentence: "Die Katze schläft."},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, docReader{doc}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, "A1.1", "A1.2"}, f.GetSheetList())

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, "Level", summary[0][0])
	assert.Equal(t, []string{"A1.1", "2", "1", "1", "0", "50", "4", "1"}, summary[1])
	assert.Equal(t, "All", summary[3][0])
	assert.Equal(t, "3", summary[3][1])

	words, err := f.GetRows("A1.2")
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, []string{"die", "Katze", "cat", "notyetanswered", "0", "", "Die Katze schläft."}, words[1])
}

func TestWriteWorkbook_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, docReader{domain.NewDocument()}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "All", rows[1][0])
}

func TestUniqueSheetName(t *testing.T) {
	t.Parallel()

	used := map[string]bool{"summary": true}

	assert.Equal(t, "A1_1", uniqueSheetName("A1/1", used))
	assert.Equal(t, "summary (2)", uniqueSheetName("summary", used))
	assert.Equal(t, "A1_1 (2)", uniqueSheetName("A1:1", used))

	long := uniqueSheetName("abcdefghijklmnopqrstuvwxyzabcdefghij", used)
	assert.Len(t, long, maxSheetName)
}
