package domain

import "strings"

// DefaultLevel is used when a practice request names no level.
const DefaultLevel = "A1.1"

// WordStatus is the mastery state of a single word.
type WordStatus string

const (
	StatusNotYetAnswered WordStatus = "notyetanswered"
	StatusCorrect        WordStatus = "correct"
	StatusIncorrect      WordStatus = "incorrect"
)

func (s WordStatus) String() string { return string(s) }

func (s WordStatus) IsValid() bool {
	switch s {
	case StatusNotYetAnswered, StatusCorrect, StatusIncorrect:
		return true
	}
	return false
}

// ParseWordStatus maps a persisted status to a WordStatus. Older documents
// used a few spellings for the unanswered state; anything unrecognised
// falls back to StatusNotYetAnswered and ok is false.
func ParseWordStatus(raw string) (status WordStatus, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "notyetanswered", "not_yet_answered", "not yet answered", "":
		return StatusNotYetAnswered, raw != ""
	case "correct":
		return StatusCorrect, true
	case "incorrect":
		return StatusIncorrect, true
	}
	return StatusNotYetAnswered, false
}

// Difficulty is an optional user flag on a word. Only "hard" is defined;
// the zero value means the flag is absent.
type Difficulty string

const (
	DifficultyNone Difficulty = ""
	DifficultyHard Difficulty = "hard"
)

func (d Difficulty) String() string { return string(d) }

func (d Difficulty) IsHard() bool { return d == DifficultyHard }

// Identity is the natural key of a word inside a level.
type Identity struct {
	Artikel string `json:"artikel"`
	Deutsch string `json:"deutsch"`
	English string `json:"english"`
}

// Valid reports whether the identity carries the fields every word needs.
// The article may legitimately be empty.
func (id Identity) Valid() bool {
	return strings.TrimSpace(id.Deutsch) != "" && strings.TrimSpace(id.English) != ""
}

// DisplayGerman renders the German side with its article, e.g. "der Hund".
func (id Identity) DisplayGerman() string {
	if id.Artikel == "" {
		return id.Deutsch
	}
	return id.Artikel + " " + id.Deutsch
}

// WordRecord is one vocabulary item and its progress.
type WordRecord struct {
	Artikel         string
	Deutsch         string
	English         string
	Status          WordStatus
	IncorrectCount  int
	Difficulty      Difficulty
	ExampleSentence string
}

// Identity returns the natural key of the record.
func (w WordRecord) Identity() Identity {
	return Identity{Artikel: w.Artikel, Deutsch: w.Deutsch, English: w.English}
}

// Matches reports whether the record has exactly the given identity.
func (w WordRecord) Matches(id Identity) bool {
	return w.Artikel == id.Artikel && w.Deutsch == id.Deutsch && w.English == id.English
}

// PendingPractice reports whether the word still needs practice: it was
// never answered or was last answered wrong.
func (w WordRecord) PendingPractice() bool {
	return w.Status == StatusNotYetAnswered || w.Status == StatusIncorrect
}

// LevelWord is a word tagged with the level it belongs to.
type LevelWord struct {
	Level string
	Word  WordRecord
}
