// Package jsonfile persists the progress document as a single JSON file.
//
// The on-disk shape is an object keyed by level, each value an array of
// word objects. Older files stored words as positional arrays; Decode
// converts them and fills in missing defaults so the rest of the program
// only ever sees the current shape.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
)

// Format versions recognised by Decode.
const (
	// FormatTuples is the legacy shape: [artikel, deutsch, english, status?, count?].
	FormatTuples = 0
	// FormatObjects is the current shape written by Encode.
	FormatObjects = 1
)

// LoadInfo describes what Decode had to do to bring a file up to date.
type LoadInfo struct {
	// Version is the oldest format found in the file.
	Version    int
	Levels     int
	Words      int
	Legacy     int // records converted from the tuple shape
	Normalized int // records that had defaults filled in
	Duplicates int // records dropped because their identity repeated in a level
}

// Migrated reports whether the decoded document differs from the file.
func (i LoadInfo) Migrated() bool {
	return i.Legacy > 0 || i.Normalized > 0 || i.Duplicates > 0
}

type wordIn struct {
	Artikel         *string         `json:"artikel"`
	Deutsch         string          `json:"deutsch"`
	English         string          `json:"english"`
	Status          string          `json:"status"`
	IncorrectCount  json.RawMessage `json:"incorrect_count"`
	Difficulty      string          `json:"difficulty"`
	ExampleSentence string          `json:"example_sentence"`
}

type wordOut struct {
	Artikel         string `json:"artikel"`
	Deutsch         string `json:"deutsch"`
	English         string `json:"english"`
	Status          string `json:"status"`
	IncorrectCount  int    `json:"incorrect_count"`
	Difficulty      string `json:"difficulty,omitempty"`
	ExampleSentence string `json:"example_sentence,omitempty"`
}

// Decode parses a progress file. Level order from the file is kept. An
// empty or whitespace-only input yields an empty document.
func Decode(data []byte) (*domain.Document, LoadInfo, error) {
	doc := domain.NewDocument()
	info := LoadInfo{Version: FormatObjects}

	if len(bytes.TrimSpace(data)) == 0 {
		return doc, info, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, info, fmt.Errorf("read document: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, info, fmt.Errorf("document must be a JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, info, fmt.Errorf("read level key: %w", err)
		}
		level, _ := tok.(string)

		var items []json.RawMessage
		if err := dec.Decode(&items); err != nil {
			return nil, info, fmt.Errorf("level %q: %w", level, err)
		}

		words, _ := doc.Words(level)
		for i, raw := range items {
			w, legacy, normalized, err := decodeWord(raw)
			if err != nil {
				return nil, info, fmt.Errorf("level %q word %d: %w", level, i, err)
			}
			if legacy {
				info.Legacy++
				info.Version = FormatTuples
			}
			if domain.IndexOf(words, w.Identity()) >= 0 {
				info.Duplicates++
				continue
			}
			if normalized {
				info.Normalized++
			}
			words = append(words, w)
		}
		if words == nil {
			words = []domain.WordRecord{}
		}
		doc.SetLevel(level, words)
	}

	if _, err := dec.Token(); err != nil {
		return nil, info, fmt.Errorf("read document end: %w", err)
	}

	info.Levels = len(doc.Levels())
	info.Words = doc.Len()
	return doc, info, nil
}

func decodeWord(raw json.RawMessage) (w domain.WordRecord, legacy, normalized bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return w, false, false, fmt.Errorf("empty word")
	}

	switch raw[0] {
	case '[':
		w, err = decodeTuple(raw)
		return w, true, false, err
	case '{':
		var in wordIn
		if err := json.Unmarshal(raw, &in); err != nil {
			return w, false, false, err
		}
		w, normalized = normalizeWord(in)
		return w, false, normalized, nil
	default:
		return w, false, false, fmt.Errorf("unexpected word shape %q", truncate(string(raw), 32))
	}
}

func decodeTuple(raw json.RawMessage) (domain.WordRecord, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return domain.WordRecord{}, err
	}
	if len(parts) < 3 {
		return domain.WordRecord{}, fmt.Errorf("tuple needs at least 3 fields, got %d", len(parts))
	}

	str := func(i int) (string, error) {
		if i >= len(parts) {
			return "", nil
		}
		var s *string
		if err := json.Unmarshal(parts[i], &s); err != nil {
			return "", fmt.Errorf("field %d: %w", i, err)
		}
		if s == nil {
			return "", nil
		}
		return *s, nil
	}

	var in wordIn
	var err error
	artikel, err := str(0)
	if err != nil {
		return domain.WordRecord{}, err
	}
	in.Artikel = &artikel
	if in.Deutsch, err = str(1); err != nil {
		return domain.WordRecord{}, err
	}
	if in.English, err = str(2); err != nil {
		return domain.WordRecord{}, err
	}
	if in.Status, err = str(3); err != nil {
		return domain.WordRecord{}, err
	}
	if len(parts) > 4 {
		in.IncorrectCount = parts[4]
	}

	w, _ := normalizeWord(in)
	return w, nil
}

// normalizeWord applies defaults: missing article is empty, unknown status
// is notyetanswered, missing or invalid count is 0, any difficulty other
// than "hard" is dropped.
func normalizeWord(in wordIn) (domain.WordRecord, bool) {
	normalized := false

	w := domain.WordRecord{
		Deutsch:         in.Deutsch,
		English:         in.English,
		ExampleSentence: in.ExampleSentence,
	}

	if in.Artikel != nil {
		w.Artikel = *in.Artikel
	} else {
		normalized = true
	}

	status, ok := domain.ParseWordStatus(in.Status)
	if !ok || string(status) != in.Status {
		normalized = true
	}
	w.Status = status

	count, ok := parseCount(in.IncorrectCount)
	if !ok {
		normalized = true
	}
	w.IncorrectCount = count

	switch strings.ToLower(strings.TrimSpace(in.Difficulty)) {
	case "":
	case string(domain.DifficultyHard):
		w.Difficulty = domain.DifficultyHard
		if in.Difficulty != string(domain.DifficultyHard) {
			normalized = true
		}
	default:
		normalized = true
	}

	return w, normalized
}

// parseCount accepts a JSON integer, a float or a numeric string. The bool
// is true only for a non-negative JSON integer; other inputs are coerced,
// with anything unusable becoming 0.
func parseCount(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}

	canonical := raw[0] != '"'
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		n = json.Number(strings.TrimSpace(s))
	}

	if i, err := n.Int64(); err == nil {
		if i < 0 {
			return 0, false
		}
		return int(i), canonical
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return int(f), false
}

// Encode renders the document in the current shape, pretty-printed with
// two-space indentation and a trailing newline.
func Encode(doc *domain.Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, level := range doc.Levels() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(level)
		if err != nil {
			return nil, fmt.Errorf("encode level key %q: %w", level, err)
		}

		words, _ := doc.Words(level)
		out := make([]wordOut, len(words))
		for j, w := range words {
			out[j] = wordOut{
				Artikel:         w.Artikel,
				Deutsch:         w.Deutsch,
				English:         w.English,
				Status:          string(w.Status),
				IncorrectCount:  w.IncorrectCount,
				Difficulty:      string(w.Difficulty),
				ExampleSentence: w.ExampleSentence,
			}
		}
		val, err := json.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("encode level %q: %w", level, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indent document: %w", err)
	}
	pretty.WriteByte('\n')
	return pretty.Bytes(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
