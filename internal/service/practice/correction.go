package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
)

// SubmitCorrection applies a user-suggested correction to one word. Only
// fields that are present and differ from the stored value (compared with
// whitespace collapsed) change. Status, count and difficulty are never
// touched.
//
// The identity may change. Requests still holding the old identity get
// domain.ErrWordNotFound afterwards; concurrent corrections of the same
// word resolve as last writer wins. A new identity that collides with
// another word of the level is rejected with domain.ErrAlreadyExists.
func (s *Service) SubmitCorrection(ctx context.Context, input CorrectionInput) (*Evaluation, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if s.opts.SnapshotBeforeCorrection {
		if _, err := s.store.Snapshot(ctx); err != nil {
			s.log.WarnContext(ctx, "snapshot before correction failed", slog.String("error", err.Error()))
		}
	}

	var changes []domain.FieldChange
	updated, err := s.store.Update(ctx, input.Level, input.Word, func(w *domain.WordRecord) error {
		changes = applyPatch(w, input.Patch)
		return nil
	})

	saved := true
	if err != nil {
		if !errors.Is(err, domain.ErrStorageUnavailable) {
			return nil, fmt.Errorf("apply correction: %w", err)
		}
		saved = false
	}

	attempt := domain.Attempt{
		ID:             uuid.New(),
		Level:          input.Level,
		Word:           input.Word,
		Kind:           domain.KindCorrectionSubmitted,
		UserAnswer:     input.UserAnswer,
		Correction:     true,
		IncorrectCount: updated.IncorrectCount,
		Changes:        changes,
		UpdateSuccess:  saved,
		CreatedAt:      s.now(),
	}
	s.record(ctx, attempt)

	s.log.InfoContext(ctx, "correction applied",
		slog.String("level", input.Level),
		slog.String("word", input.Word.DisplayGerman()),
		slog.Int("changes", len(changes)),
		slog.Bool("saved", saved),
	)

	return &Evaluation{
		Kind:    domain.KindCorrectionSubmitted,
		Message: correctionMessage(changes),
		Level:   input.Level,
		Word:    updated,
		Changes: changes,
		Saved:   saved,
		Attempt: attempt,
	}, nil
}

// applyPatch mutates w and returns the fields it changed.
func applyPatch(w *domain.WordRecord, p CorrectionPatch) []domain.FieldChange {
	var changes []domain.FieldChange

	set := func(field string, dst *string, v string) {
		if v == domain.TidyText(*dst) {
			return
		}
		changes = append(changes, domain.FieldChange{Field: field, Original: *dst, Corrected: v})
		*dst = v
	}

	if p.German != nil {
		if v := domain.TidyText(*p.German); v != "" {
			set("deutsch", &w.Deutsch, v)
		}
	}
	if p.English != nil {
		if v := domain.TidyText(*p.English); v != "" {
			set("english", &w.English, v)
		}
	}
	if p.Artikel != nil {
		v := strings.ToLower(domain.TidyText(*p.Artikel))
		if v == "none" {
			v = ""
		}
		set("artikel", &w.Artikel, v)
	}
	if p.Example != nil {
		set("example_sentence", &w.ExampleSentence, domain.TidyText(*p.Example))
	}
	return changes
}

func correctionMessage(changes []domain.FieldChange) string {
	if len(changes) == 0 {
		return "Thank you! The entry already matches your suggestion, nothing was changed."
	}
	parts := make([]string, len(changes))
	for i, c := range changes {
		parts[i] = fmt.Sprintf("%s: %q -> %q", c.Field, c.Original, c.Corrected)
	}
	return "Thank you! Your corrections have been saved: " + strings.Join(parts, ", ")
}
