package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
)

// SubmitAnswer evaluates an answer and applies its effect:
//
//	first try, correct: status becomes correct
//	first try, wrong:   status becomes incorrect and the count goes up by one
//	retry, correct:     nothing changes
//	retry, wrong:       the count goes up by one
//
// A submission carrying correction fields is handed to SubmitCorrection.
// A failed save does not fail the call; Evaluation.Saved is false instead.
//
// The answer is checked against a copy read before the update. A correction
// that renames the word in between wins: the update then returns
// domain.ErrWordNotFound and the checked answer is not recorded.
func (s *Service) SubmitAnswer(ctx context.Context, input SubmitAnswerInput) (*Evaluation, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if !input.Correction.IsEmpty() {
		return s.SubmitCorrection(ctx, CorrectionInput{
			Level:      input.Level,
			Word:       input.Word,
			Patch:      *input.Correction,
			UserAnswer: input.Answer,
		})
	}

	word, err := s.store.FindWord(input.Level, input.Word)
	if err != nil {
		return nil, fmt.Errorf("find word: %w", err)
	}

	mandatory := s.opts.ArticlesMandatory
	if input.ArticlesMandatory != nil {
		mandatory = *input.ArticlesMandatory
	}
	correct := CheckAnswer(input.Answer, word.Deutsch, word.Artikel, mandatory)

	var kind domain.EvaluationKind
	updated := word

	switch {
	case correct && !input.IsRetry:
		kind = domain.KindSuccess
		updated, err = s.store.UpdateStatus(ctx, input.Level, input.Word, domain.StatusCorrect)
	case correct:
		kind = domain.KindSuccess
	case !input.IsRetry:
		kind = domain.KindRetryWithCorrection
		updated, err = s.store.Update(ctx, input.Level, input.Word, func(w *domain.WordRecord) error {
			w.Status = domain.StatusIncorrect
			w.IncorrectCount++
			return nil
		})
	default:
		kind = domain.KindErrorWithCorrection
		var n int
		n, err = s.store.IncrementIncorrectCount(ctx, input.Level, input.Word)
		updated.IncorrectCount = n
	}

	saved := true
	if err != nil {
		if !errors.Is(err, domain.ErrStorageUnavailable) {
			return nil, fmt.Errorf("update word: %w", err)
		}
		saved = false
	}

	attempt := domain.Attempt{
		ID:             uuid.New(),
		Level:          input.Level,
		Word:           input.Word,
		Kind:           kind,
		UserAnswer:     input.Answer,
		Correct:        correct,
		Retry:          input.IsRetry,
		IncorrectCount: updated.IncorrectCount,
		UpdateSuccess:  saved,
		CreatedAt:      s.now(),
	}
	s.record(ctx, attempt)

	s.log.InfoContext(ctx, "answer evaluated",
		slog.String("level", input.Level),
		slog.String("word", input.Word.DisplayGerman()),
		slog.String("kind", string(kind)),
		slog.Bool("retry", input.IsRetry),
		slog.Int("incorrect_count", updated.IncorrectCount),
		slog.Bool("saved", saved),
	)

	return &Evaluation{
		Kind:    kind,
		Correct: correct,
		Message: answerMessage(kind, input.IsRetry, updated),
		Level:   input.Level,
		Word:    updated,
		Saved:   saved,
		Attempt: attempt,
	}, nil
}

func answerMessage(kind domain.EvaluationKind, retry bool, w domain.WordRecord) string {
	german := w.Identity().DisplayGerman()
	switch kind {
	case domain.KindSuccess:
		if retry {
			return fmt.Sprintf("Great! You got it right this time. %q is %s.", w.English, german)
		}
		return fmt.Sprintf("Correct! The word %q is %s.", w.English, german)
	case domain.KindRetryWithCorrection:
		return fmt.Sprintf("Incorrect. The correct answer is %q. Type it now, or suggest a correction if you think it is wrong.", german)
	default:
		return fmt.Sprintf("Still incorrect. The correct answer is %q. If you think this is wrong, you can suggest a correction.", german)
	}
}
