package practice

import (
	"strings"

	"github.com/heartmarshall/deutsch-vocab/internal/domain"
)

// NextWordInput holds the filters for picking the next practice word.
// Malformed filters are normalised rather than rejected.
type NextWordInput struct {
	Levels         []string
	DifficultyOnly bool
	// MinIncorrectCount > 0 selects words answered wrong at least that many
	// times, whatever their status. Zero or negative disables the filter.
	MinIncorrectCount int
}

// normalize trims and de-duplicates levels, falls back to the default
// level and clamps a negative minimum to zero.
func (i *NextWordInput) normalize(defaultLevel string) {
	seen := make(map[string]bool, len(i.Levels))
	levels := make([]string, 0, len(i.Levels))
	for _, l := range i.Levels {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		levels = append(levels, l)
	}
	if len(levels) == 0 {
		levels = []string{defaultLevel}
	}
	i.Levels = levels

	if i.MinIncorrectCount < 0 {
		i.MinIncorrectCount = 0
	}
}

// SubmitAnswerInput is one answer to a practice word. A non-empty
// Correction turns the submission into a correction.
type SubmitAnswerInput struct {
	Level   string
	Word    domain.Identity
	Answer  string
	IsRetry bool
	// ArticlesMandatory overrides the service default when set.
	ArticlesMandatory *bool
	Correction        *CorrectionPatch
}

// Validate checks all fields and collects all errors.
func (i *SubmitAnswerInput) Validate() error {
	errs := validateWordRef(i.Level, i.Word)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CorrectionPatch lists user-suggested replacements. Nil fields are left
// alone. Empty German or English values are ignored; an empty Artikel or
// Example clears the field.
type CorrectionPatch struct {
	German  *string
	English *string
	Artikel *string
	Example *string
}

// IsEmpty reports whether the patch carries no field at all.
func (p *CorrectionPatch) IsEmpty() bool {
	return p == nil || (p.German == nil && p.English == nil && p.Artikel == nil && p.Example == nil)
}

// CorrectionInput identifies a word and the corrections to apply.
type CorrectionInput struct {
	Level string
	Word  domain.Identity
	Patch CorrectionPatch
	// UserAnswer is the answer that led to the correction, if any.
	UserAnswer string
}

// Validate checks all fields and collects all errors.
func (i *CorrectionInput) Validate() error {
	errs := validateWordRef(i.Level, i.Word)
	if i.Patch.IsEmpty() {
		errs = append(errs, domain.FieldError{Field: "correction", Message: "at least one field required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// DifficultyInput sets or clears the "hard" flag of a word.
type DifficultyInput struct {
	Level string
	Word  domain.Identity
	Hard  bool
}

// Validate checks all fields and collects all errors.
func (i *DifficultyInput) Validate() error {
	errs := validateWordRef(i.Level, i.Word)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ResetScope selects what a reset clears.
type ResetScope string

const (
	// ResetScopeFull sets status to notyetanswered and zeroes counts.
	ResetScopeFull ResetScope = "full"
	// ResetScopeCounts only zeroes incorrect counts.
	ResetScopeCounts ResetScope = "counts"
)

func (s ResetScope) IsValid() bool {
	return s == ResetScopeFull || s == ResetScopeCounts
}

// ResetInput describes a reset of one level, or of every level when
// Level is empty and All is set.
type ResetInput struct {
	Level           string
	All             bool
	Scope           ResetScope
	ClearDifficulty bool
}

// Validate checks all fields and collects all errors. An empty scope means
// a full reset.
func (i *ResetInput) Validate() error {
	var errs []domain.FieldError

	if i.Scope == "" {
		i.Scope = ResetScopeFull
	}
	if !i.Scope.IsValid() {
		errs = append(errs, domain.FieldError{Field: "scope", Message: "must be full or counts"})
	}
	if !i.All && strings.TrimSpace(i.Level) == "" {
		errs = append(errs, domain.FieldError{Field: "level", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateWordRef(level string, id domain.Identity) []domain.FieldError {
	var errs []domain.FieldError
	if strings.TrimSpace(level) == "" {
		errs = append(errs, domain.FieldError{Field: "level", Message: "required"})
	}
	if strings.TrimSpace(id.Deutsch) == "" {
		errs = append(errs, domain.FieldError{Field: "deutsch", Message: "required"})
	}
	if strings.TrimSpace(id.English) == "" {
		errs = append(errs, domain.FieldError{Field: "english", Message: "required"})
	}
	return errs
}
