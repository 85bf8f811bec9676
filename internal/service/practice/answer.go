package practice

import "github.com/heartmarshall/deutsch-vocab/internal/domain"

// CheckAnswer reports whether answer matches the expected German word.
// Both sides are normalised (NFC, German lowercase, collapsed spaces).
// Accepted forms are the bare word, "<artikel> <word>" and
// "<word> <artikel>". When articlesMandatory is set and the word has an
// article, the bare form is rejected.
func CheckAnswer(answer, expected, artikel string, articlesMandatory bool) bool {
	ans := domain.NormalizeText(answer)
	exp := domain.NormalizeText(expected)
	if ans == "" || exp == "" {
		return false
	}

	art := domain.NormalizeText(artikel)
	if art != "" {
		if ans == art+" "+exp || ans == exp+" "+art {
			return true
		}
		if articlesMandatory {
			return false
		}
	}
	return ans == exp
}
