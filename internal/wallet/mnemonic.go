// Package wallet handles recovery-phrase input: BIP39 validation,
// normalization, typo suggestions, and seed derivation.
package wallet

import (
	"math"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	bip39 "github.com/tyler-smith/go-bip39"

	scouterr "github.com/nocturnelabs/adascout/pkg/errors"
)

var (
	// whitespaceRegex matches one or more whitespace characters.
	whitespaceRegex = regexp.MustCompile(`\s+`)

	// numberedListRegex matches numbered list prefixes like "1." "2)" "3:"
	numberedListRegex = regexp.MustCompile(`(?m)^\s*\d+[\.\)\:]\s*`)

	// bulletListRegex matches bullet prefixes like "- " "* " "• "
	bulletListRegex = regexp.MustCompile(`(?m)^\s*[-*•]\s*`)
)

// ValidateMnemonic checks if a recovery phrase is valid according to
// BIP39. It verifies word count, word validity, and checksum.
func ValidateMnemonic(mnemonic string) error {
	if mnemonic == "" {
		return scouterr.ErrInvalidMnemonic
	}

	normalized := NormalizeMnemonicInput(mnemonic)

	// Early exit: fast word count check before checksum validation.
	words := strings.Fields(normalized)
	switch len(words) {
	case 12, 15, 24:
	default:
		return scouterr.WithSuggestion(scouterr.ErrInvalidMnemonic,
			"recovery phrases have 12, 15 or 24 words")
	}

	if !bip39.IsMnemonicValid(normalized) {
		if hint := FormatTypoSuggestions(DetectTypos(normalized)); hint != "" {
			return scouterr.WithSuggestion(scouterr.ErrInvalidMnemonic, hint)
		}
		return scouterr.ErrInvalidMnemonic
	}

	return nil
}

// NormalizeMnemonicInput cleans pasted recovery-phrase input: lowercase,
// numbered-list and bullet prefixes removed, commas treated as spaces,
// whitespace collapsed.
func NormalizeMnemonicInput(input string) string {
	input = strings.ToLower(input)
	input = numberedListRegex.ReplaceAllString(input, " ")
	input = bulletListRegex.ReplaceAllString(input, " ")
	input = strings.ReplaceAll(input, ",", " ")
	input = whitespaceRegex.ReplaceAllString(input, " ")
	return strings.TrimSpace(input)
}

// MnemonicToSeed converts a recovery phrase to a 64-byte seed. The
// passphrase is optional. The returned seed should be zeroed after use.
func MnemonicToSeed(mnemonic, passphrase string) ([]byte, error) {
	normalized := NormalizeMnemonicInput(mnemonic)

	seed, err := bip39.NewSeedWithErrorChecking(normalized, passphrase)
	if err != nil {
		return nil, scouterr.ErrInvalidMnemonic
	}

	return seed, nil
}

// IsValidWord checks if a word is in the BIP39 word list.
func IsValidWord(word string) bool {
	word = strings.ToLower(word)
	for _, w := range bip39.GetWordList() {
		if w == word {
			return true
		}
	}
	return false
}

// MaxTypoDistance is the maximum Levenshtein distance to consider a
// suggestion. Words further away are too different to suggest.
const MaxTypoDistance = 2

// TypoInfo describes a detected typo and its suggested correction.
type TypoInfo struct {
	// Index is the word position in the phrase (0-based).
	Index int
	// Word is the original (possibly misspelled) word.
	Word string
	// Suggestion is the closest BIP39 word, or empty if none is close.
	Suggestion string
	// Distance is the Levenshtein distance to the suggestion.
	Distance int
}

// SuggestWord finds the closest BIP39 word to the input using Levenshtein
// distance. Returns empty string if nothing is within MaxTypoDistance.
func SuggestWord(input string) string {
	input = strings.ToLower(input)

	minDist := math.MaxInt
	var suggestion string

	for _, word := range bip39.GetWordList() {
		dist := levenshtein.ComputeDistance(input, word)
		if dist < minDist {
			minDist = dist
			suggestion = word
		}
		if dist == 0 {
			return word
		}
	}

	if minDist <= MaxTypoDistance {
		return suggestion
	}
	return ""
}

// DetectTypos scans a phrase and reports words outside the BIP39 word
// list together with suggested corrections.
func DetectTypos(mnemonic string) []TypoInfo {
	if mnemonic == "" {
		return nil
	}

	words := strings.Fields(NormalizeMnemonicInput(mnemonic))
	var typos []TypoInfo

	for i, word := range words {
		if IsValidWord(word) {
			continue
		}
		suggestion := SuggestWord(word)
		distance := 0
		if suggestion != "" {
			distance = levenshtein.ComputeDistance(word, suggestion)
		}
		typos = append(typos, TypoInfo{
			Index:      i,
			Word:       word,
			Suggestion: suggestion,
			Distance:   distance,
		})
	}

	return typos
}

// FormatTypoSuggestions renders typo information as human-readable lines.
func FormatTypoSuggestions(typos []TypoInfo) string {
	if len(typos) == 0 {
		return ""
	}

	var b strings.Builder
	for i, typo := range typos {
		if i > 0 {
			b.WriteByte('\n')
		}
		// Word position is 1-indexed for human readability
		b.WriteString("word ")
		b.WriteString(itoa(typo.Index + 1))
		b.WriteString(": '")
		b.WriteString(typo.Word)
		b.WriteByte('\'')
		if typo.Suggestion != "" {
			b.WriteString(" - did you mean '")
			b.WriteString(typo.Suggestion)
			b.WriteString("'?")
		} else {
			b.WriteString(" is not a valid BIP39 word")
		}
	}
	return b.String()
}

// ZeroBytes zeros out a byte slice holding sensitive material.
func ZeroBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// itoa converts an int to string without importing strconv.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + itoa(-n)
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
