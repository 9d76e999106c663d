package wallet

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scouterr "github.com/nocturnelabs/adascout/pkg/errors"
)

// BIP39 test vectors from https://github.com/trezor/python-mnemonic/blob/master/vectors.json
// (passphrase "TREZOR").
//
//nolint:gochecknoglobals // BIP39 test vectors from official specification
var bip39TestVectors = []struct {
	mnemonic string
	seed     string
}{
	{
		mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
		seed:     "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04",
	},
	{
		mnemonic: "legal winner thank year wave sausage worth useful legal winner thank yellow",
		seed:     "2e8905819b8723fe2c1d161860e5ee1830318dbf49a83bd451cfb8440c28bd6fa457fe1296106559a3c80937a1c1069be3a3a5bd381ee6260e8d9739fce1f607",
	},
	{
		mnemonic: "zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo wrong",
		seed:     "0cd6e5d827bb62eb8fc1e262254223817fd068a74b5b449cc2f667c3f1f985a76379b43348d952e2265b4cd129090758b3e3c2c49103b5051aac2eaeb890a528",
	},
	{
		mnemonic: "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art",
		seed:     "bda85446c68413707090a52022edd26a1c9462295029f2e60cd7c4f2bbd3097170af7a4d73245cafa9c3cca8d561a7c3de6f5d4a10be8ed2a5e608d68f92fcc8",
	},
}

func TestValidateMnemonicAcceptsVectors(t *testing.T) {
	t.Parallel()

	for _, tc := range bip39TestVectors {
		require.NoError(t, ValidateMnemonic(tc.mnemonic))
	}
}

func TestValidateMnemonicRejectsEmpty(t *testing.T) {
	t.Parallel()

	err := ValidateMnemonic("")
	require.Error(t, err)
	assert.ErrorIs(t, err, scouterr.ErrInvalidMnemonic)
}

func TestValidateMnemonicRejectsWrongWordCount(t *testing.T) {
	t.Parallel()

	err := ValidateMnemonic("abandon abandon abandon")
	require.Error(t, err)
	assert.ErrorIs(t, err, scouterr.ErrInvalidMnemonic)

	var se *scouterr.ScoutError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Suggestion, "12, 15 or 24")
}

func TestValidateMnemonicRejectsBadChecksum(t *testing.T) {
	t.Parallel()

	// Valid words, invalid checksum
	err := ValidateMnemonic("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon")
	require.Error(t, err)
	assert.ErrorIs(t, err, scouterr.ErrInvalidMnemonic)
}

func TestValidateMnemonicSuggestsTypoFixes(t *testing.T) {
	t.Parallel()

	err := ValidateMnemonic("abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abuot")
	require.Error(t, err)

	var se *scouterr.ScoutError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Suggestion, "about")
}

func TestNormalizeMnemonicInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "legal winner thank", want: "legal winner thank"},
		{name: "uppercase", input: "LEGAL Winner THANK", want: "legal winner thank"},
		{name: "extra whitespace", input: "  legal \t winner\n thank  ", want: "legal winner thank"},
		{name: "commas", input: "legal,winner, thank", want: "legal winner thank"},
		{name: "numbered list", input: "1. legal\n2. winner\n3. thank", want: "legal winner thank"},
		{name: "numbered with parens", input: "1) legal\n2) winner\n3) thank", want: "legal winner thank"},
		{name: "bullets", input: "- legal\n* winner\n• thank", want: "legal winner thank"},
		{name: "empty", input: "", want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, NormalizeMnemonicInput(tc.input))
		})
	}
}

func TestMnemonicToSeedVectors(t *testing.T) {
	t.Parallel()

	for _, tc := range bip39TestVectors {
		seed, err := MnemonicToSeed(tc.mnemonic, "TREZOR")
		require.NoError(t, err)
		assert.Equal(t, tc.seed, hex.EncodeToString(seed))
	}
}

func TestMnemonicToSeedRejectsInvalid(t *testing.T) {
	t.Parallel()

	_, err := MnemonicToSeed("not a valid phrase", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, scouterr.ErrInvalidMnemonic)
}

func TestMnemonicToSeedPassphraseChangesSeed(t *testing.T) {
	t.Parallel()

	mnemonic := bip39TestVectors[0].mnemonic

	plain, err := MnemonicToSeed(mnemonic, "")
	require.NoError(t, err)
	withPass, err := MnemonicToSeed(mnemonic, "TREZOR")
	require.NoError(t, err)

	assert.NotEqual(t, plain, withPass)
}

func TestIsValidWord(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidWord("abandon"))
	assert.True(t, IsValidWord("ZOO"))
	assert.False(t, IsValidWord("abandonn"))
	assert.False(t, IsValidWord(""))
}

func TestSuggestWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "abandon", want: "abandon"}, // exact match
		{input: "abandn", want: "abandon"},
		{input: "abuot", want: "about"},
		{input: "zzzzzzzz", want: ""}, // nothing close enough
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, SuggestWord(tc.input), "input %q", tc.input)
	}
}

func TestDetectTypos(t *testing.T) {
	t.Parallel()

	typos := DetectTypos("abandon abuot zebra")
	require.Len(t, typos, 1)
	assert.Equal(t, 1, typos[0].Index)
	assert.Equal(t, "abuot", typos[0].Word)
	assert.Equal(t, "about", typos[0].Suggestion)
	assert.Positive(t, typos[0].Distance)

	assert.Empty(t, DetectTypos("abandon zebra zoo"))
	assert.Empty(t, DetectTypos(""))
}

func TestFormatTypoSuggestions(t *testing.T) {
	t.Parallel()

	out := FormatTypoSuggestions([]TypoInfo{
		{Index: 1, Word: "abuot", Suggestion: "about", Distance: 2},
		{Index: 4, Word: "xyzzy", Suggestion: "", Distance: 0},
	})

	assert.Contains(t, out, "word 2: 'abuot' - did you mean 'about'?")
	assert.Contains(t, out, "word 5: 'xyzzy' is not a valid BIP39 word")

	assert.Empty(t, FormatTypoSuggestions(nil))
}

func TestZeroBytes(t *testing.T) {
	t.Parallel()

	data := []byte{0x01, 0x02, 0x03}
	ZeroBytes(data)
	assert.Equal(t, []byte{0x00, 0x00, 0x00}, data)
}
