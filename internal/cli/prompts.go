package cli

import (
	"bufio"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/nocturnelabs/adascout/internal/wallet"
	scouterr "github.com/nocturnelabs/adascout/pkg/errors"
)

// promptPassword prompts for a password with hidden input.
// The caller is responsible for zeroing the returned bytes after use.
func promptPassword(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)

	password, err := term.ReadPassword(syscall.Stdin)
	outln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	return password, nil
}

// promptPassphrase prompts for an optional BIP39 passphrase.
func promptPassphrase() (string, error) {
	outln(os.Stderr, "\nBIP39 Passphrase:")
	outln(os.Stderr, "Note: only needed if the wallet was created with one.")

	passphrase, err := promptPassword("Enter passphrase (or press Enter for none): ")
	if err != nil {
		return "", err
	}

	result := string(passphrase)
	wallet.ZeroBytes(passphrase)
	return result, nil
}

// promptMnemonicInteractive prompts for a recovery phrase on one line.
func promptMnemonicInteractive() (string, error) {
	out(os.Stderr, "Enter recovery phrase (all words on one line): ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", scouterr.WithSuggestion(scouterr.ErrInvalidInput, "no input provided")
	}

	normalized := wallet.NormalizeMnemonicInput(line)
	if normalized == "" {
		return "", scouterr.WithSuggestion(scouterr.ErrInvalidInput, "no input provided")
	}
	return normalized, nil
}
