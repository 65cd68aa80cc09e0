// Package cli holds the terminal prompts used by the admin command line tools.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is replaced in tests to avoid touching the terminal.
var readPassword = term.ReadPassword

// ErrPasswordMismatch is returned when the confirmation differs from the password
var ErrPasswordMismatch = errors.New("passwords do not match")

// AskText prints a prompt to w and reads one trimmed line from reader.
// A final line without a newline is still returned.
func AskText(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskPassword reads a password without echo, then asks for it again.
func AskPassword(w io.Writer) (string, error) {
	first, err := askSecret(w, "Password")
	if err != nil {
		return "", err
	}
	second, err := askSecret(w, "Confirm password")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", ErrPasswordMismatch
	}
	return first, nil
}

func askSecret(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", prompt); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
