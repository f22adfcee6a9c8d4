package prompts

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter writes questions to out and reads answers from in
type Prompter struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompter creates a prompter on the given streams
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, reader: bufio.NewReader(in), out: out}
}

// stdio is used by the package-level helpers; prompts go to stderr so stdout stays machine-readable
var stdio = NewPrompter(os.Stdin, os.Stderr)

func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Ask prompts for a visible, trimmed answer
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	answer, err := p.readLine()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(answer), nil
}

// Password prompts for a password. Input is hidden when in is a terminal.
func (p *Prompter) Password() (string, error) {
	fmt.Fprint(p.out, "Password: ")

	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}

	password, err := p.readLine()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// Confirm asks the user to confirm an action that changes server state
func (p *Prompter) Confirm(action string) bool {
	fmt.Fprintf(p.out, "⚠ This will %s\nAre you sure? [y/N]: ", action)

	answer, err := p.readLine()
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// PromptUsername asks for a login on the terminal
func PromptUsername(label string) (string, error) {
	return stdio.Ask(label)
}

// PromptPassword asks for a hidden password on the terminal
func PromptPassword() (string, error) {
	return stdio.Password()
}

// Confirm asks for confirmation on the terminal
func Confirm(action string) bool {
	return stdio.Confirm(action)
}
