package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Prompter reads console input line by line. Numeric prompts re-ask until the
// input parses; free-text prompts return the raw line so edit flows can treat
// empty input as "keep the current value". Once the input stream ends, every
// prompt returns its zero value, which backs out of each menu in turn.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	eof bool
}

// NewPrompter wires a prompter to the given streams.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Line prints the label and returns the trimmed input line. A read error or
// end of input marks the prompter exhausted.
func (p *Prompter) Line(label string) string {
	if p.eof {
		return ""
	}
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		p.eof = true
	}
	return strings.TrimSpace(line)
}

// Int re-prompts until the input is a valid integer, or 0 once input is
// exhausted.
func (p *Prompter) Int(label string) int {
	for {
		raw := p.Line(label)
		value, err := strconv.Atoi(raw)
		if err == nil {
			return value
		}
		if p.eof {
			return 0
		}
		fmt.Fprintln(p.out, "Entrée invalide, veuillez saisir un nombre.")
	}
}

// Float re-prompts until the input is a valid number, or 0 once input is
// exhausted.
func (p *Prompter) Float(label string) float64 {
	for {
		raw := p.Line(label)
		value, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return value
		}
		if p.eof {
			return 0
		}
		fmt.Fprintln(p.out, "Entrée invalide, veuillez saisir un nombre.")
	}
}

// OptionalInt returns (0, false) on empty input, otherwise re-prompts until
// the input parses.
func (p *Prompter) OptionalInt(label string) (int, bool) {
	for {
		raw := p.Line(label)
		if raw == "" {
			return 0, false
		}
		value, err := strconv.Atoi(raw)
		if err == nil {
			return value, true
		}
		fmt.Fprintln(p.out, "Entrée invalide, veuillez saisir un nombre ou laisser vide.")
	}
}

// OptionalFloat returns (0, false) on empty input.
func (p *Prompter) OptionalFloat(label string) (float64, bool) {
	for {
		raw := p.Line(label)
		if raw == "" {
			return 0, false
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return value, true
		}
		fmt.Fprintln(p.out, "Entrée invalide, veuillez saisir un nombre ou laisser vide.")
	}
}

// Confirm asks a oui/non question, defaulting to non.
func (p *Prompter) Confirm(label string) bool {
	answer := strings.ToLower(p.Line(label + " (o/N) : "))
	return answer == "o" || answer == "oui"
}

// Password reads a line without echo when stdin is a terminal, falling back
// to a plain read otherwise (piped input in tests and scripts).
func (p *Prompter) Password(label string) string {
	fmt.Fprint(p.out, label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(p.out)
		if err == nil {
			return strings.TrimSpace(string(raw))
		}
	}
	line, _ := p.in.ReadString('\n')
	return strings.TrimSpace(line)
}
