package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// linePrompter asks yes/no questions on a line-oriented terminal. Anything
// other than y or yes, including end of input, is a no.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

// Confirm prints question and reads the answer.
func (p *linePrompter) Confirm(question string) (bool, error) {
	_, _ = fmt.Fprintf(p.out, "%s [y/N] ", question)

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	if errors.Is(err, io.EOF) && line == "" {
		_, _ = fmt.Fprintln(p.out)
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
