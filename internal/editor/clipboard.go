package editor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

// Clipboard round-trips the listing through the system clipboard for editors
// that cannot be launched from the terminal. The listing is copied, the user
// edits it anywhere and copies the result back, then presses Enter.
type Clipboard struct {
	In  io.Reader
	Out io.Writer

	write func(string) error
	read  func() (string, error)
}

// NewClipboard creates a Clipboard editor using the terminal for the prompt.
func NewClipboard() *Clipboard {
	return &Clipboard{
		In:    os.Stdin,
		Out:   os.Stderr,
		write: clipboard.WriteAll,
		read:  clipboard.ReadAll,
	}
}

// Edit copies buffer, waits for Enter and returns the clipboard contents.
func (c *Clipboard) Edit(ctx context.Context, buffer string) (string, error) {
	if err := c.write(buffer); err != nil {
		return "", fmt.Errorf("failed to copy listing to clipboard: %w", err)
	}

	_, _ = fmt.Fprintln(c.Out, "Listing copied to the clipboard. Edit it, copy the result, then press Enter.")

	lineRead := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(c.In).ReadString('\n')
		if err == io.EOF {
			err = nil
		}
		lineRead <- err
	}()

	select {
	case err := <-lineRead:
		if err != nil {
			return "", fmt.Errorf("failed to read confirmation: %w", err)
		}
	case <-ctx.Done():
		return "", ctx.Err()
	}

	text, err := c.read()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	return text, nil
}
