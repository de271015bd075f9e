package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrEmptyCommand indicates no editor command was configured.
var ErrEmptyCommand = errors.New("empty editor command")

// Process edits the buffer by running an editor command on a temporary file.
// The command is split on whitespace, so "code --wait" works as expected.
type Process struct {
	Command string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewProcess creates a Process attached to the terminal.
func NewProcess(command string) *Process {
	return &Process{
		Command: command,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Edit runs the editor and waits for it to exit.
func (p *Process) Edit(ctx context.Context, buffer string) (string, error) {
	args := strings.Fields(p.Command)
	if len(args) == 0 {
		return "", ErrEmptyCommand
	}
	if runtime.GOOS == "windows" {
		args = append([]string{"cmd", "/C"}, args...)
	}

	path, err := writeTemp(buffer)
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = p.Stdin
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr

	if err := cmd.Run(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("editor %q failed: %w", p.Command, err)
	}

	return readBack(path)
}
