package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/neovim/go-client/nvim"
)

// ErrNoRemote indicates no running Neovim could be found.
var ErrNoRemote = errors.New("no Neovim server address in $NVIM or $NVIM_LISTEN_ADDRESS")

// doneMethod is the RPC notification Neovim sends once the listing window
// is closed.
const doneMethod = "rnbuf_edit_done"

// Remote edits the buffer in a new tab of a running Neovim and waits until
// the user closes that window. Typical use is from a :terminal inside Neovim,
// where $NVIM points back at the editor.
type Remote struct {
	Address string
}

// RemoteAddress returns the address of the surrounding Neovim, if any.
func RemoteAddress(getenv func(string) string) (string, error) {
	for _, name := range []string{"NVIM", "NVIM_LISTEN_ADDRESS"} {
		if addr := getenv(name); addr != "" {
			return addr, nil
		}
	}
	return "", ErrNoRemote
}

// Edit opens the listing in Neovim and blocks until its window is closed or
// ctx is cancelled.
func (r *Remote) Edit(ctx context.Context, buffer string) (string, error) {
	v, err := nvim.Dial(r.Address)
	if err != nil {
		return "", fmt.Errorf("failed to connect to Neovim at %s: %w", r.Address, err)
	}
	defer func() {
		_ = v.Close()
	}()

	done := make(chan struct{}, 1)
	err = v.RegisterHandler(doneMethod, func() {
		select {
		case done <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return "", fmt.Errorf("failed to register Neovim handler: %w", err)
	}

	path, err := writeTemp(buffer)
	if err != nil {
		return "", err
	}

	if err := r.open(v, path); err != nil {
		_ = readBackDiscard(path)
		return "", err
	}

	select {
	case <-done:
	case <-ctx.Done():
		_ = readBackDiscard(path)
		return "", ctx.Err()
	}

	return readBack(path)
}

// open shows path in a new tab and arranges for a notification when the
// window showing it goes away.
func (r *Remote) open(v *nvim.Nvim, path string) error {
	var escaped string
	if err := v.Call("fnameescape", &escaped, path); err != nil {
		return fmt.Errorf("failed to escape file name: %w", err)
	}

	b := v.NewBatch()
	b.Command("tabedit " + escaped)
	b.Command(fmt.Sprintf("autocmd BufWinLeave,BufUnload <buffer> ++once call rpcnotify(%d, '%s')",
		v.ChannelID(), doneMethod))
	if err := b.Execute(); err != nil {
		return fmt.Errorf("failed to open listing in Neovim: %w", err)
	}
	return nil
}

// readBackDiscard removes the temporary file without reading it.
func readBackDiscard(path string) error {
	_, err := readBack(path)
	return err
}
