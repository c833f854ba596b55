package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/atotto/clipboard"
)

// Overridable in tests.
var (
	writeSystemClipboard = clipboard.WriteAll
	systemClipboardOK    = func() bool { return !clipboard.Unsupported }
	openTerminal         = func() (io.WriteCloser, error) {
		return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	}
)

// CopyToClipboard places text on the clipboard and reports whether it succeeded.
// The OS clipboard is tried first; when that is unavailable the text is sent to the
// controlling terminal as an OSC 52 selection sequence. It never panics.
func CopyToClipboard(ctx context.Context, text string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[clipboard] copy aborted: %v", r)
			ok = false
		}
	}()

	if ctx.Err() != nil {
		return false
	}

	if systemClipboardOK() {
		err := writeSystemClipboard(text)
		if err == nil {
			return true
		}
		log.Printf("[clipboard] system clipboard failed: %v", err)
	}

	if ctx.Err() != nil {
		return false
	}

	if err := copyViaTerminal(text); err != nil {
		log.Printf("[clipboard] terminal fallback failed: %v", err)
		return false
	}
	return true
}

func copyViaTerminal(text string) (err error) {
	tty, err := openTerminal()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer func() {
		if closeErr := tty.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err := io.WriteString(tty, osc52(text)); err != nil {
		return fmt.Errorf("failed to write selection: %w", err)
	}
	return nil
}

// osc52 encodes text as a "set clipboard selection" terminal escape.
func osc52(text string) string {
	return "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte(text)) + "\a"
}
