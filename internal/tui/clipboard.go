package tui

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoClipboard is returned when no clipboard command is configured or found.
var ErrNoClipboard = errors.New("no clipboard command available")

// copyToClipboard returns a command that copies text and reports the result.
func (m Model) copyToClipboard(text string) tea.Cmd {
	command := m.clipboardCmd
	return func() tea.Msg {
		return copyResultMsg{err: copyText(text, command)}
	}
}

// copyText copies text to the system clipboard.
func copyText(text, command string) error {
	cmd := detectClipboardCommand(command, exec.LookPath)
	if cmd == "" {
		return ErrNoClipboard
	}

	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return fmt.Errorf("invalid clipboard command %q", cmd)
	}

	// Execute with text as stdin
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := exec.CommandContext(ctx, parts[0], parts[1:]...)
	c.Stdin = strings.NewReader(text)

	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w", parts[0], err)
	}
	return nil
}

// detectClipboardCommand returns the clipboard command to use.
func detectClipboardCommand(configured string, lookPath func(string) (string, error)) string {
	if configured != "" {
		return configured
	}

	// Wayland
	if _, err := lookPath("wl-copy"); err == nil {
		return "wl-copy"
	}

	// X11
	if _, err := lookPath("xclip"); err == nil {
		return "xclip -selection clipboard"
	}
	if _, err := lookPath("xsel"); err == nil {
		return "xsel --clipboard --input"
	}

	// macOS
	if _, err := lookPath("pbcopy"); err == nil {
		return "pbcopy"
	}

	return ""
}
