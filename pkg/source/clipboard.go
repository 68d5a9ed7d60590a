package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/jmylchreest/pasteclean/internal/logger"
)

// ClipboardConfig holds configuration for the clipboard source.
type ClipboardConfig struct {
	// HTMLCommand prints the clipboard's text/html flavor to stdout,
	// e.g. ["wl-paste", "-t", "text/html"]. Empty means DefaultHTMLCommand.
	HTMLCommand []string `json:"html_command" yaml:"html_command" mapstructure:"html_command"`

	// PlainOnly skips the rich flavor and reads plain text only.
	PlainOnly bool `json:"plain_only" yaml:"plain_only" mapstructure:"plain_only"`

	// Timeout bounds the HTML command.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// DefaultClipboardConfig returns sensible defaults.
func DefaultClipboardConfig() ClipboardConfig {
	return ClipboardConfig{
		Timeout: 5 * time.Second,
	}
}

// Clipboard reads the system clipboard. Plain text comes from the clipboard
// package; rich markup needs an external command because no portable API
// exposes the text/html flavor.
type Clipboard struct {
	config      ClipboardConfig
	unsupported bool
	readText    func() (string, error)
	lookPath    func(string) (string, error)
}

// NewClipboard creates a clipboard source.
func NewClipboard(cfg ClipboardConfig) *Clipboard {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultClipboardConfig().Timeout
	}
	return &Clipboard{
		config:      cfg,
		unsupported: clipboard.Unsupported,
		readText:    clipboard.ReadAll,
		lookPath:    exec.LookPath,
	}
}

// Read returns the clipboard's rich and plain flavors.
func (c *Clipboard) Read(ctx context.Context) (Content, error) {
	var content Content

	if !c.config.PlainOnly {
		html, err := c.readHTML(ctx)
		switch {
		case err == nil:
			content.HTML = html
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return Content{}, err
		default:
			logger.Debug("clipboard html flavor unavailable", "error", err)
		}
	}

	if c.unsupported {
		if content.HasHTML() {
			content.Text = TextOf(content.HTML)
			return content, nil
		}
		return Content{}, fmt.Errorf("clipboard: %w", ErrUnsupported)
	}

	text, err := c.readText()
	if err != nil && !content.HasHTML() {
		return Content{}, fmt.Errorf("reading clipboard: %w", err)
	}
	content.Text = text

	if content.Empty() {
		return Content{}, ErrUnavailable
	}
	return content, nil
}

// Name returns the source type.
func (c *Clipboard) Name() string {
	return "clipboard"
}

func (c *Clipboard) readHTML(ctx context.Context) (string, error) {
	argv := c.config.HTMLCommand
	if len(argv) == 0 {
		argv = DefaultHTMLCommand(c.lookPath)
	}
	if len(argv) == 0 {
		return "", ErrUnsupported
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("reading clipboard html", "command", strings.Join(argv, " "))
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(ctxErr, context.DeadlineExceeded) {
			return "", ctxErr
		}
		return "", fmt.Errorf("%s: %w: %s", argv[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// DefaultHTMLCommand picks a command that prints the clipboard's text/html
// flavor from the tools found by lookPath. It returns nil when none is
// available, which is always the case outside X11 and Wayland desktops.
func DefaultHTMLCommand(lookPath func(string) (string, error)) []string {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd", "netbsd":
		if _, err := lookPath("wl-paste"); err == nil {
			return []string{"wl-paste", "--no-newline", "-t", "text/html"}
		}
		if _, err := lookPath("xclip"); err == nil {
			return []string{"xclip", "-selection", "clipboard", "-t", "text/html", "-o"}
		}
	}
	return nil
}
