package adapter

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mmcdole/cinelist/internal/validate"
)

// ErrNoPoster is returned when a movie has no openable poster URL
var ErrNoPoster = errors.New("movie has no valid poster URL")

// startFunc starts a process without waiting for it
type startFunc func(name string, args ...string) error

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Opener opens poster URLs in an external viewer
type Opener struct {
	command string   // configured viewer command, empty for system default
	args    []string // additional arguments for the viewer
	goos    string
	lookup  func(string) (string, error)
	start   startFunc
	logger  *slog.Logger
}

// NewOpener creates an Opener for the given viewer command
func NewOpener(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command: command,
		args:    args,
		goos:    runtime.GOOS,
		lookup:  exec.LookPath,
		start:   startCommand,
		logger:  logger,
	}
}

// Open launches url in the configured viewer or the system default handler
func (o *Opener) Open(url string) error {
	if !validate.IsAbsoluteURL(url) {
		return ErrNoPoster
	}
	url = strings.TrimSpace(url)

	name, args := o.commandFor(url)
	o.logger.Info("opening poster", "command", name, "args", args)
	if err := o.start(name, args...); err != nil {
		return fmt.Errorf("failed to open poster with %s: %w", name, err)
	}
	return nil
}

// commandFor resolves the process and arguments used to open url
func (o *Opener) commandFor(url string) (string, []string) {
	if o.command == "" {
		return defaultHandler(o.goos, url)
	}

	args := append([]string{}, o.args...)

	// GUI apps on macOS are often not in PATH
	if o.goos == "darwin" {
		if _, err := o.lookup(o.command); err != nil {
			cmdArgs := []string{"-a", o.command}
			if len(args) > 0 {
				cmdArgs = append(cmdArgs, "--args")
				cmdArgs = append(cmdArgs, args...)
			}
			return "open", append(cmdArgs, url)
		}
	}
	return o.command, append(args, url)
}

// defaultHandler returns the system URL handler invocation for goos
func defaultHandler(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		return "xdg-open", []string{url}
	}
}
