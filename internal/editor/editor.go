// Package editor hands resolved note files to the user's editor and runs the
// configured post-navigation hook. It is the boundary to the environment that
// actually displays a note once the core has decided which file that is.
package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Editor launches an external command on note files.
type Editor struct {
	command string // e.g. "emacsclient -n" or "vim"; falls back to $EDITOR
	hook    string // shell command run after landing on a note; may be empty
}

// New creates an Editor. Both command and hook may be empty.
func New(command, hook string) *Editor {
	return &Editor{command: command, hook: hook}
}

// Open runs the editor command with path appended, attached to the caller's
// terminal, and blocks until it exits.
func (e *Editor) Open(ctx context.Context, path string) error {
	command := e.command
	if command == "" {
		command = os.Getenv("EDITOR")
	}
	if command == "" {
		return fmt.Errorf("editor: no editor command configured and $EDITOR is unset")
	}
	argv := append(strings.Fields(command), path)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor: run %s: %w", argv[0], err)
	}
	return nil
}

// RunHook executes the post-navigation hook, if one is configured.
// The hook receives no arguments.
func (e *Editor) RunHook(ctx context.Context) error {
	if e.hook == "" {
		return nil
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", e.hook)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor: post-navigation hook: %w", err)
	}
	return nil
}
