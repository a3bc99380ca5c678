package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Printer sends a standalone file to a printing facility.
type Printer interface {
	Print(ctx context.Context, file File) error
}

// PrinterFunc adapts a function to Printer.
type PrinterFunc func(ctx context.Context, file File) error

func (fn PrinterFunc) Print(ctx context.Context, file File) error {
	return fn(ctx, file)
}

// CommandPrinter writes the file to a temporary location and hands the path
// to a system command such as lp or lpr.
type CommandPrinter struct {
	// Command is the executable name or path. Empty means printing is
	// unavailable.
	Command string
	// Args precede the file path on the command line.
	Args []string
	// TempDir overrides the directory for the temporary file.
	TempDir string
}

// NewCommandPrinter builds a CommandPrinter from a whitespace separated
// command line, e.g. "lp -d office".
func NewCommandPrinter(commandLine string) *CommandPrinter {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return &CommandPrinter{}
	}
	return &CommandPrinter{Command: fields[0], Args: fields[1:]}
}

// Available reports whether the command resolves on this system.
func (p *CommandPrinter) Available() bool {
	if p == nil || p.Command == "" {
		return false
	}
	_, err := exec.LookPath(p.Command)
	return err == nil
}

// Print implements Printer.
func (p *CommandPrinter) Print(ctx context.Context, file File) error {
	if p == nil || p.Command == "" {
		return ErrPrintUnavailable
	}
	bin, err := exec.LookPath(p.Command)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPrintUnavailable, p.Command, err)
	}

	tmp, err := os.CreateTemp(p.TempDir, "rxpad-*.html")
	if err != nil {
		return fmt.Errorf("export: create print file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := file.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("export: write print file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("export: close print file: %w", err)
	}

	args := append(append([]string{}, p.Args...), tmp.Name())
	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(output.String())
		if msg != "" {
			return fmt.Errorf("export: %s failed: %w: %s", p.Command, err, msg)
		}
		return fmt.Errorf("export: %s failed: %w", p.Command, err)
	}
	return nil
}

// Print sends file to printer. When the printer is missing or fails, the file
// is saved to fallbackDir and a *FallbackError naming the path is returned. If
// saving also fails both errors are returned.
func Print(ctx context.Context, printer Printer, file File, fallbackDir string) error {
	var printErr error
	if printer == nil {
		printErr = ErrPrintUnavailable
	} else {
		printErr = printer.Print(ctx, file)
	}
	if printErr == nil {
		return nil
	}
	if ctx.Err() != nil {
		return printErr
	}

	path, err := file.Save(fallbackDir)
	if err != nil {
		return errors.Join(printErr, err)
	}
	return &FallbackError{Path: path, Err: printErr}
}

// FallbackError carries the path written when printing fell back to a file.
// It matches both ErrPrintFallback and the underlying print error.
type FallbackError struct {
	Path string
	Err  error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("%v: saved to %s (%v)", ErrPrintFallback, e.Path, e.Err)
}

func (e *FallbackError) Unwrap() []error {
	return []error{ErrPrintFallback, e.Err}
}
