package squirrel

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/oshokin/squirrel-maker/internal/logger"
)

// DefaultTool is the executable name looked up on PATH.
const DefaultTool = "Squirrel.exe"

// Result describes a finished tool run.
type Result struct {
	// Tool is the resolved executable path.
	Tool string
	// Args is the argument list the tool was started with.
	Args []string
	// ExitCode is the tool's exit status.
	ExitCode int
	// Stdout is the captured standard output.
	Stdout string
	// Stderr is the captured standard error.
	Stderr string
	// Duration is the wall time of the run.
	Duration time.Duration
}

// Invoker runs the Squirrel executable.
type Invoker struct {
	// tool is the executable name or path.
	tool string
}

// NewInvoker creates an invoker for tool; an empty name means DefaultTool.
func NewInvoker(tool string) *Invoker {
	if tool == "" {
		tool = DefaultTool
	}

	return &Invoker{tool: tool}
}

// Tool returns the configured executable name or path.
func (i *Invoker) Tool() string {
	return i.tool
}

// Invoke starts the tool with args and blocks until it exits.
//
// There is no internal timeout; cancel ctx to kill the child. A spawn failure
// or a non-zero exit is returned as *InvocationError together with whatever
// Result is available.
func (i *Invoker) Invoke(ctx context.Context, args []string) (*Result, error) {
	path, err := exec.LookPath(i.tool)
	if err != nil {
		return nil, &InvocationError{
			Tool:     i.tool,
			Args:     slices.Clone(args),
			ExitCode: -1,
			Err:      fmt.Errorf("look up executable: %w", err),
		}
	}

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.DebugKV(ctx, "Starting Squirrel", "command", CommandLine(path, args))

	started := time.Now()
	runErr := cmd.Run()

	result := &Result{
		Tool:     path,
		Args:     slices.Clone(args),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(started),
	}

	logLines(ctx, "stdout", result.Stdout)
	logLines(ctx, "stderr", result.Stderr)

	if runErr == nil {
		return result, nil
	}

	result.ExitCode = -1

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		runErr = fmt.Errorf("%w: %w", errNonZeroExit, runErr)
	}

	return result, &InvocationError{
		Tool:     path,
		Args:     result.Args,
		ExitCode: result.ExitCode,
		Stderr:   result.Stderr,
		Err:      runErr,
	}
}

// logLines writes each non-blank line of tool output at debug level.
func logLines(ctx context.Context, stream, output string) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		logger.DebugKV(ctx, line, "stream", stream)
	}
}
