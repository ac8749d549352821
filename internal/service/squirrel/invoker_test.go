package squirrel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFakeTool writes an executable shell script standing in for Squirrel.exe.
func writeFakeTool(t *testing.T, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake tool is a POSIX shell script")
	}

	path := filepath.Join(t.TempDir(), "Squirrel.exe")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755)) //nolint:gosec // Test executable.

	return path
}

// TestInvokeSuccess captures stdout and passes arguments through unchanged.
func TestInvokeSuccess(t *testing.T) {
	t.Parallel()

	tool := writeFakeTool(t, `printf '%s|' "$@"`)

	res, err := NewInvoker(tool).Invoke(context.Background(), []string{"pack", "--packTitle", "My App"})
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode)
	require.Equal(t, "pack|--packTitle|My App|", res.Stdout)
	require.Equal(t, []string{"pack", "--packTitle", "My App"}, res.Args)
}

// TestInvokeNonZeroExit turns a failing exit status into an InvocationError with stderr.
func TestInvokeNonZeroExit(t *testing.T) {
	t.Parallel()

	tool := writeFakeTool(t, `echo "pack directory not found" >&2; exit 3`)

	res, err := NewInvoker(tool).Invoke(context.Background(), []string{"pack"})
	require.ErrorIs(t, err, ErrInvocation)
	require.ErrorIs(t, err, errNonZeroExit)

	var invErr *InvocationError
	require.True(t, errors.As(err, &invErr))
	require.Equal(t, 3, invErr.ExitCode)
	require.Contains(t, invErr.Stderr, "pack directory not found")
	require.Contains(t, err.Error(), "pack directory not found")
	require.NotNil(t, res)
	require.Equal(t, 3, res.ExitCode)
}

// TestInvokeMissingTool reports a spawn failure with exit code -1.
func TestInvokeMissingTool(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "Squirrel.exe")

	res, err := NewInvoker(missing).Invoke(context.Background(), []string{"pack"})
	require.Nil(t, res)
	require.ErrorIs(t, err, ErrInvocation)

	var invErr *InvocationError
	require.True(t, errors.As(err, &invErr))
	require.Equal(t, -1, invErr.ExitCode)
}

// TestInvokeCanceledContext kills a long-running tool when the caller gives up.
func TestInvokeCanceledContext(t *testing.T) {
	t.Parallel()

	tool := writeFakeTool(t, `exec sleep 30`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewInvoker(tool).Invoke(ctx, nil)
	require.ErrorIs(t, err, ErrInvocation)
}

// TestNewInvokerDefaultTool falls back to Squirrel.exe.
func TestNewInvokerDefaultTool(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultTool, NewInvoker("").Tool())
}
