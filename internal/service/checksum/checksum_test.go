package checksum

import (
	"crypto/sha512"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFileMatchesSHA512 compares the streamed digest with a one-shot sum.
func TestFileMatchesSHA512(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Setup.exe")
	contents := []byte("MZ fake installer")
	require.NoError(t, os.WriteFile(path, contents, 0o600))

	want := sha512.Sum512(contents)

	got, err := File(path)
	require.NoError(t, err)
	require.Equal(t, want[:], got)

	decoded, err := Decode(Encode(got))
	require.NoError(t, err)
	require.Equal(t, got, decoded)
}

// TestFilesReportsMissing fails on the first unreadable path.
func TestFilesReportsMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ok := filepath.Join(dir, "RELEASES")
	require.NoError(t, os.WriteFile(ok, []byte("x"), 0o600))

	sums, err := Files([]string{ok})
	require.NoError(t, err)
	require.Len(t, sums, 1)
	require.NotEmpty(t, sums[ok])

	_, err = Files([]string{ok, filepath.Join(dir, "missing.nupkg")})
	require.ErrorIs(t, err, os.ErrNotExist)
}
