package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/itsmostafa/reduceindex/internal/omh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sampleIn  = "$begin foo$$\n$section Vector Math$$\n$index vector, addition$$\nbody text\n$end\n"
	sampleOut = "$begin foo$$\n$section Vector Math$$\n$mindex addition$$\nbody text\n$end\n"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("REDUCEINDEX_WORKDIR_MARKER", "")
	t.Setenv("REDUCEINDEX_INDEX_COMMAND", "")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.omh")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readDoc(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestReduceRewritesFile(t *testing.T) {
	path := writeDoc(t, sampleIn)

	stdout, _, err := execute(t, "--workdir-marker=", path)
	require.NoError(t, err)

	assert.Equal(t, sampleOut, readDoc(t, path))
	assert.Contains(t, stdout, path)
	assert.Contains(t, stdout, "reduced")
	assert.Equal(t, 1, strings.Count(stdout, "\n"))
}

func TestReduceTwiceIsUnchanged(t *testing.T) {
	path := writeDoc(t, sampleIn)

	_, _, err := execute(t, "--workdir-marker=", path)
	require.NoError(t, err)

	stdout, _, err := execute(t, "--workdir-marker=", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "unchanged")
	assert.Equal(t, sampleOut, readDoc(t, path))
}

func TestReduceMalformedLeavesFileUntouched(t *testing.T) {
	in := "$begin ok$$\n$section A$$\n$index b$$\n$end\n$begin broken$$\n$index x$$\n"
	path := writeDoc(t, in)

	_, _, err := execute(t, "--workdir-marker=", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, omh.ErrUnterminated)
	assert.Contains(t, err.Error(), "broken")

	assert.Equal(t, in, readDoc(t, path))
}

func TestReduceInvocationErrors(t *testing.T) {
	path := writeDoc(t, sampleIn)

	t.Run("no arguments", func(t *testing.T) {
		_, _, err := execute(t, "--workdir-marker=")
		assert.Error(t, err)
	})

	t.Run("two arguments", func(t *testing.T) {
		_, _, err := execute(t, "--workdir-marker=", path, path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, "--workdir-marker=", filepath.Join(t.TempDir(), "nope.omh"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("directory", func(t *testing.T) {
		_, _, err := execute(t, "--workdir-marker=", t.TempDir())
		assert.Error(t, err)
	})

	t.Run("wrong working directory", func(t *testing.T) {
		_, _, err := execute(t, "--workdir-marker=no-such-marker-dir", path)
		assert.ErrorIs(t, err, ErrWrongWorkdir)
	})

	t.Run("missing explicit config", func(t *testing.T) {
		_, _, err := execute(t, "--workdir-marker=", "--config", filepath.Join(t.TempDir(), "none.yaml"), path)
		assert.Error(t, err)
	})

	t.Run("exclusive flags", func(t *testing.T) {
		_, _, err := execute(t, "--workdir-marker=", "--dry-run", "--check", path)
		assert.Error(t, err)
	})

	assert.Equal(t, sampleIn, readDoc(t, path))
}

func TestReduceDryRun(t *testing.T) {
	path := writeDoc(t, sampleIn)

	stdout, _, err := execute(t, "--workdir-marker=", "--dry-run", path)
	require.NoError(t, err)

	assert.Equal(t, sampleOut, stdout)
	assert.Equal(t, sampleIn, readDoc(t, path))
}

func TestReduceCheck(t *testing.T) {
	path := writeDoc(t, sampleIn)

	_, _, err := execute(t, "--workdir-marker=", "--check", path)
	assert.True(t, errors.Is(err, ErrWouldChange), "err = %v", err)
	assert.Equal(t, sampleIn, readDoc(t, path))

	reduced := writeDoc(t, sampleOut)
	stdout, _, err := execute(t, "--workdir-marker=", "--check", reduced)
	require.NoError(t, err)
	assert.Contains(t, stdout, "unchanged")
}

func TestReduceConfigFile(t *testing.T) {
	path := writeDoc(t, "$begin a$$\n$section A$$\n$mindex CppAD tape$$\n$end")
	cfgPath := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("extra_stopwords: [cppad]\nindex_command: cindex\nworkdir_marker: \"\"\n"), 0644))

	_, _, err := execute(t, "--config", cfgPath, path)
	require.NoError(t, err)

	assert.Equal(t, "$begin a$$\n$section A$$\n$cindex tape$$\n$end", readDoc(t, path))
}

func TestReduceVerbose(t *testing.T) {
	path := writeDoc(t, sampleIn)

	stdout, stderr, err := execute(t, "--workdir-marker=", "-v", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Sections:")
	assert.Contains(t, stderr, "reduced section")
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "reduceindex dev"), "stdout = %q", stdout)
}

func TestReduceWatch(t *testing.T) {
	path := writeDoc(t, sampleIn)
	cfgPath := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("workdir_marker: \"\"\nwatch:\n  debounce: 20ms\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Setenv("REDUCEINDEX_WORKDIR_MARKER", "")
	t.Setenv("REDUCEINDEX_INDEX_COMMAND", "")
	done := make(chan error, 1)
	go func() {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--config", cfgPath, "--watch", path})
		done <- cmd.ExecuteContext(ctx)
	}()

	waitForContent := func(want string) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			if data, err := os.ReadFile(path); err == nil && string(data) == want {
				return
			}
			time.Sleep(20 * time.Millisecond)
		}
		t.Fatalf("file never became %q", want)
	}

	// The initial run reduces the file before watching starts
	waitForContent(sampleOut)

	// Let the event from our own write settle
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(sampleIn), 0644))
	waitForContent(sampleOut)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch mode did not stop after cancel")
	}
}
