package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"greenbutton/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with a temporary config file
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.DefaultConfig()
	cfg.Log.Level = "error"
	cfg.Export.SQLitePath = filepath.Join(t.TempDir(), "runs.db")
	require.NoError(t, cfg.Save(cfgPath))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func fixture(name string) string {
	return filepath.Join("..", "..", "testdata", name)
}

func TestParseCommandText(t *testing.T) {
	out, err := run(t, "parse", fixture("gas_direct.xml"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "UsagePoint (1 MAIN ST, ANYTOWN ME 12345) Service: GAS (1) Meter Reading () Energy:\n"))
	assert.Contains(t, out, "40 therm($55.1)")
}

func TestParseCommandJSONToFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.json")
	_, err := run(t, "parse", "--format", "json", "-o", target, fixture("electric_containerized.xml"))
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"service_kind": "ELECTRICITY"`)
}

type failingCloser struct {
	bytes.Buffer
	err    error
	closed bool
}

func (c *failingCloser) Close() error {
	c.closed = true
	return c.err
}

func TestWriteAndCloseReportsCloseError(t *testing.T) {
	errDisk := errors.New("disk full")
	write := func(w io.Writer) error {
		_, err := io.WriteString(w, "listing")
		return err
	}

	wc := &failingCloser{err: errDisk}
	err := writeAndClose(wc, "out.txt", write)
	assert.ErrorIs(t, err, errDisk)
	assert.Contains(t, err.Error(), "out.txt")
	assert.True(t, wc.closed)
	assert.Equal(t, "listing", wc.String())

	// the export error wins over the close error
	errExport := errors.New("not scalable")
	wc = &failingCloser{err: errDisk}
	err = writeAndClose(wc, "out.txt", func(io.Writer) error { return errExport })
	assert.ErrorIs(t, err, errExport)
	assert.NotErrorIs(t, err, errDisk)
	assert.True(t, wc.closed)

	wc = &failingCloser{}
	require.NoError(t, writeAndClose(wc, "out.txt", write))
	assert.True(t, wc.closed)
}

func TestParseCommandRejectPolicy(t *testing.T) {
	_, err := run(t, "parse", "--policy", "reject", fixture("gas_containerized.xml"))
	assert.Error(t, err)

	_, err = run(t, "parse", "--policy", "guess", fixture("gas_containerized.xml"))
	assert.Error(t, err)
}

func TestParseCommandBadLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "parse", fixture("gas_direct.xml"))
	assert.Error(t, err)
}

func TestExportAndRunsCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "feeds.db")

	out, err := run(t, "export", "--db", db, fixture("gas_direct.xml"), fixture("electric_containerized.xml"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "gas_direct.xml")

	out, err = run(t, "runs", "--db", db)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)
	assert.Contains(t, out, "electric_containerized.xml")
}
