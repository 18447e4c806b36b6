package main

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/punchedcards/errors"
	"github.com/neurlang/punchedcards/trainer"
)

func TestMain(m *testing.M) {
	pterm.DisableColor()
	os.Exit(m.Run())
}

func writeGzip(t *testing.T, path string, data []byte) {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func idx(magic uint32, dims []uint32, body []byte) []byte {
	var out = binary.BigEndian.AppendUint32(nil, magic)
	for _, d := range dims {
		out = binary.BigEndian.AppendUint32(out, d)
	}
	return append(out, body...)
}

// writeDigits writes a tiny 2x2 pixel MNIST set into dir.
func writeDigits(t *testing.T, dir string) {
	t.Helper()
	writeGzip(t, filepath.Join(dir, "train-images-idx3-ubyte.gz"), idx(2051, []uint32{4, 2, 2}, []byte{
		255, 255, 0, 0,
		255, 200, 0, 0,
		0, 0, 255, 255,
		0, 0, 200, 255,
	}))
	writeGzip(t, filepath.Join(dir, "train-labels-idx1-ubyte.gz"), idx(2049, []uint32{4}, []byte{0, 0, 1, 1}))
	writeGzip(t, filepath.Join(dir, "t10k-images-idx3-ubyte.gz"), idx(2051, []uint32{2, 2, 2}, []byte{
		255, 255, 0, 0,
		0, 0, 255, 255,
	}))
	writeGzip(t, filepath.Join(dir, "t10k-labels-idx1-ubyte.gz"), idx(2049, []uint32{2}, []byte{0, 1}))
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "punchedcards.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

const testConfig = `
workers = 1

[data]
verify_checksums = false

[sweep]
bit_lengths = [2]
`

func TestRunNoWait(t *testing.T) {
	dir := t.TempDir()
	writeDigits(t, dir)
	path := writeConfig(t, dir, testConfig)

	out, err := execute(t, "", "--config", path, "--data-dir", dir, "--no-wait")
	require.NoError(t, err)
	assert.Contains(t, out, "Punched card bit length: 2")
	assert.Contains(t, out, "Unique lookup combinations per punched card (descending):")
	assert.Contains(t, out, "correct recognitions of 4")
	assert.Contains(t, out, "correct recognitions of 2")
	assert.NotContains(t, out, "Press \"Enter\"")
}

func TestRunWaitsForEnter(t *testing.T) {
	dir := t.TempDir()
	writeDigits(t, dir)
	path := writeConfig(t, dir, testConfig)

	out, err := execute(t, "\n", "--config", path, "--data-dir", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), `Press "Enter" to exit the program...`), out)
}

func TestRunRejectsCorruptData(t *testing.T) {
	dir := t.TempDir()
	writeDigits(t, dir)
	path := writeConfig(t, dir, "[sweep]\nbit_lengths = [2]\n")

	// the synthetic files do not match the published digests
	_, err := execute(t, "", "--config", path, "--data-dir", dir, "--no-wait")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCorruptData), "%v", err)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[sweep]\ntop_count = 0\n")

	_, err := execute(t, "", "--config", path, "--no-wait")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, trainer.Report{BitLength: 64, Err: errors.New("boom")})
	assert.Contains(t, buf.String(), "Punched card bit length: 64")
	assert.Contains(t, buf.String(), "Failed: boom")
	assert.NotContains(t, buf.String(), "Training results")

	buf.Reset()
	printReport(&buf, trainer.Report{BitLength: 8, GlobalTopKey: "3", TrainCorrect: 5, TrainTotal: 9, TestCorrect: 1, TestTotal: 2})
	assert.Contains(t, buf.String(), "Training results: 5 correct recognitions of 9")
	assert.Contains(t, buf.String(), "Test results: 1 correct recognitions of 2")
	assert.Contains(t, buf.String(), "global top card 3")
}
