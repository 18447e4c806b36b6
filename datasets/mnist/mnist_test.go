package mnist

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/punchedcards/errors"
)

func writeGzip(t *testing.T, path string, data []byte) {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func idxImages(rows, cols int, images ...[]byte) []byte {
	var header [16]byte
	binary.BigEndian.PutUint32(header[0:], imagesMagic)
	binary.BigEndian.PutUint32(header[4:], uint32(len(images)))
	binary.BigEndian.PutUint32(header[8:], uint32(rows))
	binary.BigEndian.PutUint32(header[12:], uint32(cols))
	out := header[:]
	for _, img := range images {
		out = append(out, img...)
	}
	return out
}

func idxLabels(labels ...byte) []byte {
	var header [8]byte
	binary.BigEndian.PutUint32(header[0:], labelsMagic)
	binary.BigEndian.PutUint32(header[4:], uint32(len(labels)))
	return append(header[:], labels...)
}

func writeSet(t *testing.T, dir string) {
	t.Helper()
	writeGzip(t, filepath.Join(dir, trainSetImg), idxImages(2, 2,
		[]byte{0, 255, 127, 128},
		[]byte{200, 0, 0, 10},
	))
	writeGzip(t, filepath.Join(dir, trainSetVal), idxLabels(3, 9))
	writeGzip(t, filepath.Join(dir, inferSetImg), idxImages(2, 2, []byte{255, 255, 255, 255}))
	writeGzip(t, filepath.Join(dir, inferSetVal), idxLabels(0))
}

func TestSourceReadsAndBinarizes(t *testing.T) {
	dir := t.TempDir()
	writeSet(t, dir)

	src := New(dir)
	src.Checksums = nil

	train, err := src.ReadTrainingData()
	require.NoError(t, err)
	require.Len(t, train, 2)
	assert.Equal(t, "0101", train[0].Input)
	assert.Equal(t, "0011", train[0].Label)
	assert.Equal(t, "1000", train[1].Input)
	assert.Equal(t, "1001", train[1].Label)

	test, err := src.ReadTestData()
	require.NoError(t, err)
	require.Len(t, test, 1)
	assert.Equal(t, "1111", test[0].Input)
	assert.Equal(t, "0000", test[0].Label)

	assert.Equal(t, 10, src.LabelCount())
	assert.Equal(t, "0111", src.EncodeLabel(7))
}

func TestSourceThreshold(t *testing.T) {
	dir := t.TempDir()
	writeSet(t, dir)

	src := &Source{Directories: []string{dir}, Threshold: 10}
	train, err := src.ReadTrainingData()
	require.NoError(t, err)
	assert.Equal(t, "0111", train[0].Input)
	assert.Equal(t, "1001", train[1].Input)
}

func TestSourceChecksumMismatch(t *testing.T) {
	dir := t.TempDir()
	writeSet(t, dir)

	src := New(dir)
	_, err := src.ReadTrainingData()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCorruptData))
}

func TestSourceMissingFiles(t *testing.T) {
	src := &Source{Directories: []string{t.TempDir()}}
	_, err := src.ReadTestData()
	require.Error(t, err)
	assert.Contains(t, err.Error(), inferSetImg)
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestSourceCorruptHeaders(t *testing.T) {
	tests := []struct {
		name   string
		images []byte
		labels []byte
	}{
		{"short images", []byte{0, 0, 8}, idxLabels(1)},
		{"bad image magic", append([]byte{0, 0, 0, 1}, make([]byte, 12)...), idxLabels()},
		{"truncated pixels", idxImages(2, 2, []byte{1, 2, 3}), idxLabels(1)},
		{"bad label magic", idxImages(1, 1, []byte{1}), []byte{0, 0, 0, 1, 0, 0, 0, 1, 1}},
		{"count mismatch", idxImages(1, 1, []byte{1}), idxLabels(1, 2)},
		{"label out of range", idxImages(1, 1, []byte{1}), idxLabels(10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeGzip(t, filepath.Join(dir, trainSetImg), tt.images)
			writeGzip(t, filepath.Join(dir, trainSetVal), tt.labels)

			src := &Source{Directories: []string{dir}}
			_, err := src.ReadTrainingData()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCorruptData), "%v", err)
		})
	}
}

func TestNewSearchDirectories(t *testing.T) {
	assert.Equal(t, []string{"/data/", TmpDirectory}, New("/data/").Directories)
	assert.Equal(t, []string{TmpDirectory}, New("").Directories)
	assert.Equal(t, []string{TmpDirectory}, New(TmpDirectory).Directories)
}
