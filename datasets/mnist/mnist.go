// Package mnist loads the MNIST handwritten digits as binarized punched card inputs.
package mnist

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/neurlang/punchedcards/datasets"
	"github.com/neurlang/punchedcards/errors"
	"github.com/neurlang/punchedcards/logger"
)

const TmpDirectory = `/tmp/mnist/`

const inferSetImg = "t10k-images-idx3-ubyte.gz"
const inferSetVal = "t10k-labels-idx1-ubyte.gz"
const trainSetImg = "train-images-idx3-ubyte.gz"
const trainSetVal = "train-labels-idx1-ubyte.gz"

// Checksums are the sha256 digests of the published MNIST files.
var Checksums = map[string]string{
	inferSetImg: "8d422c7b0a1c1c79245a5bcf07fe86e33eeafee792b84584aec276f5a2dbc4e6",
	inferSetVal: "f7ae60f92e00ec6debd23a6088c31dbd2371eca3ffa0defaefb259924204aec6",
	trainSetImg: "440fcabf73cc546fa21475e81ea370265605f56be210a4024d2ca8f203523609",
	trainSetVal: "3552534a0a558bbed6aed32b30c495cca23d567ec52cac8be1a0730e8010255c",
}

const imagesMagic = 2051
const labelsMagic = 2049

// Classes is the number of digits.
const Classes = 10

// DefaultThreshold binarizes pixels at half intensity.
const DefaultThreshold = 128

// Source reads MNIST from the first search directory holding a file.
type Source struct {
	Directories []string
	// Threshold is the minimal pixel intensity read as '1'
	Threshold byte
	// Checksums maps file names to sha256 digests, nil skips verification
	Checksums map[string]string

	once [2]sync.Once
	sets [2][]datasets.Item
	errs [2]error
}

// New creates a source searching dir, then TmpDirectory.
func New(dir string) *Source {
	var dirs []string
	if dir != "" {
		dirs = append(dirs, dir)
	}
	if dir != TmpDirectory {
		dirs = append(dirs, TmpDirectory)
	}
	return &Source{
		Directories: dirs,
		Threshold:   DefaultThreshold,
		Checksums:   Checksums,
	}
}

func (s *Source) ReadTrainingData() ([]datasets.Item, error) {
	return s.read(0, trainSetImg, trainSetVal)
}

func (s *Source) ReadTestData() ([]datasets.Item, error) {
	return s.read(1, inferSetImg, inferSetVal)
}

func (s *Source) LabelCount() int {
	return Classes
}

func (s *Source) EncodeLabel(i int) string {
	return datasets.EncodeLabel(i, Classes)
}

func (s *Source) read(n int, imgName, valName string) ([]datasets.Item, error) {
	s.once[n].Do(func() {
		s.sets[n], s.errs[n] = s.load(imgName, valName)
	})
	return s.sets[n], s.errs[n]
}

func (s *Source) load(imgName, valName string) ([]datasets.Item, error) {
	log := logger.ComponentLogger("mnist")

	images, err := s.readFile(imgName)
	if err != nil {
		return nil, err
	}
	labels, err := s.readFile(valName)
	if err != nil {
		return nil, err
	}

	pixels, size, err := parseImages(images)
	if err != nil {
		return nil, errors.Wrapf(err, "file '%s'", imgName)
	}
	values, err := parseLabels(labels)
	if err != nil {
		return nil, errors.Wrapf(err, "file '%s'", valName)
	}
	if len(pixels) != len(values) {
		return nil, errors.Wrapf(errors.ErrCorruptData, "%d images but %d labels", len(pixels), len(values))
	}

	var threshold = s.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	var items = make([]datasets.Item, len(pixels))
	var buf = make([]byte, size)
	for i := range items {
		for j, v := range pixels[i] {
			if v >= threshold {
				buf[j] = '1'
			} else {
				buf[j] = '0'
			}
		}
		if int(values[i]) >= Classes {
			return nil, errors.Wrapf(errors.ErrCorruptData, "label %d of item %d", values[i], i)
		}
		items[i] = datasets.Item{
			Input: string(buf),
			Label: datasets.EncodeLabel(int(values[i]), Classes),
		}
	}

	log.Infow("Loaded dataset", logger.FieldFile, imgName, logger.FieldCount, len(items))
	return items, nil
}

// readFile finds name in the search directories, checks its digest and ungzips it.
func (s *Source) readFile(name string) ([]byte, error) {
	var lastErr error = errors.Newf("file '%s' not found", name)
	for _, dir := range s.Directories {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if !os.IsNotExist(err) {
				lastErr = errors.Wrapf(err, "checking if file '%s' exists", path)
			}
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "reading file '%s'", path)
		}
		if want, ok := s.Checksums[name]; ok {
			if got := fmt.Sprintf("%x", sha256.Sum256(data)); got != want {
				return nil, errors.Wrapf(errors.ErrCorruptData, "file hash for file '%s' is %s", path, got)
			}
		}
		gzipReader, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrapf(err, "gzip file '%s'", path)
		}
		defer gzipReader.Close()
		uncompressed, err := io.ReadAll(gzipReader)
		if err != nil {
			return nil, errors.Wrapf(err, "buffering file '%s'", path)
		}
		return uncompressed, nil
	}
	return nil, errors.WithHintf(lastErr,
		"download the MNIST gzip files into one of %v", s.Directories)
}

// parseImages decodes an idx3 file into one pixel slice per image.
func parseImages(data []byte) (images [][]byte, size int, err error) {
	if len(data) < 16 {
		return nil, 0, errors.Wrap(errors.ErrCorruptData, "short images header")
	}
	if magic := binary.BigEndian.Uint32(data[0:]); magic != imagesMagic {
		return nil, 0, errors.Wrapf(errors.ErrCorruptData, "images magic %d", magic)
	}
	var count = int(binary.BigEndian.Uint32(data[4:]))
	var rows = int(binary.BigEndian.Uint32(data[8:]))
	var cols = int(binary.BigEndian.Uint32(data[12:]))
	size = rows * cols
	data = data[16:]
	if len(data) != count*size {
		return nil, 0, errors.Wrapf(errors.ErrCorruptData, "%d bytes of pixels for %d images of %dx%d", len(data), count, rows, cols)
	}
	images = make([][]byte, count)
	for i := range images {
		images[i] = data[i*size : (i+1)*size]
	}
	return images, size, nil
}

// parseLabels decodes an idx1 file.
func parseLabels(data []byte) ([]byte, error) {
	if len(data) < 8 {
		return nil, errors.Wrap(errors.ErrCorruptData, "short labels header")
	}
	if magic := binary.BigEndian.Uint32(data[0:]); magic != labelsMagic {
		return nil, errors.Wrapf(errors.ErrCorruptData, "labels magic %d", magic)
	}
	var count = int(binary.BigEndian.Uint32(data[4:]))
	data = data[8:]
	if len(data) != count {
		return nil, errors.Wrapf(errors.ErrCorruptData, "%d labels declared, %d present", count, len(data))
	}
	return data, nil
}
