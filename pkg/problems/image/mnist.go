// Package image generates image classification datasets.
package image

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/akshay120860/tensor2tensor/pkg/datagen"
	"github.com/akshay120860/tensor2tensor/pkg/features"
	"github.com/akshay120860/tensor2tensor/pkg/fetch"
	"github.com/akshay120860/tensor2tensor/pkg/utils/retry"
	"github.com/akshay120860/tensor2tensor/pkg/utils/slices"
)

const (
	mnistDefaultBaseURL = "http://yann.lecun.com/exdb/mnist/"
	mnistTrainImages    = "train-images-idx3-ubyte.gz"
	mnistTrainLabels    = "train-labels-idx1-ubyte.gz"
	mnistTestImages     = "t10k-images-idx3-ubyte.gz"
	mnistTestLabels     = "t10k-labels-idx1-ubyte.gz"
)

var mnistChecksums = map[string]string{
	mnistTrainImages: "f68b3c2dcbeaaa9fbdd348bbdeb94873",
	mnistTrainLabels: "d53e105ee54ea40749a09fcbcd1e9432",
	mnistTestImages:  "9fb629c4189551a2d022fa330f9573f3",
	mnistTestLabels:  "ec29112dd5afa0611ce80d1b7f02629c",
}

// MNIST generates the handwritten digit dataset, driving its own whole
// pipeline: download, decode, shard and shuffle.
//
// L logs progress and must be set. BaseURL overrides the upstream
// directory URL (for mirrors and tests); Checksums overrides the known
// MD5 sum of each archive it names, an empty value skipping
// verification of that archive.
type MNIST struct {
	L         *log.Logger
	BaseURL   string
	Checksums map[string]string
}

// GenerateData writes the train split into numShards shard files and
// the test split into one dev shard file under dataDir, then shuffles
// them all together. Archives are downloaded into tmpDir and reused
// on later runs.
func (m MNIST) GenerateData(ctx context.Context, dataDir string, tmpDir string, numShards int) error {
	base := "image_mnist" + datagen.UnshuffledSuffix
	trainPaths := datagen.TrainFiles(base, dataDir, numShards)
	devPaths := datagen.DevFiles(base, dataDir, 1)

	if err := m.generateSplit(ctx, tmpDir, mnistTrainImages, mnistTrainLabels, trainPaths); err != nil {
		return err
	}
	if err := m.generateSplit(ctx, tmpDir, mnistTestImages, mnistTestLabels, devPaths); err != nil {
		return err
	}
	return datagen.ShuffleDataset(ctx, m.L, slices.Concat(trainPaths, devPaths))
}

func (m MNIST) generateSplit(ctx context.Context, tmpDir string, imagesName string, labelsName string, paths []string) error {
	imagesPath, err := m.fetch(ctx, tmpDir, imagesName)
	if err != nil {
		return err
	}
	labelsPath, err := m.fetch(ctx, tmpDir, labelsName)
	if err != nil {
		return err
	}

	images, rows, cols, err := readImages(imagesPath)
	if err != nil {
		return err
	}
	labels, err := readLabels(labelsPath)
	if err != nil {
		return err
	}
	if len(images) != len(labels) {
		return fmt.Errorf(
			"%s and %s disagree: %d images, %d labels",
			imagesName, labelsName, len(images), len(labels),
		)
	}

	return datagen.GenerateFiles(ctx, m.L, imageExamples(images, labels, rows, cols), paths, 0)
}

func (m MNIST) fetch(ctx context.Context, tmpDir string, name string) (string, error) {
	baseURL := m.BaseURL
	if baseURL == "" {
		baseURL = mnistDefaultBaseURL
	}
	sum, overridden := m.Checksums[name]
	if !overridden {
		sum = mnistChecksums[name]
	}

	opts := []fetch.Option{
		fetch.WithProgressOut(m.L.Writer()),
		fetch.WithBackoff(retry.ExponentialBackoff(time.Second, 2)),
	}
	if sum != "" {
		opts = append(opts, fetch.WithChecksum(sum))
	}
	url := strings.TrimSuffix(baseURL, "/") + "/" + name
	return fetch.MaybeDownload(ctx, m.L, tmpDir, name, url, opts...)
}

// imageExamples streams one example per image, encoded as PNG the way
// image input pipelines expect them.
func imageExamples(images [][]byte, labels []byte, rows int, cols int) features.Iterator {
	i := 0
	return features.FromFunc(
		func(ctx context.Context) (features.Example, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if len(images) <= i {
				return nil, io.EOF
			}

			img := image.Gray{
				Pix:    images[i],
				Stride: cols,
				Rect:   image.Rect(0, 0, cols, rows),
			}
			encoded := bytes.Buffer{}
			if err := png.Encode(&encoded, &img); err != nil {
				return nil, err
			}

			ex := features.Example{
				"image/encoded":     features.Bytes{encoded.Bytes()},
				"image/format":      features.Strings("png"),
				"image/class/label": features.Ints{int64(labels[i])},
				"image/height":      features.Ints{int64(rows)},
				"image/width":       features.Ints{int64(cols)},
			}
			i += 1
			return ex, nil
		},
		func() error { return nil },
	)
}

// readImages decodes an IDX image archive: gzip around a 2051 magic,
// the image count, rows and columns, all big-endian int32, then one
// byte per pixel, image by image.
func readImages(path string) (images [][]byte, rows int, cols int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%s is not a gzip file: %w", path, err)
	}
	defer gz.Close()

	var header struct{ Magic, Count, Rows, Cols int32 }
	if err := binary.Read(gz, binary.BigEndian, &header); err != nil {
		return nil, 0, 0, fmt.Errorf("reading %s: %w", path, err)
	}
	if header.Magic != 2051 {
		return nil, 0, 0, fmt.Errorf("%s is not an IDX image file: magic %d", path, header.Magic)
	}

	images = make([][]byte, header.Count)
	for i := range images {
		pixels := make([]byte, int(header.Rows)*int(header.Cols))
		if _, err := io.ReadFull(gz, pixels); err != nil {
			return nil, 0, 0, fmt.Errorf("reading %s: %w", path, err)
		}
		images[i] = pixels
	}
	return images, int(header.Rows), int(header.Cols), nil
}

// readLabels decodes an IDX label archive: gzip around a 2049 magic,
// the label count, both big-endian int32, then one byte per label.
func readLabels(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s is not a gzip file: %w", path, err)
	}
	defer gz.Close()

	var header struct{ Magic, Count int32 }
	if err := binary.Read(gz, binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if header.Magic != 2049 {
		return nil, fmt.Errorf("%s is not an IDX label file: magic %d", path, header.Magic)
	}

	labels := make([]byte, header.Count)
	if _, err := io.ReadFull(gz, labels); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return labels, nil
}
