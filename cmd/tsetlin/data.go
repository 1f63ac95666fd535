package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/tsetlin/encoder"
)

var (
	// errEmptyData indicates a data file without a single example.
	errEmptyData = errors.New("tsetlin: no examples in data")

	// errRagged indicates rows of different widths or a non-bit token.
	errRagged = errors.New("tsetlin: malformed data row")
)

// dataset is a parsed bit file: Tensor holds the features, Labels the last column.
type dataset struct {
	Tensor encoder.Tensor
	Labels []bool
}

// readBits parses one example per line. shape, when non-empty, is the
// per-example shape (rows[, cols[, channels]]) and must multiply out to the
// feature count; otherwise examples are flat feature vectors.
func readBits(r io.Reader, shape []int) (dataset, error) {
	var (
		data   []uint8
		labels []bool
		width  = -1
		line   int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(c rune) bool { return c == ',' || c == ' ' || c == '\t' })
		if len(fields) < 2 {
			return dataset{}, fmt.Errorf("line %d: %w: need features and a label", line, errRagged)
		}
		if width < 0 {
			width = len(fields) - 1
		} else if len(fields)-1 != width {
			return dataset{}, fmt.Errorf("line %d: %w: %d features, want %d", line, errRagged, len(fields)-1, width)
		}
		for i, f := range fields {
			var bit uint8
			switch f {
			case "0":
			case "1":
				bit = 1
			default:
				return dataset{}, fmt.Errorf("line %d: %w: token %q", line, errRagged, f)
			}
			if i == width {
				labels = append(labels, bit == 1)
			} else {
				data = append(data, bit)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return dataset{}, err
	}
	if len(labels) == 0 {
		return dataset{}, errEmptyData
	}

	full := []int{len(labels), width}
	if len(shape) > 0 {
		size := 1
		for _, d := range shape {
			size *= d
		}
		if size != width {
			return dataset{}, fmt.Errorf("%w: shape %v holds %d features, rows have %d", errRagged, shape, size, width)
		}
		full = append([]int{len(labels)}, shape...)
	}

	return dataset{Tensor: encoder.Tensor{Shape: full, Data: data}, Labels: labels}, nil
}
