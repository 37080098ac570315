package crop

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrEmptyDataset is returned when the dataset has no header or no rows.
var ErrEmptyDataset = errors.New("dataset is empty")

// LoadFile reads a training corpus from a CSV file on disk.
func LoadFile(path string) (Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	corpus, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return corpus, nil
}

// LoadCSV reads a corpus from CSV. Columns are located through the header,
// so their order does not matter and unrelated columns are ignored.
func LoadCSV(r io.Reader) (Corpus, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	features := Features()
	cols := make([]int, len(features))
	for i, f := range features {
		col, ok := index[string(f)]
		if !ok {
			return nil, fmt.Errorf("missing column %q", f)
		}
		cols[i] = col
	}
	labelCol, ok := index[LabelColumn]
	if !ok {
		return nil, fmt.Errorf("missing column %q", LabelColumn)
	}

	var corpus Corpus
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		var ex Example
		for i, f := range features {
			cell := strings.TrimSpace(record[cols[i]])
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %s: %w", line, f, err)
			}
			ex.Features.Set(f, value)
		}
		ex.Label = Label(strings.TrimSpace(record[labelCol]))
		if ex.Label == "" {
			return nil, fmt.Errorf("line %d: empty %s", line, LabelColumn)
		}
		corpus = append(corpus, ex)
	}

	if len(corpus) == 0 {
		return nil, ErrEmptyDataset
	}
	return corpus, nil
}
