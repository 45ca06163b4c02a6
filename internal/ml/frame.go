package ml

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
)

// Frame is a raw CSV table with string cells.
type Frame struct {
	Columns []string
	Rows    [][]string
}

func ReadCSVFile(path string) (Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Frame{}, fmt.Errorf("os.Open: %w", err)
	}
	defer fh.Close()

	frame, err := ReadCSV(fh)
	if err != nil {
		return Frame{}, fmt.Errorf("ReadCSV(%s): %w", path, err)
	}

	return frame, nil
}

func ReadCSV(r io.Reader) (Frame, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, errors.New("csv has no header")
		}

		return Frame{}, fmt.Errorf("reader.Read: %w", err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return Frame{}, fmt.Errorf("reader.ReadAll: %w", err)
	}

	return Frame{Columns: header, Rows: rows}, nil
}

func (f Frame) Index(column string) int {
	return slices.Index(f.Columns, column)
}

// Column returns a copy of the cells of column.
func (f Frame) Column(column string) ([]string, error) {
	j := f.Index(column)
	if j < 0 {
		return nil, fmt.Errorf("column %q not found", column)
	}

	values := make([]string, len(f.Rows))
	for i, row := range f.Rows {
		values[i] = row[j]
	}

	return values, nil
}

// Drop returns a frame without column. Missing columns are ignored.
func (f Frame) Drop(column string) Frame {
	j := f.Index(column)
	if j < 0 {
		return f
	}

	out := Frame{
		Columns: slices.Delete(slices.Clone(f.Columns), j, j+1),
		Rows:    make([][]string, len(f.Rows)),
	}

	for i, row := range f.Rows {
		out.Rows[i] = slices.Delete(slices.Clone(row), j, j+1)
	}

	return out
}
