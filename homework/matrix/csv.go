package matrix

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrMalformedCSV = errors.New("malformed csv")

// ReadCSV parses a matrix of float64 from comma separated rows.
// Spaces and tabs around fields are ignored. Every row must have the
// same number of fields and every field must be a number.
func ReadCSV(r io.Reader) (*TypedMatrix[float64], error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	var rows [][]float64
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(ErrMalformedCSV, err.Error())
		}
		line, _ := cr.FieldPos(0)
		if len(rows) > 0 && len(record) != len(rows[0]) {
			return nil, errors.Wrapf(ErrMalformedCSV, "line %d: %d fields, want %d", line, len(record), len(rows[0]))
		}
		row := make([]float64, len(record))
		for i, field := range record {
			field = strings.TrimSpace(field)
			if field == "" {
				return nil, errors.Wrapf(ErrMalformedCSV, "line %d: empty field %d", line, i+1)
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedCSV, "line %d: field %d: %q is not a number", line, i+1, field)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return FromRows(rows)
}

func ReadCSVFile(path string) (*TypedMatrix[float64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open csv")
	}
	defer f.Close()
	return ReadCSV(f)
}

// WriteCSV writes one newline terminated row per matrix row using the
// shortest representation that parses back to the same value.
func WriteCSV(w io.Writer, m *TypedMatrix[float64]) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				_ = bw.WriteByte(',')
			}
			_, _ = bw.WriteString(strconv.FormatFloat(m.data[i*m.cols+j], 'g', -1, 64))
		}
		_ = bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "failed to write csv")
}

func WriteCSVFile(path string, m *TypedMatrix[float64]) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create csv")
	}
	if err := WriteCSV(f, m); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "failed to close csv")
}
