// Package matrix implements a dense generic matrix.
package matrix

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrOutOfRange        = errors.New("index out of range")
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// Number is the set of element types a TypedMatrix can hold.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// TypedMatrix is a rows x cols matrix stored in row-major order.
type TypedMatrix[T Number] struct {
	rows, cols int
	data       []T
}

// New returns a zero matrix. It panics if a dimension is negative.
func New[T Number](rows, cols int) *TypedMatrix[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matrix: negative dimension %dx%d", rows, cols))
	}
	return &TypedMatrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

// FromRows copies the rows into a new matrix. All rows must have the same length.
func FromRows[T Number](rows [][]T) (*TypedMatrix[T], error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m := New[T](len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Wrapf(ErrDimensionMismatch, "row %d has %d columns, want %d", i, len(row), cols)
		}
		copy(m.data[i*cols:], row)
	}
	return m, nil
}

func (m *TypedMatrix[T]) Rows() int { return m.rows }

func (m *TypedMatrix[T]) Cols() int { return m.cols }

func (m *TypedMatrix[T]) index(row, col int) (int, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, errors.Wrapf(ErrOutOfRange, "(%d, %d) in %dx%d matrix", row, col, m.rows, m.cols)
	}
	return row*m.cols + col, nil
}

func (m *TypedMatrix[T]) Get(row, col int) (T, error) {
	i, err := m.index(row, col)
	if err != nil {
		var zero T
		return zero, err
	}
	return m.data[i], nil
}

func (m *TypedMatrix[T]) Set(row, col int, v T) error {
	i, err := m.index(row, col)
	if err != nil {
		return err
	}
	m.data[i] = v
	return nil
}

// Row returns a copy of the row.
func (m *TypedMatrix[T]) Row(row int) ([]T, error) {
	if row < 0 || row >= m.rows {
		return nil, errors.Wrapf(ErrOutOfRange, "row %d in %dx%d matrix", row, m.rows, m.cols)
	}
	return append([]T(nil), m.data[row*m.cols:(row+1)*m.cols]...), nil
}

// ToRows returns the matrix as a slice of rows.
func (m *TypedMatrix[T]) ToRows() [][]T {
	rows := make([][]T, m.rows)
	for i := range rows {
		rows[i] = append([]T(nil), m.data[i*m.cols:(i+1)*m.cols]...)
	}
	return rows
}

func (m *TypedMatrix[T]) Clone() *TypedMatrix[T] {
	return &TypedMatrix[T]{rows: m.rows, cols: m.cols, data: append([]T(nil), m.data...)}
}

// Equal reports whether both matrices have the same shape and elements.
// Matrices without elements are always equal.
func (m *TypedMatrix[T]) Equal(o *TypedMatrix[T]) bool {
	if len(m.data) == 0 && len(o.data) == 0 {
		return true
	}
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i := range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

func (m *TypedMatrix[T]) sameShape(o *TypedMatrix[T]) error {
	if m.rows != o.rows || m.cols != o.cols {
		return errors.Wrapf(ErrDimensionMismatch, "%dx%d and %dx%d", m.rows, m.cols, o.rows, o.cols)
	}
	return nil
}

// Add returns the element-wise sum.
func (m *TypedMatrix[T]) Add(o *TypedMatrix[T]) (*TypedMatrix[T], error) {
	r := m.Clone()
	if err := r.AddAssign(o); err != nil {
		return nil, err
	}
	return r, nil
}

// Mul returns the matrix product m * o.
func (m *TypedMatrix[T]) Mul(o *TypedMatrix[T]) (*TypedMatrix[T], error) {
	if m.cols != o.rows {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%dx%d times %dx%d", m.rows, m.cols, o.rows, o.cols)
	}
	r := New[T](m.rows, o.cols)
	for i := 0; i < m.rows; i++ {
		for k := 0; k < m.cols; k++ {
			a := m.data[i*m.cols+k]
			for j := 0; j < o.cols; j++ {
				r.data[i*o.cols+j] += a * o.data[k*o.cols+j]
			}
		}
	}
	return r, nil
}

// AddAssign adds o to m element-wise.
func (m *TypedMatrix[T]) AddAssign(o *TypedMatrix[T]) error {
	if err := m.sameShape(o); err != nil {
		return err
	}
	for i := range m.data {
		m.data[i] += o.data[i]
	}
	return nil
}

// MulAssign multiplies m by o element-wise.
func (m *TypedMatrix[T]) MulAssign(o *TypedMatrix[T]) error {
	if err := m.sameShape(o); err != nil {
		return err
	}
	for i := range m.data {
		m.data[i] *= o.data[i]
	}
	return nil
}

func (m *TypedMatrix[T]) String() string {
	return fmt.Sprint(m.ToRows())
}
