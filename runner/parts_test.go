package runner

import (
	"testing"

	"hwgrade/listener"

	"github.com/stretchr/testify/assert"
)

func TestParseParts(t *testing.T) {
	tests := []struct {
		name   string
		output []string
		want   []*listener.PartResult
	}{
		{
			name:   "framing only",
			output: []string{"=== RUN   TestAdd\n", "--- PASS: TestAdd (0.00s)\n"},
			want:   nil,
		},
		{
			name: "single message",
			output: []string{
				"=== RUN   TestAdd\n",
				"    fraction_test.go:42: 1/2 + 1/3 should be 5/6, but 2/5\n",
				"--- FAIL: TestAdd (0.00s)\n",
			},
			want: []*listener.PartResult{{
				Test: "TestAdd", File: "fraction_test.go", Line: 42,
				Message: "1/2 + 1/3 should be 5/6, but 2/5", Failed: true,
			}},
		},
		{
			name: "continuation lines",
			output: []string{
				"    matrix_test.go:10: \n",
				"        \tError Trace:\tmatrix_test.go:10\n",
				"        \tError:      \tNot equal\n",
				"    matrix_test.go:11: second\n",
			},
			want: []*listener.PartResult{
				{
					Test: "TestAdd", File: "matrix_test.go", Line: 10,
					Message: "\tError Trace:\tmatrix_test.go:10\n\tError:      \tNot equal", Failed: true,
				},
				{Test: "TestAdd", File: "matrix_test.go", Line: 11, Message: "second", Failed: true},
			},
		},
		{
			name:   "message without location",
			output: []string{"panic: runtime error\n", "\tgoroutine 7 [running]:\n"},
			want: []*listener.PartResult{{
				Test: "TestAdd", Message: "panic: runtime error\n\tgoroutine 7 [running]:", Failed: true,
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseParts("TestAdd", tt.output, true))
		})
	}
}
