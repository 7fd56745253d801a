package runner

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder(t *testing.T) {
	input := `{"Time":"2024-03-01T10:00:00Z","Action":"run","Package":"hwgrade/homework/fraction","Test":"TestReduce"}

go: downloading example.com/mod v1.0.0
{"Action":"pass","Package":"hwgrade/homework/fraction","Test":"TestReduce","Elapsed":0.25}
{not json
`
	dec := NewDecoder(strings.NewReader(input))

	e, err := dec.Next()
	require.NoError(t, err)
	assert.Equal(t, ActionRun, e.Action)
	assert.Equal(t, "hwgrade/homework/fraction", e.Package)
	assert.Equal(t, "TestReduce", e.Test)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), e.Time)

	e, err = dec.Next()
	require.NoError(t, err)
	assert.Equal(t, &Event{Action: ActionOutput, Output: "go: downloading example.com/mod v1.0.0\n"}, e)

	e, err = dec.Next()
	require.NoError(t, err)
	assert.Equal(t, ActionPass, e.Action)
	assert.Equal(t, 250*time.Millisecond, e.ElapsedDuration())

	e, err = dec.Next()
	require.NoError(t, err)
	assert.Equal(t, ActionOutput, e.Action)
	assert.Equal(t, "{not json\n", e.Output)
	assert.Empty(t, e.Package)

	_, err = dec.Next()
	assert.Equal(t, io.EOF, err)
}
