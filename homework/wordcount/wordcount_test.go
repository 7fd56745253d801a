package wordcount

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	textFile   = "testdata/lorem_ipsum_explain.txt"
	answerFile = "testdata/AnswerMap.txt"
)

func load(t *testing.T) (got, want map[string]int) {
	t.Helper()
	got, err := OccurrenceMapFile(textFile)
	require.NoError(t, err)
	want, err = LoadAnswerKeyFile(answerFile)
	require.NoError(t, err)
	require.NotEmpty(t, want)
	return got, want
}

func TestOccurrenceMapNoExtraKeywords(t *testing.T) {
	got, want := load(t)
	for k := range got {
		assert.Contains(t, want, k, "unexpected keyword")
	}
}

func TestOccurrenceMap(t *testing.T) {
	got, want := load(t)
	for k, n := range want {
		t.Run(k, func(t *testing.T) {
			require.Contains(t, got, k)
			assert.Equal(t, n, got[k])
		})
	}
}

func TestOccurrenceMapTokens(t *testing.T) {
	got, err := OccurrenceMap(strings.NewReader(`"Hello, hello!" (WORLD) it's -- a-b 42% naïve x`))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"hello": 2, "world": 1, "it's": 1, "42": 1, "x": 1}, got)
}

func TestOccurrenceMapEmpty(t *testing.T) {
	got, err := OccurrenceMap(strings.NewReader(" \n\t "))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAnswerKeyRoundTrip(t *testing.T) {
	counts := map[string]int{"b": 2, "a": 10, "it's": 1}
	var buf bytes.Buffer
	require.NoError(t, WriteAnswerKey(&buf, counts))
	assert.Equal(t, "a %%:%% 10\nb %%:%% 2\nit's %%:%% 1\n", buf.String())

	got, err := LoadAnswerKey(&buf)
	require.NoError(t, err)
	assert.Equal(t, counts, got)
}

func TestAnswerKeyIgnoresOtherLines(t *testing.T) {
	got, err := LoadAnswerKey(strings.NewReader("# comment\na %%:%% 1\n\nb:2\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1}, got)
}

func TestAnswerKeyInvalidCount(t *testing.T) {
	_, err := LoadAnswerKey(strings.NewReader("a %%:%% one\n"))
	assert.Error(t, err)
}
