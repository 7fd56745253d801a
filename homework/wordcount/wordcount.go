// Package wordcount counts word occurrences in text.
package wordcount

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Delimiter separates a key from its count in an answer key file.
const Delimiter = " %%:%% "

var wordPattern = regexp.MustCompile(`^[A-Za-z0-9']+$`)

func isASCIIAlnum(r rune) bool {
	return r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// OccurrenceMap counts the lowercased words of r. A word is a whitespace
// separated token stripped of leading and trailing punctuation; tokens with
// anything but letters, digits and apostrophes left are dropped.
func OccurrenceMap(r io.Reader) (map[string]int, error) {
	lower := cases.Lower(language.Und)
	counts := map[string]int{}

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	s.Split(bufio.ScanWords)
	for s.Scan() {
		word := strings.TrimFunc(s.Text(), func(r rune) bool { return !isASCIIAlnum(r) })
		if !wordPattern.MatchString(word) {
			continue
		}
		counts[lower.String(word)]++
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read text")
	}
	return counts, nil
}

func OccurrenceMapFile(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open text")
	}
	defer f.Close()
	return OccurrenceMap(f)
}

// LoadAnswerKey reads "key %%:%% count" lines. Lines without the delimiter
// are ignored.
func LoadAnswerKey(r io.Reader) (map[string]int, error) {
	key := map[string]int{}
	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		k, v, ok := strings.Cut(s.Text(), Delimiter)
		if !ok {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, errors.Errorf("line %d: invalid count %q for %q", n, v, k)
		}
		key[k] = count
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read answer key")
	}
	return key, nil
}

func LoadAnswerKeyFile(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open answer key")
	}
	defer f.Close()
	return LoadAnswerKey(f)
}

// WriteAnswerKey writes the counts sorted by key.
func WriteAnswerKey(w io.Writer, counts map[string]int) error {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bw := bufio.NewWriter(w)
	for _, k := range keys {
		_, _ = bw.WriteString(k + Delimiter + strconv.Itoa(counts[k]) + "\n")
	}
	return errors.Wrap(bw.Flush(), "failed to write answer key")
}
