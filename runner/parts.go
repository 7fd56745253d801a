package runner

import (
	"regexp"
	"strconv"
	"strings"

	"hwgrade/listener"
)

// partHeader matches the first line of a message logged by a test, e.g.
// "    matrix_test.go:42: wrong value".
var partHeader = regexp.MustCompile(`^\s+(\S+\.go):(\d+):(?: (.*))?$`)

var framingPrefixes = []string{
	"=== RUN", "=== PAUSE", "=== CONT", "=== NAME",
	"--- PASS:", "--- FAIL:", "--- SKIP:", "--- BENCH:",
}

func isFraming(line string) bool {
	for _, prefix := range framingPrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// parseParts splits the output of a test into the messages it reported.
//
// Indented lines following a message are continuation lines of that message.
func parseParts(test string, output []string, failed bool) []*listener.PartResult {
	var parts []*listener.PartResult
	var cur *listener.PartResult
	for _, raw := range output {
		for _, line := range strings.Split(strings.TrimRight(raw, "\n"), "\n") {
			line = strings.TrimRight(line, "\r")
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if isFraming(trimmed) {
				cur = nil
				continue
			}
			if m := partHeader.FindStringSubmatch(line); m != nil {
				n, _ := strconv.Atoi(m[2])
				cur = &listener.PartResult{
					Test: test, File: m[1], Line: n, Message: m[3], Failed: failed,
				}
				parts = append(parts, cur)
				continue
			}
			if cur != nil && (line[0] == ' ' || line[0] == '\t') {
				cont := strings.TrimLeft(line, " ")
				if cur.Message == "" {
					cur.Message = cont
				} else {
					cur.Message += "\n" + cont
				}
				continue
			}
			cur = &listener.PartResult{Test: test, Message: trimmed, Failed: failed}
			parts = append(parts, cur)
		}
	}
	return parts
}
