package cmd

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hwgrade/utils"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testConfig = `
log_level: warn
runner:
  repeat: 1
listener:
  show_test_cases: true
  show_test_names: true
  show_successes: true
  show_inline_failures: true
  show_environment: true
  color: never
homeworks:
  hw1:
    packages: [./homework/fraction]
    questions:
      - {id: 0, name: reduce, weight: 60, tests: ["^TestFractionReduce"]}
      - {id: 1, name: sign, weight: 40, tests: ["^TestFractionSign"]}
report:
  prefix: reports
storage:
  type: local
  local:
    path: %s
`

const testEvents = `{"Action":"start","Package":"hwgrade/homework/fraction"}
{"Action":"run","Package":"hwgrade/homework/fraction","Test":"TestFractionReduce"}
{"Action":"pass","Package":"hwgrade/homework/fraction","Test":"TestFractionReduce","Elapsed":0.01}
{"Action":"run","Package":"hwgrade/homework/fraction","Test":"TestFractionSign"}
{"Action":"output","Package":"hwgrade/homework/fraction","Test":"TestFractionSign","Output":"    fraction_test.go:30: -1/2 should be -1/2, but 1/-2\n"}
{"Action":"fail","Package":"hwgrade/homework/fraction","Test":"TestFractionSign","Elapsed":0}
{"Action":"fail","Package":"hwgrade/homework/fraction","Elapsed":0.2}
`

type testEnv struct {
	dir     string
	config  string
	events  string
	storage string
}

func setup(t *testing.T) *testEnv {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
	})
	env := &testEnv{
		dir:     dir,
		config:  filepath.Join(dir, "config.yaml"),
		events:  filepath.Join(dir, "events.json"),
		storage: filepath.Join(dir, "data"),
	}
	require.NoError(t, os.WriteFile(env.config,
		[]byte(strings.Replace(testConfig, "%s", env.storage, 1)), 0o644))
	require.NoError(t, os.WriteFile(env.events, []byte(testEvents), 0o644))
	return env
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReplay(t *testing.T) {
	env := setup(t)

	out, err := execute(t, "", "--config", env.config, "replay", "hw1", env.events,
		"--report", filepath.Join(env.dir, "report.yaml"))
	assert.ErrorIs(t, err, ErrTestsFailed)

	assert.Contains(t, out, "[    INFO  ] Grading hw1: 2 questions, 100 points\n")
	assert.Contains(t, out, "[ RUN      ] TestFractionReduce\n")
	assert.Contains(t, out, "[       OK ] TestFractionReduce (10 ms)\n")
	assert.Contains(t, out, "fraction_test.go:30: Failure\n-1/2 should be -1/2, but 1/-2\n")
	assert.Contains(t, out, "[  FAILED  ] TestFractionSign (0 ms)\n")
	assert.Contains(t, out, "[    GRADE ] 60%\n")
	assert.Contains(t, out, "[    GRADE ]   0 reduce: 60/60 (1/1)\n")
	assert.Contains(t, out, "[    GRADE ]   1 sign: 0/40 (0/1)\n")
	assert.True(t, strings.HasSuffix(out, "\nHOMEWORK_GRADE: 1/2\n"))

	report, err := os.ReadFile(filepath.Join(env.dir, "report.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(report), "grade: 60\n")

	stored, err := filepath.Glob(filepath.Join(env.storage, "reports", "hw1", "*.yaml"))
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	out, err = execute(t, "", "--config", env.config, "history", "hw1")
	require.NoError(t, err)
	assert.Contains(t, out, "60.00%")
	assert.Contains(t, out, "1/2")
}

func TestReplayStdinQuiet(t *testing.T) {
	env := setup(t)

	out, err := execute(t, testEvents, "--config", env.config, "replay", "hw1", "-",
		"--show-successes=false", "--show-test-names=false", "--show-environment=false")
	assert.ErrorIs(t, err, ErrTestsFailed)

	assert.NotContains(t, out, "[       OK ] TestFractionReduce")
	assert.NotContains(t, out, "[ RUN      ]")
	assert.NotContains(t, out, "Global test environment")
	assert.Contains(t, out, "[  FAILED  ] TestFractionSign (0 ms)\n")
	assert.Contains(t, out, "HOMEWORK_GRADE: 1/2\n")
}

func TestReplayRepeat(t *testing.T) {
	env := setup(t)

	out, err := execute(t, "", "--config", env.config, "replay", "hw1", env.events, env.events)
	assert.ErrorIs(t, err, ErrTestsFailed)
	assert.Contains(t, out, "Repeating all tests (iteration 2) . . .")
	assert.Contains(t, out, "[    GRADE ]   0 reduce: 60/60 (1/1)\n")
	assert.Contains(t, out, "HOMEWORK_GRADE: 1/2\n")
}

func TestReplayErrors(t *testing.T) {
	env := setup(t)

	_, err := execute(t, "", "--config", env.config, "replay", "hw9", env.events)
	assert.ErrorContains(t, err, "unknown homework 'hw9'")

	_, err = execute(t, "", "--config", env.config, "replay", "hw1", "-", env.events)
	assert.Error(t, err)

	_, err = execute(t, "", "--config", env.config, "replay", "hw1", env.events, "--color", "pink")
	assert.ErrorContains(t, err, "invalid color mode 'pink'")

	_, err = execute(t, "", "--config", env.config, "--log-level", "loud", "questions", "hw1")
	assert.ErrorContains(t, err, "invalid log level 'loud'")
}

func TestQuestions(t *testing.T) {
	env := setup(t)

	out, err := execute(t, "", "--config", env.config, "questions", "hw1")
	require.NoError(t, err)
	assert.Contains(t, out, "reduce")
	assert.Contains(t, out, "^TestFractionSign")
	assert.Contains(t, out, "2 questions, 100 points\n")
}

func TestHistoryEmpty(t *testing.T) {
	env := setup(t)

	out, err := execute(t, "", "--config", env.config, "history", "hw1")
	require.NoError(t, err)
	assert.Equal(t, "No grade runs\n", out)
}

func TestToken(t *testing.T) {
	env := setup(t)
	old := utils.TokenSecret
	t.Cleanup(func() { utils.TokenSecret = old })

	_, err := execute(t, "", "--config", env.config, "token", "ta")
	assert.ErrorContains(t, err, "server.token_secret must be set")

	config, err := os.ReadFile(env.config)
	require.NoError(t, err)
	config = append(config, "server:\n  token_secret: s3cret\n  token_expiration: 1h\n"...)
	require.NoError(t, os.WriteFile(env.config, config, 0o644))

	out, err := execute(t, "", "--config", env.config, "token", "ta")
	require.NoError(t, err)
	claims, err := utils.ParseToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ta", claims.Grader)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestServeShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	assert.NoError(t, serve(ctx, srv))
}

func TestServeListenError(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:-1", Handler: http.NotFoundHandler()}
	assert.ErrorContains(t, serve(context.Background(), srv), "listen")
}
