package report

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"hwgrade/grading"
	"hwgrade/listener"
	"hwgrade/service/storage"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRun(t *testing.T) (*listener.Run, *grading.Ledger, *grading.Rubric) {
	rubric, err := grading.NewRubric("hw1", []grading.Question{
		{ID: 0, Name: "fraction", Weight: 50, Tests: []string{"^TestFraction"}},
		{ID: 1, Name: "complex", Weight: 50, Tests: []string{"^TestComplex"}},
	})
	require.NoError(t, err)

	run := listener.NewRun(2)
	run.StartIteration(1)
	run.AddSuite(&listener.Suite{Name: "hwgrade/homework/fraction", Tests: []*listener.TestInfo{
		{Name: "TestFractionReduce", Status: listener.StatusPassed},
		{Name: "TestFractionSign", Status: listener.StatusFailed},
	}})
	run.AddSuite(&listener.Suite{Name: "hwgrade/homework/complexnum", Tests: []*listener.TestInfo{
		{Name: "TestComplexAdd", Status: listener.StatusPassed},
		{Name: "TestComplexSlow", Status: listener.StatusSkipped},
	}})
	run.Elapsed = 1500 * time.Millisecond

	ledger := grading.NewLedger()
	ledger.RegisterQuestion(0, 50)
	ledger.RegisterQuestion(0, 50)
	require.NoError(t, ledger.RecordResult(0, true))
	ledger.RegisterQuestion(1, 50)
	ledger.RegisterQuestion(1, 50)
	require.NoError(t, ledger.RecordResult(1, true))
	require.NoError(t, ledger.RecordResult(1, true))
	return run, ledger, rubric
}

func TestBuild(t *testing.T) {
	run, ledger, rubric := testRun(t)
	r := Build(run, ledger, rubric, "hw1")

	assert.Equal(t, run.ID, r.RunID)
	assert.Equal(t, "hw1", r.Homework)
	assert.Equal(t, 2, r.Iterations)
	assert.Equal(t, 1.5, r.Elapsed)
	assert.Equal(t, 4, r.NumTests)
	assert.Equal(t, 2, r.NumPassed)
	assert.Equal(t, 1, r.NumFailed)
	assert.Equal(t, 1, r.NumSkipped)
	assert.False(t, r.Passed)
	assert.True(t, r.Graded)
	assert.InDelta(t, 75, r.Grade, 1e-9)
	assert.Equal(t, []string{"TestFractionSign"}, r.FailedTests)
	assert.Equal(t, []Question{
		{ID: 0, Name: "fraction", Weight: 50, NumTests: 2, NumPassed: 1, Score: 25},
		{ID: 1, Name: "complex", Weight: 50, NumTests: 2, NumPassed: 2, Score: 50},
	}, r.Questions)
}

func TestBuildNothingGraded(t *testing.T) {
	run, _, rubric := testRun(t)
	r := Build(run, grading.NewLedger(), rubric, "hw1")
	assert.False(t, r.Graded)
	assert.Zero(t, r.Grade)
	assert.Zero(t, r.Questions[0].Score)
}

func TestYAML(t *testing.T) {
	run, ledger, rubric := testRun(t)
	r := Build(run, ledger, rubric, "hw1")

	data, err := r.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "homework: hw1\n")
	assert.Contains(t, string(data), "grade: 75\n")
	assert.Contains(t, string(data), "failed_tests:\n    - TestFractionSign\n")

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, r.RunID, parsed.RunID)
	assert.True(t, r.StartedAt.Equal(parsed.StartedAt))
	assert.Equal(t, r.Questions, parsed.Questions)

	_, err = Parse([]byte("questions: 3"))
	assert.Error(t, err)
}

func TestModel(t *testing.T) {
	run, ledger, rubric := testRun(t)
	r := Build(run, ledger, rubric, "hw1")

	m := r.Model()
	assert.Equal(t, r.RunID, m.ID)
	assert.Equal(t, 1500*time.Millisecond, m.Elapsed)
	require.Len(t, m.Questions, 2)
	assert.Equal(t, r.RunID, m.Questions[1].RunID)
	assert.Equal(t, 50.0, m.Questions[1].Score)

	back := FromModel(m)
	assert.Equal(t, r.Questions, back.Questions)
	assert.Equal(t, r.Grade, back.Grade)
	assert.Equal(t, r.FailedTests, []string(back.FailedTests))
}

type fakeSink struct {
	name  string
	err   error
	saved atomic.Int32
}

func (s *fakeSink) Name() string { return s.name }

func (s *fakeSink) Save(context.Context, *Report) error {
	s.saved.Add(1)
	return s.err
}

func TestPublish(t *testing.T) {
	run, ledger, rubric := testRun(t)
	r := Build(run, ledger, rubric, "hw1")

	a, b := &fakeSink{name: "a"}, &fakeSink{name: "b"}
	require.NoError(t, Publish(context.Background(), r, a, b))
	assert.EqualValues(t, 1, a.saved.Load())
	assert.EqualValues(t, 1, b.saved.Load())

	boom := errors.New("boom")
	err := Publish(context.Background(), r, a, &fakeSink{name: "broken", err: boom})
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "publish report to broken")

	assert.NoError(t, Publish(context.Background(), r))
}

func TestStorageSink(t *testing.T) {
	ctx := context.Background()
	run, ledger, rubric := testRun(t)
	r := Build(run, ledger, rubric, "hw1")

	sink := &StorageSink{Provider: storage.NewLocalFS(memfs.New()), Prefix: "reports"}
	require.NoError(t, Publish(ctx, r, sink))
	assert.Equal(t, "reports/hw1/"+r.RunID.String()+".yaml", sink.Path(r))

	reports, err := sink.Load(ctx, "hw1")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, r.RunID, reports[0].RunID)

	reports, err = sink.Load(ctx, "hw5")
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestFileSink(t *testing.T) {
	run, ledger, rubric := testRun(t)
	r := Build(run, ledger, rubric, "hw1")

	dir := t.TempDir()
	sink := &FileSink{Path: dir + "/out/report.yaml"}
	require.NoError(t, sink.Save(context.Background(), r))

	data, err := storage.NewLocal(dir).Read(context.Background(), "out/report.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), r.RunID.String())
}
