// Package report builds the grade report of a run and publishes it.
package report

import (
	"time"

	"hwgrade/grading"
	"hwgrade/listener"
	"hwgrade/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Question is the result of a single question.
type Question struct {
	ID        int     `yaml:"id" json:"id"`
	Name      string  `yaml:"name" json:"name"`
	Weight    float64 `yaml:"weight" json:"weight"`
	NumTests  int     `yaml:"num_tests" json:"num_tests"`
	NumPassed int     `yaml:"num_passed" json:"num_passed"`
	Score     float64 `yaml:"score" json:"score"`
}

// Report is the grade report of a run.
// The counters are those of the last iteration.
type Report struct {
	RunID      uuid.UUID `yaml:"run_id" json:"run_id"`
	Homework   string    `yaml:"homework" json:"homework"`
	StartedAt  time.Time `yaml:"started_at" json:"started_at"`
	Elapsed    float64   `yaml:"elapsed_seconds" json:"elapsed_seconds"`
	Iterations int       `yaml:"iterations" json:"iterations"`

	NumTests   int `yaml:"num_tests" json:"num_tests"`
	NumPassed  int `yaml:"num_passed" json:"num_passed"`
	NumFailed  int `yaml:"num_failed" json:"num_failed"`
	NumSkipped int `yaml:"num_skipped" json:"num_skipped"`

	// Graded is false when no graded test ran, Grade is 0 then.
	Graded bool    `yaml:"graded" json:"graded"`
	Grade  float64 `yaml:"grade" json:"grade"`

	// Passed is set if every test of every iteration passed.
	Passed bool `yaml:"passed" json:"passed"`

	Questions   []Question `yaml:"questions" json:"questions"`
	FailedTests []string   `yaml:"failed_tests,omitempty" json:"failed_tests,omitempty"`
}

// Build creates the report of a finished run.
func Build(run *listener.Run, ledger *grading.Ledger, rubric *grading.Rubric, homework string) *Report {
	r := &Report{
		RunID:      run.ID,
		Homework:   homework,
		StartedAt:  run.StartedAt.UTC(),
		Elapsed:    run.Elapsed.Seconds(),
		Iterations: run.Iteration + 1,
		NumTests:   run.TestCount(),
		Passed:     run.Passed(),
	}
	for _, t := range run.FailedTests() {
		r.FailedTests = append(r.FailedTests, t.Name)
	}
	for _, s := range run.FailedSuites() {
		r.FailedTests = append(r.FailedTests, s.Name)
	}
	r.NumFailed = len(run.FailedTests())
	r.NumSkipped = len(run.SkippedTests())
	r.NumPassed = r.NumTests - r.NumFailed - r.NumSkipped

	grade, err := ledger.OverallGrade()
	r.Graded = err == nil
	r.Grade = grade

	for _, q := range rubric.Questions {
		stat, _ := ledger.Question(q.ID)
		r.Questions = append(r.Questions, Question{
			ID:        q.ID,
			Name:      q.Name,
			Weight:    q.Weight,
			NumTests:  stat.NumTests,
			NumPassed: stat.NumPassed,
			Score:     stat.Grade(),
		})
	}
	return r
}

// YAML encodes the report.
func (r *Report) YAML() ([]byte, error) {
	data, err := yaml.Marshal(r)
	return data, errors.Wrap(err, "encode report")
}

// Parse decodes a report encoded by YAML.
func Parse(data []byte) (*Report, error) {
	r := &Report{}
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, errors.Wrap(err, "decode report")
	}
	return r, nil
}

// Model converts the report to its database model.
func (r *Report) Model() *model.GradeRun {
	run := &model.GradeRun{
		ID:          r.RunID,
		Homework:    r.Homework,
		StartedAt:   r.StartedAt,
		Elapsed:     time.Duration(r.Elapsed * float64(time.Second)),
		Iterations:  r.Iterations,
		NumTests:    r.NumTests,
		NumPassed:   r.NumPassed,
		NumFailed:   r.NumFailed,
		NumSkipped:  r.NumSkipped,
		Grade:       r.Grade,
		Graded:      r.Graded,
		Passed:      r.Passed,
		FailedTests: pq.StringArray(append([]string{}, r.FailedTests...)),
	}
	for _, q := range r.Questions {
		run.Questions = append(run.Questions, model.QuestionResult{
			RunID:     r.RunID,
			Question:  q.ID,
			Name:      q.Name,
			Weight:    q.Weight,
			NumTests:  q.NumTests,
			NumPassed: q.NumPassed,
			Score:     q.Score,
		})
	}
	return run
}

// FromModel converts a database model back to a report.
func FromModel(run *model.GradeRun) *Report {
	r := &Report{
		RunID:       run.ID,
		Homework:    run.Homework,
		StartedAt:   run.StartedAt,
		Elapsed:     run.Elapsed.Seconds(),
		Iterations:  run.Iterations,
		NumTests:    run.NumTests,
		NumPassed:   run.NumPassed,
		NumFailed:   run.NumFailed,
		NumSkipped:  run.NumSkipped,
		Graded:      run.Graded,
		Grade:       run.Grade,
		Passed:      run.Passed,
		FailedTests: run.FailedTests,
	}
	for _, q := range run.Questions {
		r.Questions = append(r.Questions, Question{
			ID:        q.Question,
			Name:      q.Name,
			Weight:    q.Weight,
			NumTests:  q.NumTests,
			NumPassed: q.NumPassed,
			Score:     q.Score,
		})
	}
	return r
}
