package grading

import (
	"sort"

	"github.com/pkg/errors"
)

var (
	// ErrNoGradedQuestions is returned when no question has any test attributed to it.
	ErrNoGradedQuestions = errors.New("no graded questions")

	// ErrUnknownQuestion is returned when a result is recorded for a question that was never
	// registered, or when it would make the question pass more tests than it ran.
	ErrUnknownQuestion = errors.New("unknown question")
)

// QuestionStat holds the counters of a single question.
type QuestionStat struct {
	// ID is the question id.
	ID int

	// Weight is the point value of the question.
	Weight float64

	// NumTests is the number of tests attributed to the question.
	NumTests int

	// NumPassed is the number of attributed tests which did not fail.
	NumPassed int
}

// Grade returns the points earned by the question.
//
// A question without tests earns nothing.
func (s QuestionStat) Grade() float64 {
	if s.NumTests == 0 {
		return 0
	}
	return float64(s.NumPassed) / float64(s.NumTests) * s.Weight
}

// Ledger is a set of per-question counters for one test iteration.
//
// The ledger is driven from the sequential test lifecycle and does no locking.
type Ledger struct {
	questions map[int]*QuestionStat
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{questions: make(map[int]*QuestionStat)}
}

// RegisterQuestion sets the weight of the question and attributes one more test to it.
func (l *Ledger) RegisterQuestion(id int, weight float64) {
	q, ok := l.questions[id]
	if !ok {
		q = &QuestionStat{ID: id}
		l.questions[id] = q
	}
	q.Weight = weight
	q.NumTests++
}

// RecordResult records the outcome of a test attributed to the question.
func (l *Ledger) RecordResult(id int, passed bool) error {
	q, ok := l.questions[id]
	if !ok {
		return errors.Wrapf(ErrUnknownQuestion, "question %d is not registered", id)
	}
	if !passed {
		return nil
	}
	if q.NumPassed >= q.NumTests {
		return errors.Wrapf(ErrUnknownQuestion,
			"question %d already passed all of its %d tests", id, q.NumTests)
	}
	q.NumPassed++
	return nil
}

// Question returns the counters of the question.
func (l *Ledger) Question(id int) (QuestionStat, bool) {
	q, ok := l.questions[id]
	if !ok {
		return QuestionStat{ID: id}, false
	}
	return *q, true
}

// QuestionGrade returns the points earned by the question, 0 if it has no tests.
func (l *Ledger) QuestionGrade(id int) float64 {
	q, _ := l.Question(id)
	return q.Grade()
}

// Questions returns the counters of all registered questions ordered by id.
func (l *Ledger) Questions() []QuestionStat {
	stats := make([]QuestionStat, 0, len(l.questions))
	for _, q := range l.questions {
		stats = append(stats, *q)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].ID < stats[j].ID })
	return stats
}

// QuestionGrades returns the points earned by every registered question ordered by id.
func (l *Ledger) QuestionGrades() []float64 {
	stats := l.Questions()
	grades := make([]float64, len(stats))
	for i, q := range stats {
		grades[i] = q.Grade()
	}
	return grades
}

// OverallGrade returns the weighted grade in percent over the questions that have tests.
//
// ErrNoGradedQuestions is returned together with 0 when nothing could be graded.
func (l *Ledger) OverallGrade() (float64, error) {
	earned, total := 0.0, 0.0
	for _, q := range l.questions {
		if q.NumTests == 0 {
			continue
		}
		earned += q.Grade()
		total += q.Weight
	}
	if total <= 0 {
		return 0, ErrNoGradedQuestions
	}
	return earned / total * 100, nil
}

// Reset clears all counters.
func (l *Ledger) Reset() {
	l.questions = make(map[int]*QuestionStat)
}
