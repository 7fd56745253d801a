package listener

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"hwgrade/grading"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	infoTag  = "[    INFO  ] "
	gradeTag = "[    GRADE ] "
)

// GradeListener attributes tests to the questions of a rubric and keeps the ledger.
//
// A matching test registers its question when it starts and records its result when it
// ends. The ledger is reset at the start of every iteration.
type GradeListener struct {
	EmptyReporter

	rubric *grading.Rubric
	ledger *grading.Ledger
	out    io.Writer

	// ShowRunningGrade prints the grade and the question breakdown after every graded test.
	ShowRunningGrade bool

	current map[string]*grading.Question
}

// NewGradeListener creates a grade listener writing its tagged lines to out.
func NewGradeListener(rubric *grading.Rubric, ledger *grading.Ledger, out io.Writer) *GradeListener {
	return &GradeListener{
		rubric:  rubric,
		ledger:  ledger,
		out:     out,
		current: make(map[string]*grading.Question),
	}
}

// Ledger returns the ledger of the listener.
func (g *GradeListener) Ledger() *grading.Ledger { return g.ledger }

func (g *GradeListener) OnProgramStart(*Run) error {
	_, err := fmt.Fprintf(g.out, "%sGrading %s: %d questions, %s points\n", infoTag,
		g.rubric.Name, len(g.rubric.Questions), formatFloat(g.rubric.TotalWeight()))
	return err
}

func (g *GradeListener) OnIterationStart(*Run, int) error {
	g.ledger.Reset()
	g.current = make(map[string]*grading.Question)
	return nil
}

func (g *GradeListener) OnTestStart(test *TestInfo) error {
	q, ok := g.rubric.Match(test.Name)
	if !ok {
		log.WithField("test", test.Name).Debug("Test is not graded")
		return nil
	}
	g.ledger.RegisterQuestion(q.ID, q.Weight)
	g.current[test.Name] = q
	return nil
}

func (g *GradeListener) OnTestEnd(test *TestInfo) error {
	q, ok := g.current[test.Name]
	if !ok {
		return nil
	}
	delete(g.current, test.Name)
	if err := g.ledger.RecordResult(q.ID, !test.Failed()); err != nil {
		return errors.Wrapf(err, "record result of %s", test.Name)
	}
	if g.ShowRunningGrade {
		return g.printRunningGrade()
	}
	return nil
}

func (g *GradeListener) printRunningGrade() error {
	grade, err := g.ledger.OverallGrade()
	if err != nil {
		// Only zero-weight questions so far.
		return nil
	}
	parts := make([]string, 0)
	for _, v := range g.ledger.QuestionGrades() {
		parts = append(parts, formatFloat(v))
	}
	_, err = fmt.Fprintf(g.out, "%s%s%%\n%sQuestion breakdown: [ %s ]\n",
		gradeTag, formatFloat(grade), gradeTag, strings.Join(parts, " "))
	return err
}

// OnProgramEnd prints the final grade of the last iteration.
func (g *GradeListener) OnProgramEnd(*Run) error {
	b := strings.Builder{}
	grade, err := g.ledger.OverallGrade()
	if errors.Is(err, grading.ErrNoGradedQuestions) {
		b.WriteString(gradeTag + "No graded tests ran\n")
		_, err := io.WriteString(g.out, b.String())
		return err
	}
	b.WriteString(fmt.Sprintf("%s%s%%\n", gradeTag, formatFloat(grade)))
	b.WriteString(gradeTag + "Question breakdown:\n")
	for _, q := range g.rubric.Questions {
		stat, _ := g.ledger.Question(q.ID)
		b.WriteString(fmt.Sprintf("%s  %d %s: %s/%s (%d/%d)\n", gradeTag, q.ID, q.Name,
			formatFloat(stat.Grade()), formatFloat(q.Weight), stat.NumPassed, stat.NumTests))
	}
	_, err = io.WriteString(g.out, b.String())
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
