package grading

import (
	"regexp"

	"github.com/pkg/errors"
)

// Question is a graded question of a homework.
type Question struct {
	// ID is the unique id of the question in its rubric.
	ID int `yaml:"id" json:"id" mapstructure:"id"`

	// Name is a human-readable name of the question.
	Name string `yaml:"name" json:"name" mapstructure:"name"`

	// Weight is the point value of the question.
	Weight float64 `yaml:"weight" json:"weight" mapstructure:"weight"`

	// Tests are regular expressions matched against full Go test names, e.g. "TestAdd/rows=1".
	// A test belongs to the first question which has a matching pattern.
	Tests []string `yaml:"tests" json:"tests" mapstructure:"tests"`

	patterns []*regexp.Regexp
}

// Rubric maps tests to the questions they are graded for.
type Rubric struct {
	Name      string
	Questions []*Question
}

// NewRubric validates the questions and compiles their test patterns.
func NewRubric(name string, questions []Question) (*Rubric, error) {
	r := &Rubric{Name: name, Questions: make([]*Question, 0, len(questions))}
	seen := make(map[int]bool, len(questions))
	for i := range questions {
		q := questions[i]
		if q.ID < 0 {
			return nil, errors.Errorf("question '%s' has negative id %d", q.Name, q.ID)
		}
		if seen[q.ID] {
			return nil, errors.Errorf("duplicate question id %d", q.ID)
		}
		seen[q.ID] = true
		if q.Weight < 0 {
			return nil, errors.Errorf("question %d has negative weight %v", q.ID, q.Weight)
		}
		q.patterns = make([]*regexp.Regexp, 0, len(q.Tests))
		for _, pat := range q.Tests {
			re, err := regexp.Compile(pat)
			if err != nil {
				return nil, errors.Wrapf(err, "question %d: invalid test pattern '%s'", q.ID, pat)
			}
			q.patterns = append(q.patterns, re)
		}
		r.Questions = append(r.Questions, &q)
	}
	return r, nil
}

// Match returns the question the test is graded for.
func (r *Rubric) Match(testName string) (*Question, bool) {
	for _, q := range r.Questions {
		for _, re := range q.patterns {
			if re.MatchString(testName) {
				return q, true
			}
		}
	}
	return nil, false
}

// Question returns the question with the given id.
func (r *Rubric) Question(id int) (*Question, bool) {
	for _, q := range r.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return nil, false
}

// TotalWeight returns the sum of the weights of all questions.
func (r *Rubric) TotalWeight() float64 {
	total := 0.0
	for _, q := range r.Questions {
		total += q.Weight
	}
	return total
}
