package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GradeRun is a graded run of a homework in database.
type GradeRun struct {
	ID       uuid.UUID `gorm:"primary_key;type:uuid" json:"id"`
	Homework string    `gorm:"not null;index" json:"homework"`

	StartedAt time.Time     `gorm:"not null" json:"started_at"`
	Elapsed   time.Duration `gorm:"not null" json:"elapsed"`

	// Iterations is the number of times the tests were run.
	Iterations int `gorm:"not null" json:"iterations"`

	NumTests   int `gorm:"not null" json:"num_tests"`
	NumPassed  int `gorm:"not null" json:"num_passed"`
	NumFailed  int `gorm:"not null" json:"num_failed"`
	NumSkipped int `gorm:"not null" json:"num_skipped"`

	// Grade is the overall grade in percent, valid only if Graded is set.
	Grade  float64 `gorm:"not null" json:"grade"`
	Graded bool    `gorm:"not null" json:"graded"`

	// Passed is set if every test of every iteration passed.
	Passed bool `gorm:"not null" json:"passed"`

	FailedTests pq.StringArray `gorm:"not null;type:text[]" json:"failed_tests"`

	Questions []QuestionResult `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"questions"`

	CreatedAt time.Time `json:"created_at"`
}

// QuestionResult is the result of a single question of a grade run.
type QuestionResult struct {
	ID    uint      `gorm:"primary_key" json:"-"`
	RunID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`

	Question  int     `gorm:"not null" json:"question"`
	Name      string  `gorm:"not null" json:"name"`
	Weight    float64 `gorm:"not null" json:"weight"`
	NumTests  int     `gorm:"not null" json:"num_tests"`
	NumPassed int     `gorm:"not null" json:"num_passed"`
	Score     float64 `gorm:"not null" json:"score"`
}

// CreateGradeRun saves the run together with its question results.
func CreateGradeRun(db *gorm.DB, run *GradeRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.FailedTests == nil {
		run.FailedTests = pq.StringArray{}
	}
	return db.Create(run).Error
}

// ListGradeRuns returns the latest runs of the homework, newest first.
//
// All runs are returned if limit is not positive.
func ListGradeRuns(db *gorm.DB, homework string, limit int) ([]GradeRun, error) {
	var runs []GradeRun
	query := db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("question")
	}).Where("homework = ?", homework).Order("started_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&runs).Error
	return runs, err
}

// GetGradeRun returns the run of the homework with the given id.
func GetGradeRun(db *gorm.DB, homework string, id uuid.UUID) (*GradeRun, error) {
	run := &GradeRun{}
	err := db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("question")
	}).Where("id = ? AND homework = ?", id, homework).First(run).Error
	return run, err
}
