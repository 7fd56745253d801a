package db

import (
	"context"
	"testing"

	"hwgrade/model"
	"hwgrade/service/etc"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func testConfig() *etc.Configuration {
	c := &etc.Configuration{}
	c.Database.Postgres.Host = "localhost"
	c.Database.Postgres.Port = 5432
	c.Database.Postgres.User = "hwgrade"
	c.Database.Postgres.Password = "secret"
	c.Database.Postgres.DBName = "grades"
	return c
}

// dryRun opens a session which builds statements without a server.
func dryRun(t *testing.T) *gorm.DB {
	db, err := gorm.Open(postgres.Open(DSN(testConfig())), &gorm.Config{
		Logger:               Logger(),
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestDSN(t *testing.T) {
	c := testConfig()
	assert.Equal(t,
		"host=localhost port=5432 user=hwgrade password=secret dbname=grades sslmode=disable",
		DSN(c))

	c.Database.Postgres.UseSSL = true
	assert.Equal(t, "host=localhost port=5432 user=hwgrade password=secret dbname=grades", DSN(c))
}

func TestOpenDisabled(t *testing.T) {
	_, err := Open(testConfig())
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestOpenRedisDisabled(t *testing.T) {
	_, err := OpenRedis(context.Background(), testConfig())
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestOpenRedisUnreachable(t *testing.T) {
	c := testConfig()
	c.Database.Redis.Enabled = true
	c.Database.Redis.Addr = "127.0.0.1:1"
	_, err := OpenRedis(context.Background(), c)
	assert.ErrorContains(t, err, "redis connection failed")
}

func TestGetGradeRunStatement(t *testing.T) {
	db := dryRun(t)
	_, err := model.GetGradeRun(db, "hw1", uuid.New())
	assert.NoError(t, err)
}

func TestCreateGradeRun(t *testing.T) {
	db := dryRun(t)
	run := &model.GradeRun{Homework: "hw1", Grade: 75, Graded: true}

	require.NoError(t, model.CreateGradeRun(db, run))
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.NotNil(t, run.FailedTests)

	stmt := db.Create(&model.GradeRun{ID: uuid.New(), Homework: "hw1"}).Statement
	assert.Contains(t, stmt.SQL.String(), `INSERT INTO "grade_runs"`)
}

func TestListGradeRunsStatement(t *testing.T) {
	db := dryRun(t)
	stmt := db.Preload("Questions").Where("homework = ?", "hw5").
		Order("started_at desc").Limit(3).Find(&[]model.GradeRun{}).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, `FROM "grade_runs"`)
	assert.Contains(t, sql, "ORDER BY started_at desc")
	assert.Contains(t, sql, "LIMIT 3")

	_, err := model.ListGradeRuns(db, "hw5", 0)
	assert.NoError(t, err)
}
