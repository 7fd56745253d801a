package db

import (
	"context"
	"fmt"
	"time"

	"hwgrade/model"
	"hwgrade/service/etc"

	"github.com/go-redis/redis/v9"
	gormloggerlogrus "github.com/nekomeowww/gorm-logger-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrDisabled is returned when the database is disabled in the configuration.
var ErrDisabled = errors.New("database is disabled")

// DSN returns the postgres data source name of the configuration.
func DSN(c *etc.Configuration) string {
	conf := c.Database.Postgres
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		conf.Host, conf.Port, conf.User, conf.Password, conf.DBName)
	if !conf.UseSSL {
		dsn += " sslmode=disable"
	}
	return dsn
}

// Logger returns a gorm logger which writes through logrus.
func Logger() logger.Interface {
	return gormloggerlogrus.New(gormloggerlogrus.Options{
		Logger:                    log.NewEntry(log.StandardLogger()),
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		SlowThreshold:             time.Millisecond * 200,
		FileWithLineNumField:      "file",
	})
}

// Open connects to postgres and migrates the grade tables.
func Open(c *etc.Configuration) (*gorm.DB, error) {
	if !c.Database.Enabled {
		return nil, ErrDisabled
	}
	db, err := gorm.Open(postgres.Open(DSN(c)), &gorm.Config{Logger: Logger()})
	if err != nil {
		return nil, errors.Wrap(err, "postgres connection failed")
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.WithField("host", c.Database.Postgres.Host).Debug("Postgres connected")
	return db, nil
}

// Migrate creates or updates the grade tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.GradeRun{}, &model.QuestionResult{}); err != nil {
		return errors.Wrap(err, "postgres migration failed")
	}
	return nil
}

// OpenRedis connects to redis and checks the connection.
func OpenRedis(ctx context.Context, c *etc.Configuration) (*redis.Client, error) {
	conf := c.Database.Redis
	if !conf.Enabled {
		return nil, ErrDisabled
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, errors.Wrap(err, "redis connection failed")
	}
	log.WithField("addr", conf.Addr).Debug("Redis connected")
	return rdb, nil
}
