package report

import (
	"context"
	"path"
	"sort"

	"hwgrade/model"
	"hwgrade/service/storage"

	"github.com/go-redis/redis/v9"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a report does not exist.
var ErrNotFound = errors.New("report not found")

// Archive reads past reports from the database, or from the storage when
// there is no database.
type Archive struct {
	DB       *gorm.DB
	Provider storage.Provider
	Prefix   string
	// Cache holds the latest report of each homework, optional.
	Cache redis.Cmdable
}

// ErrNoArchive is returned when neither a database nor a storage is configured.
var ErrNoArchive = errors.New("history needs a database or a storage, both are disabled")

func (a *Archive) sink() *StorageSink {
	return &StorageSink{Provider: a.Provider, Prefix: a.Prefix}
}

// History returns the reports of the homework, newest first.
// All reports are returned if limit is not positive.
func (a *Archive) History(ctx context.Context, homework string, limit int) ([]*Report, error) {
	if a.DB != nil {
		runs, err := model.ListGradeRuns(a.DB.WithContext(ctx), homework, limit)
		if err != nil {
			return nil, errors.Wrap(err, "list grade runs")
		}
		reports := make([]*Report, 0, len(runs))
		for i := range runs {
			reports = append(reports, FromModel(&runs[i]))
		}
		return reports, nil
	}
	if a.Provider == nil {
		return nil, ErrNoArchive
	}

	reports, err := a.sink().Load(ctx, homework)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].StartedAt.After(reports[j].StartedAt)
	})
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

// Get returns a single report of the homework.
func (a *Archive) Get(ctx context.Context, homework string, id uuid.UUID) (*Report, error) {
	if a.DB != nil {
		run, err := model.GetGradeRun(a.DB.WithContext(ctx), homework, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, errors.Wrap(err, "get grade run")
		}
		return FromModel(run), nil
	}
	if a.Provider == nil {
		return nil, ErrNoArchive
	}

	p := path.Join(a.Prefix, homework, id.String()+".yaml")
	data, err := a.Provider.Read(ctx, p)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	r, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "report %s", p)
	}
	return r, nil
}

// Latest returns the newest report of the homework.
func (a *Archive) Latest(ctx context.Context, homework string) (*Report, error) {
	if a.Cache != nil {
		r, err := loadLatest(ctx, a.Cache, homework)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, ErrNotFound) {
			log.WithError(err).WithField("homework", homework).Warn("Failed to read cached report")
		}
	}
	reports, err := a.History(ctx, homework, 1)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, ErrNotFound
	}
	return reports[0], nil
}
