package report

import (
	"context"
	"path"
	"path/filepath"

	"hwgrade/model"
	"hwgrade/service/storage"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Sink is a destination of reports.
type Sink interface {
	Name() string
	Save(ctx context.Context, r *Report) error
}

// Publish saves the report to every sink concurrently.
// The first error cancels the other sinks and is returned.
func Publish(ctx context.Context, r *Report, sinks ...Sink) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, sink := range sinks {
		g.Go(func() error {
			if err := sink.Save(ctx, r); err != nil {
				return errors.Wrapf(err, "publish report to %s", sink.Name())
			}
			log.WithFields(log.Fields{
				"sink": sink.Name(),
				"run":  r.RunID,
			}).Debug("Published report")
			return nil
		})
	}
	return g.Wait()
}

// StorageSink writes reports to a storage provider as "<prefix>/<homework>/<run id>.yaml".
type StorageSink struct {
	Provider storage.Provider
	Prefix   string
}

func (s *StorageSink) Name() string { return "storage" }

// Path returns the object path of the report.
func (s *StorageSink) Path(r *Report) string {
	return path.Join(s.Prefix, r.Homework, r.RunID.String()+".yaml")
}

func (s *StorageSink) Save(ctx context.Context, r *Report) error {
	data, err := r.YAML()
	if err != nil {
		return err
	}
	return s.Provider.Write(ctx, s.Path(r), data)
}

// Load reads the stored reports of the homework, in lexical order of their paths.
func (s *StorageSink) Load(ctx context.Context, homework string) ([]*Report, error) {
	paths, err := s.Provider.List(ctx, path.Join(s.Prefix, homework)+"/")
	if err != nil {
		return nil, err
	}
	reports := make([]*Report, 0, len(paths))
	for _, p := range paths {
		data, err := s.Provider.Read(ctx, p)
		if err != nil {
			return nil, err
		}
		r, err := Parse(data)
		if err != nil {
			return nil, errors.Wrapf(err, "report %s", p)
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// FileSink writes the report to a local file.
type FileSink struct {
	Path string
}

func (s *FileSink) Name() string { return "file " + s.Path }

func (s *FileSink) Save(ctx context.Context, r *Report) error {
	data, err := r.YAML()
	if err != nil {
		return err
	}
	dir, base := filepath.Split(s.Path)
	if dir == "" {
		dir = "."
	}
	return storage.NewLocal(dir).Write(ctx, base, data)
}

// DBSink saves reports in the database.
type DBSink struct {
	DB *gorm.DB
}

func (s *DBSink) Name() string { return "database" }

func (s *DBSink) Save(ctx context.Context, r *Report) error {
	return model.CreateGradeRun(s.DB.WithContext(ctx), r.Model())
}
