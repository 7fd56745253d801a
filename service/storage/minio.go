package storage

import (
	"bytes"
	"context"
	"io"
	"sort"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// MinIOOptions are the connection options of a MinIO storage backend.
type MinIOOptions struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Bucket          string
}

// MinIO is a storage backend for minio
type MinIO struct {
	client *minio.Client
	bucket string

	bucketReady bool
}

// NewMinIO creates a new MinIO storage backend.
// The bucket is created on the first write if it does not exist.
func NewMinIO(opts MinIOOptions) (*MinIO, error) {
	if opts.Bucket == "" {
		return nil, errors.New("minio bucket is not set")
	}
	client, err := minio.New(
		opts.Endpoint,
		&minio.Options{
			Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
			Secure: opts.UseSSL,
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "initialize minio client")
	}
	log.WithField("endpoint", opts.Endpoint).Debug("MinIO client initialized")
	return &MinIO{client: client, bucket: opts.Bucket}, nil
}

func (m *MinIO) ensureBucket(ctx context.Context) error {
	if m.bucketReady {
		return nil
	}
	exist, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return errors.Wrapf(err, "check bucket %s", m.bucket)
	}
	if !exist {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return errors.Wrapf(err, "make bucket %s", m.bucket)
		}
		log.WithField("bucket", m.bucket).Info("Created bucket")
	}
	m.bucketReady = true
	return nil
}

// Read returns the bytes of the object
func (m *MinIO) Read(ctx context.Context, path string) ([]byte, error) {
	reader, err := m.client.GetObject(ctx, m.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "get object %s", path)
	}
	defer func(reader *minio.Object) {
		err := reader.Close()
		if err != nil {
			log.WithError(err).Error("Failed to close minio reader")
		}
	}(reader)
	data, err := io.ReadAll(reader)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, errors.Wrap(ErrNotFound, path)
		}
		return nil, errors.Wrapf(err, "read object %s", path)
	}
	return data, nil
}

// Write writes the object to minio
func (m *MinIO) Write(ctx context.Context, path string, data []byte) error {
	if err := m.ensureBucket(ctx); err != nil {
		return err
	}
	_, err := m.client.PutObject(
		ctx,
		m.bucket,
		path,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{},
	)
	return errors.Wrapf(err, "put object %s", path)
}

// List lists the objects under prefix
func (m *MinIO) List(ctx context.Context, prefix string) ([]string, error) {
	var paths []string
	for object := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if err := object.Err; err != nil {
			return nil, errors.Wrapf(err, "list objects of %s", prefix)
		}
		paths = append(paths, object.Key)
	}
	sort.Strings(paths)
	return paths, nil
}
