package storage

import (
	"hwgrade/service/etc"

	"github.com/pkg/errors"
)

// FromConfig creates the storage provider of the configuration.
// A nil provider is returned when storage is disabled.
func FromConfig(cfg *etc.Configuration) (Provider, error) {
	switch cfg.Storage.Type {
	case "", "none":
		return nil, nil
	case "local":
		if cfg.Storage.Local.Path == "" {
			return nil, errors.New("local storage path is not set")
		}
		return NewLocal(cfg.Storage.Local.Path), nil
	case "minio":
		conf := cfg.Storage.MinIO
		return NewMinIO(MinIOOptions{
			Endpoint:        conf.Endpoint,
			AccessKeyID:     conf.AccessKeyID,
			SecretAccessKey: conf.SecretAccessKey,
			UseSSL:          conf.UseSSL,
			Bucket:          conf.Bucket,
		})
	default:
		return nil, errors.Errorf("invalid storage type '%s', expected none, local or minio",
			cfg.Storage.Type)
	}
}
