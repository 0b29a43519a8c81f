package minio

import (
	"context"

	"github.com/jotapp/jot/config"
	"github.com/jotapp/jot/services/files"
	"go.uber.org/fx"
)

func ProvideStorageClient(cfg *config.Config) (files.ObjectStore, error) {
	return NewClient(context.Background(), &cfg.Storage)
}

var Module = fx.Options(
	fx.Provide(ProvideStorageClient),
)
