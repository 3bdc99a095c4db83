package service

import (
	"context"

	"github.com/aig-studio/artist-image-generator/model"
	"github.com/aig-studio/artist-image-generator/relay/channel/lmfwc"
)

// ConfigStore persists plugin settings and the cached license object.
type ConfigStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	LoadSettings(ctx context.Context) (model.Settings, error)
	SaveSettings(ctx context.Context, settings model.Settings) error
}

type LicenseClient interface {
	ValidateStatus(ctx context.Context, key string) (*lmfwc.ValidStatus, error)
	Activate(ctx context.Context, key string) (*lmfwc.License, error)
}

// AssetImporter downloads a remote image into the media library and returns its id.
type AssetImporter interface {
	Import(ctx context.Context, sourceURL string, altText string) (int64, error)
}

type Scheduler interface {
	Schedule(name string, spec string, job func(ctx context.Context)) error
	Start()
	Stop()
}
