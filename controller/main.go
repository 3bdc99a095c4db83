package controller

import (
	"context"

	"github.com/aig-studio/artist-image-generator/model"
	relaymodel "github.com/aig-studio/artist-image-generator/relay/model"
	"github.com/aig-studio/artist-image-generator/service"
)

type ImageRelay interface {
	DoPostRequest(ctx context.Context, form *relaymodel.ImageForm, settings relaymodel.RequestSettings) *relaymodel.ImageResult
}

type LicenseGate interface {
	State(ctx context.Context) service.LicenseState
	IsEditAllowed(ctx context.Context) bool
	ValidateLicense(ctx context.Context, key string, activate bool) error
	Revalidate(ctx context.Context) error
	ClearLicense(ctx context.Context) error
}

type MediaFinder interface {
	GetById(ctx context.Context, id int64) (*model.Media, error)
}

// Handlers carries the collaborators of the HTTP handlers.
type Handlers struct {
	Relay    ImageRelay
	Gate     LicenseGate
	Store    service.ConfigStore
	Importer service.AssetImporter
	Media    MediaFinder
}

func NewHandlers(relay ImageRelay, gate LicenseGate, store service.ConfigStore, importer service.AssetImporter, media MediaFinder) *Handlers {
	return &Handlers{
		Relay:    relay,
		Gate:     gate,
		Store:    store,
		Importer: importer,
		Media:    media,
	}
}
