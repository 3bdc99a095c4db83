package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aig-studio/artist-image-generator/common/helper"
	"github.com/aig-studio/artist-image-generator/common/logger"
	"github.com/aig-studio/artist-image-generator/model"
	"github.com/aig-studio/artist-image-generator/relay/channel/lmfwc"
)

var (
	ErrInvalidLicense          = errors.New("Invalid license key. Please enter a valid license key.")
	ErrLicenseActivationFailed = errors.New("License activation failed.")
)

type LicenseState string

const (
	LicenseStateUnknown LicenseState = "unknown"
	LicenseStateValid   LicenseState = "valid"
	LicenseStateInvalid LicenseState = "invalid"
)

// LicenseGate decides whether edit is unlocked. Reads only look at the cached license object;
// the license server is contacted on settings save and on the scheduled revalidation.
type LicenseGate struct {
	store  ConfigStore
	client LicenseClient
	now    func() time.Time
}

func NewLicenseGate(store ConfigStore, client LicenseClient) *LicenseGate {
	return &LicenseGate{store: store, client: client, now: time.Now}
}

func (g *LicenseGate) cachedLicense(ctx context.Context) (*lmfwc.License, error) {
	raw, err := g.store.Get(ctx, model.OptionLicenseCache)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, model.ErrOptionNotFound
	}
	var license lmfwc.License
	if err = json.Unmarshal([]byte(raw), &license); err != nil {
		return nil, fmt.Errorf("malformed cached license: %w", err)
	}
	return &license, nil
}

func (g *LicenseGate) cacheLicense(ctx context.Context, license *lmfwc.License) error {
	raw, err := json.Marshal(license)
	if err != nil {
		return err
	}
	return g.store.Set(ctx, model.OptionLicenseCache, string(raw))
}

func (g *LicenseGate) State(ctx context.Context) LicenseState {
	license, err := g.cachedLicense(ctx)
	if errors.Is(err, model.ErrOptionNotFound) {
		return LicenseStateUnknown
	}
	if err != nil {
		logger.Warnf(ctx, "failed to read cached license: %s", err.Error())
		return LicenseStateInvalid
	}
	if license.Status == lmfwc.StatusDelivered && !license.Expired(g.now()) {
		return LicenseStateValid
	}
	return LicenseStateInvalid
}

func (g *LicenseGate) IsEditAllowed(ctx context.Context) bool {
	return g.State(ctx) == LicenseStateValid
}

// ValidateLicense checks the key remotely and, when asked to, activates it unless the cached
// license is already valid for that key.
func (g *LicenseGate) ValidateLicense(ctx context.Context, key string, activate bool) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrInvalidLicense
	}
	status, err := g.client.ValidateStatus(ctx, key)
	if err != nil {
		logger.Errorf(ctx, "license validation failed for %s: %s", helper.Mask(key), err.Error())
		return ErrInvalidLicense
	}
	if !status.IsValid {
		return ErrInvalidLicense
	}
	if !activate || g.alreadyActivated(ctx, key) {
		return nil
	}

	license, err := g.client.Activate(ctx, key)
	if err != nil {
		logger.Errorf(ctx, "license activation failed for %s: %s", helper.Mask(key), err.Error())
		return ErrLicenseActivationFailed
	}
	if err = g.cacheLicense(ctx, license); err != nil {
		logger.Errorf(ctx, "failed to cache license: %s", err.Error())
		return ErrLicenseActivationFailed
	}
	logger.Infof(ctx, "license %s activated", helper.Mask(key))
	return nil
}

func (g *LicenseGate) alreadyActivated(ctx context.Context, key string) bool {
	if g.State(ctx) != LicenseStateValid {
		return false
	}
	license, err := g.cachedLicense(ctx)
	if err != nil {
		return false
	}
	return license.LicenseKey == "" || license.LicenseKey == key
}

// ClearLicense forgets the cached license so the gate goes back to unknown.
func (g *LicenseGate) ClearLicense(ctx context.Context) error {
	if err := g.store.Delete(ctx, model.OptionLicenseCache); err != nil {
		return fmt.Errorf("failed to clear cached license: %w", err)
	}
	return nil
}

// Revalidate refreshes the cached license from the server. A network failure keeps the
// current state. Without a stored key the cached license is dropped.
func (g *LicenseGate) Revalidate(ctx context.Context) error {
	settings, err := g.store.LoadSettings(ctx)
	if err != nil {
		return err
	}
	key := strings.TrimSpace(settings.LicenseKey)
	if key == "" {
		return g.ClearLicense(ctx)
	}

	status, err := g.client.ValidateStatus(ctx, key)
	if err != nil {
		logger.Warnf(ctx, "license revalidation skipped: %s", err.Error())
		return err
	}

	cached, err := g.cachedLicense(ctx)
	if err != nil && !errors.Is(err, model.ErrOptionNotFound) {
		logger.Warnf(ctx, "cached license unreadable, replacing it: %s", err.Error())
		cached = nil
	}

	if !status.IsValid {
		if cached == nil {
			cached = &lmfwc.License{LicenseKey: key}
		}
		cached.Status = lmfwc.StatusInactive
		logger.Warnf(ctx, "license %s is no longer valid", helper.Mask(key))
		return g.cacheLicense(ctx, cached)
	}
	// a key that was never activated stays locked until it is saved again
	if cached == nil || status.License == nil {
		return nil
	}
	return g.cacheLicense(ctx, status.License)
}
