package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aig-studio/artist-image-generator/common/config"
	"github.com/aig-studio/artist-image-generator/controller"
	"github.com/aig-studio/artist-image-generator/model"
	relaymodel "github.com/aig-studio/artist-image-generator/relay/model"
	"github.com/aig-studio/artist-image-generator/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRelay struct{}

func (stubRelay) DoPostRequest(ctx context.Context, form *relaymodel.ImageForm, settings relaymodel.RequestSettings) *relaymodel.ImageResult {
	return relaymodel.NewImageResult()
}

type stubGate struct{}

func (stubGate) State(ctx context.Context) service.LicenseState {
	return service.LicenseStateUnknown
}

func (stubGate) IsEditAllowed(ctx context.Context) bool { return false }

func (stubGate) ValidateLicense(ctx context.Context, key string, activate bool) error {
	return nil
}

func (stubGate) Revalidate(ctx context.Context) error { return nil }

func (stubGate) ClearLicense(ctx context.Context) error { return nil }

type stubStore struct{}

func (stubStore) Get(ctx context.Context, key string) (string, error) {
	return "", model.ErrOptionNotFound
}

func (stubStore) Set(ctx context.Context, key string, value string) error { return nil }

func (stubStore) Delete(ctx context.Context, key string) error { return nil }

func (stubStore) LoadSettings(ctx context.Context) (model.Settings, error) {
	return model.Settings{}, nil
}

func (stubStore) SaveSettings(ctx context.Context, settings model.Settings) error { return nil }

func newTestRouter(t *testing.T, uploadDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := controller.NewHandlers(stubRelay{}, stubGate{}, stubStore{}, nil, nil)
	r := gin.New()
	SetRouter(r, h, uploadDir)
	return r
}

func TestRoutesRequireAdminToken(t *testing.T) {
	prev := config.AdminToken
	config.AdminToken = "secret"
	t.Cleanup(func() { config.AdminToken = prev })
	r := newTestRouter(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/images", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/images", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServesLocalUploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fox.png"), []byte("png"), 0644))
	r := newTestRouter(t, dir)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, config.UploadBaseURL+"/fox.png", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())
}
