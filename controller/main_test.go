package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aig-studio/artist-image-generator/model"
	relaymodel "github.com/aig-studio/artist-image-generator/relay/model"
	"github.com/aig-studio/artist-image-generator/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fakeRelay struct {
	form     *relaymodel.ImageForm
	settings relaymodel.RequestSettings
	result   *relaymodel.ImageResult
}

func (f *fakeRelay) DoPostRequest(ctx context.Context, form *relaymodel.ImageForm, settings relaymodel.RequestSettings) *relaymodel.ImageResult {
	f.form, f.settings = form, settings
	if f.result != nil {
		return f.result
	}
	return relaymodel.NewImageResult()
}

type fakeGate struct {
	state         service.LicenseState
	validateErr   error
	revalidateErr error
	validated     []string
	cleared       int
}

func (f *fakeGate) State(ctx context.Context) service.LicenseState { return f.state }

func (f *fakeGate) IsEditAllowed(ctx context.Context) bool {
	return f.state == service.LicenseStateValid
}

func (f *fakeGate) ValidateLicense(ctx context.Context, key string, activate bool) error {
	f.validated = append(f.validated, key)
	return f.validateErr
}

func (f *fakeGate) Revalidate(ctx context.Context) error { return f.revalidateErr }

func (f *fakeGate) ClearLicense(ctx context.Context) error {
	f.cleared++
	f.state = service.LicenseStateUnknown
	return nil
}

type fakeStore struct {
	mu       sync.Mutex
	settings model.Settings
	saved    []model.Settings
}

func (s *fakeStore) Get(ctx context.Context, key string) (string, error) {
	return "", model.ErrOptionNotFound
}

func (s *fakeStore) Set(ctx context.Context, key string, value string) error { return nil }

func (s *fakeStore) Delete(ctx context.Context, key string) error { return nil }

func (s *fakeStore) LoadSettings(ctx context.Context) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings, nil
}

func (s *fakeStore) SaveSettings(ctx context.Context, settings model.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.saved = append(s.saved, settings)
	return nil
}

type fakeImporter struct {
	url, alt string
	id       int64
	err      error
}

func (f *fakeImporter) Import(ctx context.Context, sourceURL string, altText string) (int64, error) {
	f.url, f.alt = sourceURL, altText
	return f.id, f.err
}

type fakeMedia struct {
	media map[int64]*model.Media
}

func (f *fakeMedia) GetById(ctx context.Context, id int64) (*model.Media, error) {
	if m, ok := f.media[id]; ok {
		return m, nil
	}
	return nil, model.ErrMediaNotFound
}

var errBoom = errors.New("boom")

type testEnv struct {
	relay    *fakeRelay
	gate     *fakeGate
	store    *fakeStore
	importer *fakeImporter
	media    *fakeMedia
	router   *gin.Engine
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)
	env := &testEnv{
		relay:    &fakeRelay{},
		gate:     &fakeGate{state: service.LicenseStateUnknown},
		store:    &fakeStore{},
		importer: &fakeImporter{},
		media:    &fakeMedia{media: map[int64]*model.Media{}},
	}
	h := NewHandlers(env.relay, env.gate, env.store, env.importer, env.media)
	r := gin.New()
	r.GET("/status", h.GetStatus)
	r.GET("/images", h.GetImagePage)
	r.POST("/images", h.PostImageRequest)
	r.POST("/media", h.AddToMedia)
	r.GET("/media/:id", h.GetMedia)
	r.GET("/settings", h.GetSettings)
	r.PUT("/settings", h.UpdateSettings)
	r.GET("/license", h.GetLicense)
	r.POST("/license/revalidate", h.RevalidateLicense)
	env.router = r
	return env
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}
