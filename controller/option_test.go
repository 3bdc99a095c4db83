package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aig-studio/artist-image-generator/model"
	"github.com/aig-studio/artist-image-generator/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putSettings(t *testing.T, env *testEnv, payload string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w, body := env.do(t, req)
	return w.Code, body
}

func TestUpdateSettingsKeepsValidLicense(t *testing.T) {
	env := newTestEnv()
	code, body := putSettings(t, env, `{"artist_image_generator_openai_api_key_0":" sk-abcdef ","artist_image_generator_aig_licence_key_0":" LIC-1234 "}`)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []string{"LIC-1234"}, env.gate.validated)
	require.Len(t, env.store.saved, 1)
	assert.Equal(t, model.Settings{OpenAIAPIKey: "sk-abcdef", LicenseKey: "LIC-1234"}, env.store.saved[0])
	assert.Zero(t, env.gate.cleared)
	assert.Equal(t, "*****cdef", body["data"].(map[string]any)[model.FieldOpenAIAPIKey])
}

func TestUpdateSettingsDropsRejectedLicense(t *testing.T) {
	env := newTestEnv()
	env.gate.validateErr = service.ErrInvalidLicense

	code, body := putSettings(t, env, `{"artist_image_generator_openai_api_key_0":"sk-abcdef","artist_image_generator_aig_licence_key_0":"BAD"}`)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid license key. Please enter a valid license key.", body["message"])
	require.Len(t, env.store.saved, 1)
	assert.Equal(t, model.Settings{OpenAIAPIKey: "sk-abcdef"}, env.store.saved[0])
}

func TestUpdateSettingsWithoutLicenseSkipsGate(t *testing.T) {
	env := newTestEnv()
	code, _ := putSettings(t, env, `{"artist_image_generator_openai_api_key_0":"sk-abcdef"}`)

	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, env.gate.validated)
}

func TestUpdateSettingsClearingLicenseLocksEdit(t *testing.T) {
	env := newTestEnv()
	env.store.settings = model.Settings{OpenAIAPIKey: "sk-abcdef", LicenseKey: "LIC-1234"}
	env.gate.state = service.LicenseStateValid

	code, _ := putSettings(t, env, `{"artist_image_generator_openai_api_key_0":"sk-abcdef","artist_image_generator_aig_licence_key_0":""}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, env.gate.cleared)

	_, body := env.do(t, httptest.NewRequest(http.MethodGet, "/settings", nil))
	assert.Equal(t, false, body["data"].(map[string]any)["valid_licence"])
}

func TestUpdateSettingsRejectsBadPayload(t *testing.T) {
	env := newTestEnv()
	code, _ := putSettings(t, env, `not json`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = putSettings(t, env, `{"artist_image_generator_openai_api_key_0":"`+strings.Repeat("k", 600)+`"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Empty(t, env.store.saved)
}

func TestGetSettingsMasksKeys(t *testing.T) {
	env := newTestEnv()
	env.store.settings = model.Settings{OpenAIAPIKey: "sk-abcdef", LicenseKey: "LIC-1234"}
	env.gate.state = service.LicenseStateValid

	_, body := env.do(t, httptest.NewRequest(http.MethodGet, "/settings", nil))
	data := body["data"].(map[string]any)
	assert.Equal(t, "*****cdef", data[model.FieldOpenAIAPIKey])
	assert.Equal(t, "****1234", data[model.FieldLicenseKey])
	assert.Equal(t, true, data["valid_licence"])
}
