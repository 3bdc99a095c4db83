package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aig-studio/artist-image-generator/service"
	"github.com/stretchr/testify/assert"
)

func TestGetLicense(t *testing.T) {
	env := newTestEnv()
	env.gate.state = service.LicenseStateInvalid

	_, body := env.do(t, httptest.NewRequest(http.MethodGet, "/license", nil))
	data := body["data"].(map[string]any)
	assert.Equal(t, false, data["valid_licence"])
	assert.Equal(t, "invalid", data["state"])
}

func TestRevalidateLicense(t *testing.T) {
	env := newTestEnv()
	env.gate.state = service.LicenseStateValid
	_, body := env.do(t, httptest.NewRequest(http.MethodPost, "/license/revalidate", nil))
	assert.Equal(t, true, body["success"])

	env.gate.revalidateErr = errBoom
	_, body = env.do(t, httptest.NewRequest(http.MethodPost, "/license/revalidate", nil))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "boom", body["message"])
}

func TestGetStatus(t *testing.T) {
	env := newTestEnv()
	_, body := env.do(t, httptest.NewRequest(http.MethodGet, "/status", nil))
	data := body["data"].(map[string]any)
	assert.Equal(t, false, data["is_setting_up"])
	assert.Equal(t, "unknown", data["license_state"])
}
