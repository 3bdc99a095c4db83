package lmfwc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrLicenseRejected = errors.New("license rejected by server")

type Client struct {
	Server         string
	CustomerKey    string
	CustomerSecret string
	ProductIds     []int
	HTTPClient     *http.Client
}

// ValidStatus reports whether the server still considers the key valid for our products.
type ValidStatus struct {
	IsValid bool
	License *License
}

func (c *Client) ValidateStatus(ctx context.Context, key string) (*ValidStatus, error) {
	license, err := c.get(ctx, "licenses/"+url.PathEscape(key))
	if errors.Is(err, ErrLicenseRejected) {
		return &ValidStatus{IsValid: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &ValidStatus{IsValid: c.isValid(license, time.Now()), License: license}, nil
}

func (c *Client) Activate(ctx context.Context, key string) (*License, error) {
	return c.get(ctx, "licenses/activate/"+url.PathEscape(key))
}

func (c *Client) isValid(license *License, now time.Time) bool {
	if license == nil {
		return false
	}
	if license.Status != StatusDelivered && license.Status != StatusActive {
		return false
	}
	if license.Expired(now) {
		return false
	}
	if len(c.ProductIds) == 0 {
		return true
	}
	for _, id := range c.ProductIds {
		if id == license.ProductId {
			return true
		}
	}
	return false
}

func (c *Client) get(ctx context.Context, endpoint string) (*License, error) {
	fullURL := fmt.Sprintf("%s/wp-json/lmfwc/v2/%s", strings.TrimSuffix(c.Server, "/"), endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.CustomerKey, c.CustomerSecret)
	req.Header.Set("Accept", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("license server unreachable: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// 4xx means the server looked at the key and said no
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		var errResp errorResponse
		_ = json.Unmarshal(body, &errResp)
		return nil, fmt.Errorf("%w: %s", ErrLicenseRejected, errResp.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("license server returned status %d", resp.StatusCode)
	}

	var licenseResp licenseResponse
	if err = json.Unmarshal(body, &licenseResp); err != nil {
		return nil, fmt.Errorf("malformed license response: %w", err)
	}
	if !licenseResp.Success || licenseResp.Data == nil {
		return nil, ErrLicenseRejected
	}
	return licenseResp.Data, nil
}
