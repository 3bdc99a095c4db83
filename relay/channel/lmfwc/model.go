package lmfwc

import (
	"strings"
	"time"
)

const (
	StatusSold      = 1
	StatusDelivered = 2
	StatusActive    = 3
	StatusInactive  = 4
)

const expiresAtLayout = "2006-01-02 15:04:05"

// License mirrors the license object of the License Manager for WooCommerce REST API.
type License struct {
	Id                int64  `json:"id"`
	OrderId           int64  `json:"orderId"`
	ProductId         int    `json:"productId"`
	UserId            int64  `json:"userId"`
	LicenseKey        string `json:"licenseKey"`
	ExpiresAt         string `json:"expiresAt"`
	ValidFor          int    `json:"validFor"`
	Source            int    `json:"source"`
	Status            int    `json:"status"`
	TimesActivated    int    `json:"timesActivated"`
	TimesActivatedMax int    `json:"timesActivatedMax"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

// Expired treats a missing or unparsable expiry as never expiring.
func (l *License) Expired(now time.Time) bool {
	if l == nil || strings.TrimSpace(l.ExpiresAt) == "" {
		return false
	}
	expiresAt, err := time.ParseInLocation(expiresAtLayout, l.ExpiresAt, time.UTC)
	if err != nil {
		return false
	}
	return now.After(expiresAt)
}

type licenseResponse struct {
	Success bool     `json:"success"`
	Data    *License `json:"data"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
