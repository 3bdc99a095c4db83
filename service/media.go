package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/aig-studio/artist-image-generator/common/config"
	"github.com/aig-studio/artist-image-generator/common/helper"
	imageutil "github.com/aig-studio/artist-image-generator/common/image"
	"github.com/aig-studio/artist-image-generator/common/logger"
	"github.com/aig-studio/artist-image-generator/common/storage"
	"github.com/aig-studio/artist-image-generator/model"
)

var (
	ErrInvalidSourceURL = errors.New("invalid source url")
	ErrDownloadTooLarge = errors.New("download exceeds size limit")
)

type MediaRecorder interface {
	Insert(ctx context.Context, media *model.Media) error
}

// MediaImporter sideloads generated images: download, store, record.
type MediaImporter struct {
	storage  storage.Storage
	recorder MediaRecorder
	client   *http.Client
	maxBytes int64
	prefix   string
}

func NewMediaImporter(store storage.Storage, recorder MediaRecorder, client *http.Client) *MediaImporter {
	if client == nil {
		client = http.DefaultClient
	}
	return &MediaImporter{
		storage:  store,
		recorder: recorder,
		client:   client,
		maxBytes: config.MaxDownloadBytes,
		prefix:   config.S3Prefix,
	}
}

func (m *MediaImporter) Import(ctx context.Context, sourceURL string, altText string) (int64, error) {
	u, err := url.Parse(strings.TrimSpace(sourceURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return 0, ErrInvalidSourceURL
	}

	data, err := m.download(ctx, u.String())
	if err != nil {
		return 0, err
	}

	mimeType := imageutil.DetectMimeType(data)
	mimeExt, err := imageutil.ExtensionFromMimeType(mimeType)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", err, mimeType)
	}
	ext := imageutil.ExtensionFromPath(u.Path)
	if ext == "" {
		ext = mimeExt
	}

	base := strings.TrimSuffix(path.Base(u.Path), path.Ext(u.Path))
	if base == "" || base == "." || base == "/" {
		base = "image"
	}
	altText = strings.TrimSpace(altText)
	fileName := helper.Slugify(altText, helper.Slugify(base, "image")) + "." + ext

	key := storage.ObjectKey(m.prefix, fileName, true)
	publicURL, err := m.storage.Put(ctx, key, data, mimeType)
	if err != nil {
		return 0, err
	}

	media := &model.Media{
		Title:      altText,
		AltText:    altText,
		FileName:   fileName,
		MimeType:   mimeType,
		Bytes:      int64(len(data)),
		StorageKey: key,
		Url:        publicURL,
		SourceUrl:  u.String(),
	}
	if media.Title == "" {
		media.Title = strings.TrimSuffix(fileName, "."+ext)
	}
	if err = m.recorder.Insert(ctx, media); err != nil {
		if delErr := m.storage.Delete(ctx, key); delErr != nil {
			logger.Warnf(ctx, "failed to remove orphaned media %s: %s", key, delErr.Error())
		}
		return 0, err
	}
	logger.Infof(ctx, "imported media %d as %s via %s", media.Id, fileName, m.storage.Name())
	return media.Id, nil
}

func (m *MediaImporter) download(ctx context.Context, sourceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed with status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, m.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > m.maxBytes {
		return nil, ErrDownloadTooLarge
	}
	if len(data) == 0 {
		return nil, errors.New("empty download")
	}
	return data, nil
}
