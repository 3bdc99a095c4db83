package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aig-studio/artist-image-generator/relay/model"
	"github.com/sashabaranov/go-openai"
)

type Adaptor struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewAdaptor(baseURL string, httpClient *http.Client) *Adaptor {
	return &Adaptor{BaseURL: baseURL, HTTPClient: httpClient}
}

func (a *Adaptor) GetChannelName() string {
	return ChannelName
}

func (a *Adaptor) client(apiKey string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if a.BaseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(a.BaseURL, "/")
	}
	if a.HTTPClient != nil {
		cfg.HTTPClient = a.HTTPClient
	}
	return openai.NewClientWithConfig(cfg)
}

func (a *Adaptor) Generate(ctx context.Context, apiKey string, op model.GenerateOperation) (*model.ImageResponse, error) {
	resp, err := a.client(apiKey).CreateImage(ctx, openai.ImageRequest{
		Prompt:         op.Prompt,
		Model:          op.Model,
		N:              op.N,
		Quality:        op.Quality,
		Size:           op.Size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	return convertResponse(resp, err)
}

func (a *Adaptor) Variate(ctx context.Context, apiKey string, op model.VariateOperation) (*model.ImageResponse, error) {
	dir, err := os.MkdirTemp("", "aig-variate-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	image, err := stageUpload(dir, op.Image, "image.png")
	if err != nil {
		return nil, err
	}
	defer image.Close()

	resp, err := a.client(apiKey).CreateVariImage(ctx, openai.ImageVariRequest{
		Image:          image,
		N:              op.N,
		Size:           op.Size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	return convertResponse(resp, err)
}

func (a *Adaptor) Edit(ctx context.Context, apiKey string, op model.EditOperation) (*model.ImageResponse, error) {
	dir, err := os.MkdirTemp("", "aig-edit-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	image, err := stageUpload(dir, op.Image, "image.png")
	if err != nil {
		return nil, err
	}
	defer image.Close()
	// the mask goes into its own subdir in case both uploads share a name
	maskDir := filepath.Join(dir, "mask")
	if err = os.Mkdir(maskDir, 0700); err != nil {
		return nil, err
	}
	mask, err := stageUpload(maskDir, op.Mask, "mask.png")
	if err != nil {
		return nil, err
	}
	defer mask.Close()

	resp, err := a.client(apiKey).CreateEditImage(ctx, openai.ImageEditRequest{
		Image:          image,
		Mask:           mask,
		Prompt:         op.Prompt,
		N:              op.N,
		Size:           op.Size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	return convertResponse(resp, err)
}

// stageUpload writes the upload under its original base name, which becomes the multipart filename.
func stageUpload(dir string, file *model.UploadedFile, fallback string) (*os.File, error) {
	if file == nil {
		return nil, errors.New("missing upload")
	}
	name := filepath.Base(file.Filename)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = fallback
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, file.Data, 0600); err != nil {
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	return os.Open(path)
}

func convertResponse(resp openai.ImageResponse, err error) (*model.ImageResponse, error) {
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return &model.ImageResponse{
				Data:  []model.ImageData{},
				Error: convertAPIError(apiErr),
			}, nil
		}
		return nil, err
	}
	images := make([]model.ImageData, 0, len(resp.Data))
	for _, data := range resp.Data {
		images = append(images, model.ImageData{
			Url:           data.URL,
			B64Json:       data.B64JSON,
			RevisedPrompt: data.RevisedPrompt,
		})
	}
	return &model.ImageResponse{
		Created: resp.Created,
		Data:    images,
	}, nil
}

func convertAPIError(apiErr *openai.APIError) *model.Error {
	e := &model.Error{
		Message: apiErr.Message,
		Type:    apiErr.Type,
		Code:    apiErr.Code,
	}
	if apiErr.Param != nil {
		e.Param = *apiErr.Param
	}
	if e.Message == "" {
		e.Message = apiErr.Error()
	}
	return e
}
