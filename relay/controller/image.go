package controller

import (
	"context"
	"strings"

	"github.com/aig-studio/artist-image-generator/common/logger"
	"github.com/aig-studio/artist-image-generator/relay/channel"
	"github.com/aig-studio/artist-image-generator/relay/constant"
	"github.com/aig-studio/artist-image-generator/relay/model"
	"github.com/aig-studio/artist-image-generator/relay/util"
)

// ImageRelay turns one form submission into at most one image API call.
type ImageRelay struct {
	adaptor channel.ImageAdaptor
}

func NewImageRelay(adaptor channel.ImageAdaptor) *ImageRelay {
	return &ImageRelay{adaptor: adaptor}
}

// DoPostRequest never returns nil. Validation failures and upstream errors end up in result.Error.
func (r *ImageRelay) DoPostRequest(ctx context.Context, form *model.ImageForm, settings model.RequestSettings) *model.ImageResult {
	result := model.NewImageResult()
	if form == nil || strings.TrimSpace(settings.APIKey) == "" {
		return result
	}

	prompt := strings.TrimSpace(form.Prompt)
	n := util.ClampImageN(util.ParseImageN(form.N))
	size := util.NormalizeImageSize(form.Size)
	result.PromptInput = prompt
	result.SizeInput = size
	result.NInput = n

	op, err := buildOperation(form, settings, prompt, n, size)
	if err != nil {
		logger.Infof(ctx, "image request rejected: %s", err.Error())
		result.Error.Msg = err.Error()
		return result
	}
	if op == nil {
		return result
	}

	resp, err := r.dispatch(ctx, settings.APIKey, op)
	if err != nil {
		logger.Errorf(ctx, "[%s] %s request failed: %s", r.adaptor.GetChannelName(), constant.ImageModeName(op.Mode()), err.Error())
		result.Error.Msg = err.Error()
		return result
	}
	if resp.Error != nil {
		logger.Warnf(ctx, "[%s] %s rejected upstream: %s", r.adaptor.GetChannelName(), constant.ImageModeName(op.Mode()), resp.Error.Message)
		result.Error.Msg = resp.Error.Message
		return result
	}
	if resp.Data != nil {
		result.Images = resp.Data
	}
	logger.Infof(ctx, "%s produced %d images", constant.ImageModeName(op.Mode()), len(result.Images))
	return result
}

// buildOperation returns a nil operation when there is nothing to do, which includes an
// edit without a valid license.
func buildOperation(form *model.ImageForm, settings model.RequestSettings, prompt string, n int, size string) (model.Operation, error) {
	switch form.Mode() {
	case constant.ImageModeGenerate:
		if prompt == "" {
			return nil, util.ErrPromptRequired
		}
		op := model.GenerateOperation{
			Prompt: prompt,
			N:      n,
			Size:   size,
			Model:  util.NormalizeImageModel(form.Model),
		}
		if op.Model == constant.ModelDallE3 {
			op.N = 1
			op.Quality = constant.QualityHD
		}
		return op, nil
	case constant.ImageModeVariate:
		if err := util.ValidateUpload(form.Image); err != nil {
			return nil, err
		}
		return model.VariateOperation{Image: form.Image, N: n, Size: size}, nil
	case constant.ImageModeEdit:
		if !settings.EditAllowed {
			return nil, nil
		}
		if err := util.ValidateUpload(form.Image); err != nil {
			return nil, err
		}
		if form.Mask.Size() == 0 {
			return nil, util.ErrInvalidUpload
		}
		return model.EditOperation{Image: form.Image, Mask: form.Mask, Prompt: prompt, N: n, Size: size}, nil
	}
	return nil, nil
}

func (r *ImageRelay) dispatch(ctx context.Context, apiKey string, op model.Operation) (*model.ImageResponse, error) {
	switch o := op.(type) {
	case model.GenerateOperation:
		return r.adaptor.Generate(ctx, apiKey, o)
	case model.VariateOperation:
		return r.adaptor.Variate(ctx, apiKey, o)
	case model.EditOperation:
		return r.adaptor.Edit(ctx, apiKey, o)
	}
	return &model.ImageResponse{Data: []model.ImageData{}}, nil
}
