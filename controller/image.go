package controller

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/aig-studio/artist-image-generator/common/logger"
	"github.com/aig-studio/artist-image-generator/relay/constant"
	relaymodel "github.com/aig-studio/artist-image-generator/relay/model"
	"github.com/gin-gonic/gin"
)

const maxMultipartMemory = 32 << 20

func (h *Handlers) GetImagePage(c *gin.Context) {
	c.JSON(http.StatusOK, relaymodel.NewImageResult())
}

func (h *Handlers) PostImageRequest(c *gin.Context) {
	ctx := c.Request.Context()
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
			logger.Warnf(ctx, "failed to parse multipart form: %s", err.Error())
		}
	}

	form := &relaymodel.ImageForm{
		Generate: formFlag(c, "generate"),
		Variate:  formFlag(c, "variate"),
		Edit:     formFlag(c, "edit"),
		Prompt:   c.PostForm("prompt"),
		N:        c.PostForm("n"),
		Size:     c.PostForm("size"),
		Model:    c.PostForm("model"),
		Image:    readUpload(c, "image"),
		Mask:     readUpload(c, "mask"),
	}

	settings, err := h.Store.LoadSettings(ctx)
	if err != nil {
		logger.Errorf(ctx, "failed to load settings: %s", err.Error())
	}
	requestSettings := relaymodel.RequestSettings{APIKey: settings.OpenAIAPIKey}
	if form.Mode() == constant.ImageModeEdit {
		requestSettings.EditAllowed = h.Gate.IsEditAllowed(ctx)
	}

	c.JSON(http.StatusOK, h.Relay.DoPostRequest(ctx, form, requestSettings))
}

// formFlag is set when the field is present with a non-empty value other than "0".
func formFlag(c *gin.Context, name string) bool {
	value, ok := c.GetPostForm(name)
	value = strings.TrimSpace(value)
	return ok && value != "" && value != "0"
}

// readUpload reads at most one byte past the upload limit; the relay rejects anything that long.
func readUpload(c *gin.Context, name string) *relaymodel.UploadedFile {
	header, err := c.FormFile(name)
	if err != nil {
		return nil
	}
	data, err := readFileHeader(header, constant.MaxUploadBytes+1)
	if err != nil {
		logger.Warnf(c.Request.Context(), "failed to read upload %s: %s", name, err.Error())
		return nil
	}
	return &relaymodel.UploadedFile{Filename: header.Filename, Data: data}
}

func readFileHeader(header *multipart.FileHeader, limit int64) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, limit))
}
