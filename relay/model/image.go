package model

import "github.com/aig-studio/artist-image-generator/relay/constant"

// ImageForm is one submission of the image form. N is kept raw and parsed by the relay.
type ImageForm struct {
	Generate bool
	Variate  bool
	Edit     bool
	Prompt   string
	N        string
	Size     string
	Model    string
	Image    *UploadedFile
	Mask     *UploadedFile
}

// Mode resolves the submitted flags, generate first, then variate, then edit.
func (f *ImageForm) Mode() int {
	switch {
	case f.Generate:
		return constant.ImageModeGenerate
	case f.Variate:
		return constant.ImageModeVariate
	case f.Edit:
		return constant.ImageModeEdit
	}
	return constant.ImageModeUnknown
}

type UploadedFile struct {
	Filename string
	Data     []byte
}

func (f *UploadedFile) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Data))
}

// Operation is one of GenerateOperation, VariateOperation or EditOperation.
type Operation interface {
	Mode() int
}

type GenerateOperation struct {
	Prompt  string
	N       int
	Size    string
	Model   string
	Quality string
}

func (GenerateOperation) Mode() int { return constant.ImageModeGenerate }

type VariateOperation struct {
	Image *UploadedFile
	N     int
	Size  string
}

func (VariateOperation) Mode() int { return constant.ImageModeVariate }

type EditOperation struct {
	Image  *UploadedFile
	Mask   *UploadedFile
	Prompt string
	N      int
	Size   string
}

func (EditOperation) Mode() int { return constant.ImageModeEdit }

type ImageData struct {
	Url           string `json:"url"`
	B64Json       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// ImageResponse is what the image API returned: either Data or Error.
type ImageResponse struct {
	Created int64       `json:"created,omitempty"`
	Data    []ImageData `json:"data"`
	Error   *Error      `json:"error,omitempty"`
}

type ErrorMsg struct {
	Msg string `json:"msg,omitempty"`
}

// ImageResult is the display model returned for every image request.
type ImageResult struct {
	Error       ErrorMsg    `json:"error"`
	Images      []ImageData `json:"images"`
	PromptInput string      `json:"prompt_input"`
	SizeInput   string      `json:"size_input"`
	NInput      int         `json:"n_input"`
}

func NewImageResult() *ImageResult {
	return &ImageResult{
		Images:    []ImageData{},
		SizeInput: constant.DefaultImageSize,
		NInput:    constant.MinImageN,
	}
}

// RequestSettings is what a single request needs from the stored configuration.
type RequestSettings struct {
	APIKey      string
	EditAllowed bool
}
