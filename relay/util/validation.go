package util

import (
	"errors"
	"strings"

	imageutil "github.com/aig-studio/artist-image-generator/common/image"
	"github.com/aig-studio/artist-image-generator/relay/constant"
	"github.com/aig-studio/artist-image-generator/relay/model"
)

var (
	ErrPromptRequired = errors.New("A prompt input is required in order to generate an image.")
	ErrInvalidUpload  = errors.New("A .png square (1:1) image of maximum 4MB needs to be uploaded in order to generate a variation of this image.")
)

// ParseImageN reads the leading integer of the raw input. Anything unparsable is 0.
func ParseImageN(raw string) int {
	s := strings.TrimSpace(raw)
	negative := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		negative = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		if n > constant.MaxImageN*1000 {
			break
		}
	}
	if negative {
		return -n
	}
	return n
}

func ClampImageN(n int) int {
	return max(constant.MinImageN, min(constant.MaxImageN, n))
}

func NormalizeImageSize(size string) string {
	size = strings.TrimSpace(size)
	if constant.ValidImageSizes[size] {
		return size
	}
	return constant.DefaultImageSize
}

// NormalizeImageModel keeps only the premium model; everything else runs on the default one.
func NormalizeImageModel(m string) string {
	if strings.TrimSpace(m) == constant.ModelDallE3 {
		return constant.ModelDallE3
	}
	return constant.ModelDallE2
}

// ValidateUpload accepts a non-empty square PNG under 4 MiB, sniffed from its content.
func ValidateUpload(file *model.UploadedFile) error {
	if file == nil {
		return ErrInvalidUpload
	}
	size := file.Size()
	if size == 0 || size >= constant.MaxUploadBytes {
		return ErrInvalidUpload
	}
	if imageutil.DetectMimeType(file.Data) != imageutil.MimeTypePNG {
		return ErrInvalidUpload
	}
	if !imageutil.IsSquare(file.Data) {
		return ErrInvalidUpload
	}
	return nil
}
