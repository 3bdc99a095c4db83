package image

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

const MimeTypePNG = "image/png"

var ErrUnsupportedType = errors.New("unsupported image type")

// allowedExtensions maps the importable MIME types to file extensions.
var allowedExtensions = map[string]string{
	"image/jpg":  "jpg",
	"image/jpeg": "jpeg",
	"image/gif":  "gif",
	"image/png":  "png",
}

var readerPool = sync.Pool{
	New: func() interface{} {
		return &bytes.Reader{}
	},
}

// DetectMimeType sniffs the content, ignoring whatever the client claimed.
func DetectMimeType(data []byte) string {
	mtype := mimetype.Detect(data).String()
	if i := strings.IndexByte(mtype, ';'); i >= 0 {
		mtype = mtype[:i]
	}
	return mtype
}

func GetImageSizeFromBytes(data []byte) (width int, height int, err error) {
	reader := readerPool.Get().(*bytes.Reader)
	defer readerPool.Put(reader)
	reader.Reset(data)

	img, _, err := image.DecodeConfig(reader)
	if err != nil {
		return 0, 0, err
	}
	return img.Width, img.Height, nil
}

func IsSquare(data []byte) bool {
	width, height, err := GetImageSizeFromBytes(data)
	if err != nil {
		return false
	}
	return width > 0 && width == height
}

// ExtensionFromMimeType returns the extension for an allowlisted MIME type.
func ExtensionFromMimeType(mimeType string) (string, error) {
	ext, ok := allowedExtensions[strings.ToLower(strings.TrimSpace(mimeType))]
	if !ok {
		return "", ErrUnsupportedType
	}
	return ext, nil
}

// ExtensionFromPath returns the allowlisted extension of a URL path, or "".
func ExtensionFromPath(p string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return ext
		}
	}
	return ""
}
