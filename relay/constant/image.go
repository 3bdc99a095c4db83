package constant

const (
	ImageModeUnknown = iota
	ImageModeGenerate
	ImageModeVariate
	ImageModeEdit
)

const (
	ModelDallE2 = "dall-e-2"
	// ModelDallE3 is the only model accepted from the form; anything else means ModelDallE2.
	ModelDallE3 = "dall-e-3"
	QualityHD   = "hd"
)

const (
	ImageSize256   = "256x256"
	ImageSize512   = "512x512"
	ImageSize1024  = "1024x1024"
	ImageSize1792W = "1792x1024"
	ImageSize1792H = "1024x1792"

	DefaultImageSize = ImageSize1024
)

var ValidImageSizes = map[string]bool{
	ImageSize256:   true,
	ImageSize512:   true,
	ImageSize1024:  true,
	ImageSize1792W: true,
	ImageSize1792H: true,
}

const (
	MinImageN = 1
	MaxImageN = 10
	// MaxUploadBytes is exclusive.
	MaxUploadBytes = 4 << 20
)

func ImageModeName(mode int) string {
	switch mode {
	case ImageModeGenerate:
		return "generate"
	case ImageModeVariate:
		return "variate"
	case ImageModeEdit:
		return "edit"
	}
	return "unknown"
}
