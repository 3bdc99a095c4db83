package channel

import (
	"context"

	"github.com/aig-studio/artist-image-generator/relay/model"
)

// ImageAdaptor performs exactly one upstream call per method. An upstream error object comes
// back inside the response; the returned error is reserved for transport failures.
type ImageAdaptor interface {
	Generate(ctx context.Context, apiKey string, op model.GenerateOperation) (*model.ImageResponse, error)
	Variate(ctx context.Context, apiKey string, op model.VariateOperation) (*model.ImageResponse, error)
	Edit(ctx context.Context, apiKey string, op model.EditOperation) (*model.ImageResponse, error)
	GetChannelName() string
}
