package driving

import (
	"context"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
)

// InitService prepares an output directory for builds.
type InitService interface {
	// Init writes the output config and the selected content type configs.
	Init(ctx context.Context, req InitRequest) error

	// AvailableContentTypes lists the content types offered by the source.
	AvailableContentTypes(ctx context.Context) ([]domain.ContentTypeInfo, error)
}

// InitRequest lists the content types to configure.
type InitRequest struct {
	ContentTypes []domain.ContentTypeSpec
}
