package contracts

import (
	"context"

	reportmodels "github.com/meysamhadeli/zendocs/report/models"
	"github.com/meysamhadeli/zendocs/session/models"
)

type ITransportClient interface {
	SubmitArchive(ctx context.Context, archive models.Archive) (*reportmodels.RawResponse, error)
	FetchArtifactURL(ctx context.Context, identifier string) (string, error)
}
