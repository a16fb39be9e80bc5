package response

import (
	"time"

	"bundlemart-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BundleResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Network   string    `json:"network"`
	DataMB    int32     `json:"dataMb"`
	PriceGHS  float64   `json:"priceGhs"`
	InStock   bool      `json:"inStock"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromBundleView(view queries.BundleView) BundleResponse {
	var resp BundleResponse
	_ = copier.Copy(&resp, &view)
	return resp
}

func FromBundleViews(views []queries.BundleView) []BundleResponse {
	out := make([]BundleResponse, len(views))
	for i, v := range views {
		out[i] = FromBundleView(v)
	}
	return out
}
