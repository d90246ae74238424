package providers

import (
	"github.com/google/uuid"

	"github.com/menna-app/menna-backend/pkg/pagination"
)

// ListFilters describe the supported filter knobs for the provider browse
// endpoint. All filters are conjunctive.
type ListFilters struct {
	CategoryID *uuid.UUID  `json:"category_id,omitempty"`
	CityID     *uuid.UUID  `json:"city_id,omitempty"`
	AreaIDs    []uuid.UUID `json:"area_ids,omitempty"`
	Verified   *bool       `json:"verified,omitempty"`
	Language   string      `json:"language,omitempty"`
}

// ListInput captures the inputs needed to paginate and filter providers.
type ListInput struct {
	Filters      ListFilters
	SortByRating bool
	Pagination   pagination.Params
}
