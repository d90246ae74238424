package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/menna-app/menna-backend/api/responses"
	"github.com/menna-app/menna-backend/api/validators"
	"github.com/menna-app/menna-backend/internal/contacts"
	providersvc "github.com/menna-app/menna-backend/internal/providers"
	pkgerrors "github.com/menna-app/menna-backend/pkg/errors"
	"github.com/menna-app/menna-backend/pkg/logger"
	"github.com/menna-app/menna-backend/pkg/pagination"
)

// ProviderList handles the provider browse endpoint.
func ProviderList(svc providersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "provider service unavailable"))
			return
		}

		input, err := providerListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProviders(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProviderDetail handles the provider profile endpoint.
func ProviderDetail(svc providersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "provider service unavailable"))
			return
		}

		providerID, err := uuid.Parse(chi.URLParam(r, "providerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid provider id"))
			return
		}

		profile, err := svc.GetProviderProfile(r.Context(), providerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

type contactTokenRequest struct {
	LeadID *uuid.UUID `json:"lead_id,omitempty"`
}

// ProviderContact mints a contact unlock token for the authenticated user.
func ProviderContact(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		providerID, err := uuid.Parse(chi.URLParam(r, "providerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid provider id"))
			return
		}

		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body contactTokenRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := svc.CreateContactToken(r.Context(), providerID, userID, body.LeadID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, token)
	}
}

func providerListInput(r *http.Request) (*providersvc.ListInput, error) {
	categoryID, err := validators.ParseQueryUUID(r, "category_id")
	if err != nil {
		return nil, err
	}
	cityID, err := validators.ParseQueryUUID(r, "city_id")
	if err != nil {
		return nil, err
	}
	areaIDs, err := validators.ParseQueryUUIDList(r, "area_ids")
	if err != nil {
		return nil, err
	}
	verified, err := validators.ParseQueryBool(r, "verified")
	if err != nil {
		return nil, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
	if err != nil {
		return nil, err
	}

	return &providersvc.ListInput{
		Filters: providersvc.ListFilters{
			CategoryID: categoryID,
			CityID:     cityID,
			AreaIDs:    areaIDs,
			Verified:   verified,
			Language:   strings.TrimSpace(r.URL.Query().Get("language")),
		},
		SortByRating: r.URL.Query().Get("sort") == "rating",
		Pagination: pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		},
	}, nil
}
