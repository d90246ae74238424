package controllers

import (
	"net/http"

	"github.com/menna-app/menna-backend/api/responses"
	plansvc "github.com/menna-app/menna-backend/internal/plans"
	pkgerrors "github.com/menna-app/menna-backend/pkg/errors"
	"github.com/menna-app/menna-backend/pkg/logger"
)

// PlanList returns the available credit plans.
func PlanList(svc plansvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "plan service unavailable"))
			return
		}

		plans, err := svc.ListPlans(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, plans)
	}
}
