package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/menna-app/menna-backend/api/controllers"
	"github.com/menna-app/menna-backend/api/middleware"
	"github.com/menna-app/menna-backend/internal/auth"
	"github.com/menna-app/menna-backend/internal/catalog"
	"github.com/menna-app/menna-backend/internal/contacts"
	"github.com/menna-app/menna-backend/internal/leads"
	"github.com/menna-app/menna-backend/internal/plans"
	"github.com/menna-app/menna-backend/internal/providers"
	"github.com/menna-app/menna-backend/internal/reviews"
	"github.com/menna-app/menna-backend/pkg/config"
	"github.com/menna-app/menna-backend/pkg/logger"
	"github.com/menna-app/menna-backend/pkg/metrics"
)

// Services carries the wired use cases the router exposes.
type Services struct {
	Auth      auth.Service
	Providers providers.Service
	Contacts  contacts.Service
	Leads     leads.Service
	Reviews   reviews.Service
	Catalog   catalog.Service
	Plans     plans.Service
}

// NewRouter builds the full HTTP surface of the API.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	pingers map[string]controllers.Pinger,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})

	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.Post("/otp/request", controllers.AuthRequestOTP(svcs.Auth, logg))
		r.Post("/password/reset", controllers.AuthResetPassword(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Post("/otp/verify", controllers.AuthVerifyOTP(svcs.Auth, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", controllers.CategoryList(svcs.Catalog, logg))
		r.Get("/cities", controllers.CityList(svcs.Catalog, logg))
		r.Get("/cities/{cityId}/areas", controllers.AreaList(svcs.Catalog, logg))
		r.Get("/plans", controllers.PlanList(svcs.Plans, logg))

		r.Route("/providers", func(r chi.Router) {
			r.Get("/", controllers.ProviderList(svcs.Providers, logg))
			r.Get("/{providerId}", controllers.ProviderDetail(svcs.Providers, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))
				r.Post("/{providerId}/contact", controllers.ProviderContact(svcs.Contacts, logg))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Route("/leads", func(r chi.Router) {
				r.Post("/", controllers.LeadCreate(svcs.Leads, logg))
				r.Get("/", controllers.LeadListMine(svcs.Leads, logg))
				r.Post("/{leadId}/deliveries", controllers.LeadDeliver(svcs.Leads, logg))
				r.Post("/{leadId}/reviews", controllers.ReviewCreate(svcs.Reviews, logg))
			})
			r.Patch("/deliveries/{deliveryId}/status", controllers.DeliveryUpdateStatus(svcs.Leads, logg))
		})
	})

	return r
}
