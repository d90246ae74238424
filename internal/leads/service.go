package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/menna-app/menna-backend/internal/analytics"
	"github.com/menna-app/menna-backend/internal/subscriptions"
	"github.com/menna-app/menna-backend/pkg/db"
	"github.com/menna-app/menna-backend/pkg/db/models"
	"github.com/menna-app/menna-backend/pkg/enums"
	pkgerrors "github.com/menna-app/menna-backend/pkg/errors"
)

// Service defines the behavior needed by the leads controller.
type Service interface {
	CreateLead(ctx context.Context, userID uuid.UUID, req CreateLeadRequest) (*LeadDTO, error)
	ListMyLeads(ctx context.Context, userID uuid.UUID) ([]LeadDTO, error)
	DeliverLead(ctx context.Context, leadID, providerID uuid.UUID) (*DeliveryDTO, error)
	UpdateDeliveryStatus(ctx context.Context, deliveryID uuid.UUID, req UpdateDeliveryStatusRequest) (*DeliveryDTO, error)
}

type service struct {
	db      *db.Client
	leads   *Repository
	subs    *subscriptions.Repository
	tracker analytics.Tracker
}

// ServiceParams bundles the dependencies required to build a leads service.
type ServiceParams struct {
	DB               *db.Client
	LeadRepo         *Repository
	SubscriptionRepo *subscriptions.Repository
	Tracker          analytics.Tracker
}

// NewService constructs a leads service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if params.LeadRepo == nil {
		return nil, fmt.Errorf("lead repository is required")
	}
	if params.SubscriptionRepo == nil {
		return nil, fmt.Errorf("subscription repository is required")
	}
	if params.Tracker == nil {
		return nil, fmt.Errorf("analytics tracker is required")
	}
	return &service{
		db:      params.DB,
		leads:   params.LeadRepo,
		subs:    params.SubscriptionRepo,
		tracker: params.Tracker,
	}, nil
}

func (s *service) CreateLead(ctx context.Context, userID uuid.UUID, req CreateLeadRequest) (*LeadDTO, error) {
	lead := &models.LeadRequest{
		UserID:        userID,
		CategoryID:    req.CategoryID,
		CityID:        req.CityID,
		AreaIDs:       req.AreaIDs,
		Description:   req.Description,
		PreferredTime: req.PreferredTime,
	}
	created, err := s.leads.Create(ctx, lead)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create lead")
	}

	s.tracker.Track(ctx, enums.AnalyticsEventLeadCreated, map[string]any{
		"user_id":     userID.String(),
		"lead_id":     created.ID.String(),
		"category_id": created.CategoryID.String(),
		"city_id":     created.CityID.String(),
	})

	return LeadFromModel(created), nil
}

func (s *service) ListMyLeads(ctx context.Context, userID uuid.UUID) ([]LeadDTO, error) {
	rows, err := s.leads.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list leads")
	}
	dtos := make([]LeadDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *LeadFromModel(&rows[i]))
	}
	return dtos, nil
}

// DeliverLead hands the lead to a provider inside one transaction: a credit is
// debited from the active subscription when the balance allows, and the
// delivery row is created either way. A duplicate delivery rolls the debit
// back and surfaces as a conflict.
func (s *service) DeliverLead(ctx context.Context, leadID, providerID uuid.UUID) (*DeliveryDTO, error) {
	var (
		delivery    *models.LeadDelivery
		creditSpent bool
	)

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		leadRepo := s.leads.WithTx(tx)
		subRepo := s.subs.WithTx(tx)

		if _, err := leadRepo.FindByID(ctx, leadID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load lead")
		}

		sub, err := subRepo.GetActive(ctx, providerID, time.Now().UTC())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load subscription")
		}
		if sub != nil {
			creditSpent, err = subRepo.DebitCredit(ctx, sub.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "debit credit")
			}
		}

		delivery = &models.LeadDelivery{
			LeadID:     leadID,
			ProviderID: providerID,
			Status:     enums.DeliveryStatusDelivered,
		}
		if _, err := leadRepo.AddDelivery(ctx, delivery); err != nil {
			if db.IsUniqueViolation(err, "idx_lead_deliveries_lead_provider") {
				return pkgerrors.New(pkgerrors.CodeConflict, "lead already delivered to provider")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create delivery")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.tracker.Track(ctx, enums.AnalyticsEventLeadDelivered, map[string]any{
		"lead_id":     leadID.String(),
		"provider_id": providerID.String(),
	})

	return DeliveryFromModel(delivery, creditSpent), nil
}

func (s *service) UpdateDeliveryStatus(ctx context.Context, deliveryID uuid.UUID, req UpdateDeliveryStatusRequest) (*DeliveryDTO, error) {
	if !req.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery status")
	}

	delivery, err := s.leads.FindDelivery(ctx, deliveryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load delivery")
	}

	if !delivery.Status.CanTransitionTo(req.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("cannot move delivery from %s to %s", delivery.Status, req.Status))
	}

	changed, err := s.leads.UpdateDeliveryStatus(ctx, deliveryID, delivery.Status, req.Status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update delivery status")
	}
	if !changed {
		// A concurrent update won; the caller should re-read and retry.
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "delivery status changed concurrently")
	}

	delivery.Status = req.Status
	return DeliveryFromModel(delivery, false), nil
}
