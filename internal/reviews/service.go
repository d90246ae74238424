package reviews

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/menna-app/menna-backend/internal/analytics"
	"github.com/menna-app/menna-backend/pkg/db/models"
	"github.com/menna-app/menna-backend/pkg/enums"
	pkgerrors "github.com/menna-app/menna-backend/pkg/errors"
)

const noValidContactMessage = "no valid contact"

// Service defines the behavior needed by the reviews controller.
type Service interface {
	CreateReview(ctx context.Context, leadID, userID uuid.UUID, req CreateReviewRequest) (*ReviewDTO, error)
}

type reviewRepository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
}

type contactChecker interface {
	HasContact(ctx context.Context, leadID, providerID, userID uuid.UUID) (bool, error)
}

type ratingApplier interface {
	ApplyRating(ctx context.Context, providerID uuid.UUID, rating int) error
}

type service struct {
	repo      reviewRepository
	contacts  contactChecker
	providers ratingApplier
	tracker   analytics.Tracker
}

// ServiceParams bundles the dependencies required to build a reviews service.
type ServiceParams struct {
	Repo     reviewRepository
	Contacts contactChecker
	Raters   ratingApplier
	Tracker  analytics.Tracker
}

// NewService constructs a reviews service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("review repository is required")
	}
	if params.Contacts == nil {
		return nil, fmt.Errorf("contact checker is required")
	}
	if params.Raters == nil {
		return nil, fmt.Errorf("rating applier is required")
	}
	if params.Tracker == nil {
		return nil, fmt.Errorf("analytics tracker is required")
	}
	return &service{
		repo:      params.Repo,
		contacts:  params.Contacts,
		providers: params.Raters,
		tracker:   params.Tracker,
	}, nil
}

// CreateReview records a rating for the providers' handling of a lead. Only
// users who unlocked the provider's contact for that lead may review.
func (s *service) CreateReview(ctx context.Context, leadID, userID uuid.UUID, req CreateReviewRequest) (*ReviewDTO, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	ok, err := s.contacts.HasContact(ctx, leadID, req.ProviderID, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check contact")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, noValidContactMessage)
	}

	review, err := s.repo.Create(ctx, &models.Review{
		LeadDeliveryID: leadID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create review")
	}

	if err := s.providers.ApplyRating(ctx, req.ProviderID, req.Rating); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "apply rating")
	}

	s.tracker.Track(ctx, enums.AnalyticsEventReviewCreated, map[string]any{
		"provider_id": req.ProviderID.String(),
		"lead_id":     leadID.String(),
		"user_id":     userID.String(),
		"rating":      req.Rating,
	})

	return fromModel(review), nil
}
