package contacts

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"

	"github.com/menna-app/menna-backend/internal/analytics"
	"github.com/menna-app/menna-backend/pkg/db/models"
	"github.com/menna-app/menna-backend/pkg/enums"
	pkgerrors "github.com/menna-app/menna-backend/pkg/errors"
)

const tokenBytes = 16

// Service defines the behavior needed by the contacts controller.
type Service interface {
	CreateContactToken(ctx context.Context, providerID, userID uuid.UUID, leadID *uuid.UUID) (*ContactTokenDTO, error)
	HasContact(ctx context.Context, leadID, providerID, userID uuid.UUID) (bool, error)
}

type contactRepository interface {
	Create(ctx context.Context, event *models.ContactEvent) (*models.ContactEvent, error)
	HasContact(ctx context.Context, leadID, providerID, userID uuid.UUID) (bool, error)
}

type service struct {
	repo    contactRepository
	tracker analytics.Tracker
}

// ServiceParams bundles the dependencies required to build a contacts service.
type ServiceParams struct {
	Repo    contactRepository
	Tracker analytics.Tracker
}

// NewService constructs a contacts service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("contact repository is required")
	}
	if params.Tracker == nil {
		return nil, fmt.Errorf("analytics tracker is required")
	}
	return &service{
		repo:    params.Repo,
		tracker: params.Tracker,
	}, nil
}

// CreateContactToken mints an unguessable URL-safe token recording that the
// user unlocked the provider's contact details, optionally tied to a lead.
func (s *service) CreateContactToken(ctx context.Context, providerID, userID uuid.UUID, leadID *uuid.UUID) (*ContactTokenDTO, error) {
	token, err := generateToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate token")
	}

	event, err := s.repo.Create(ctx, &models.ContactEvent{
		ProviderID: providerID,
		UserID:     userID,
		LeadID:     leadID,
		Token:      token,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create contact event")
	}

	payload := map[string]any{
		"provider_id": providerID.String(),
		"user_id":     userID.String(),
	}
	if leadID != nil {
		payload["lead_id"] = leadID.String()
	}
	s.tracker.Track(ctx, enums.AnalyticsEventProviderContactClick, payload)

	return fromModel(event), nil
}

func (s *service) HasContact(ctx context.Context, leadID, providerID, userID uuid.UUID) (bool, error) {
	ok, err := s.repo.HasContact(ctx, leadID, providerID, userID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check contact")
	}
	return ok, nil
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
