package reviews

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/menna-app/menna-backend/pkg/db/models"
	"github.com/menna-app/menna-backend/pkg/enums"
	pkgerrors "github.com/menna-app/menna-backend/pkg/errors"
)

type fakeReviewRepo struct {
	created []models.Review
}

func (f *fakeReviewRepo) Create(_ context.Context, review *models.Review) (*models.Review, error) {
	review.ID = uuid.New()
	f.created = append(f.created, *review)
	return review, nil
}

type fakeContactChecker struct {
	allowed bool
}

func (f *fakeContactChecker) HasContact(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) (bool, error) {
	return f.allowed, nil
}

type fakeRatingApplier struct {
	providerID uuid.UUID
	ratings    []int
}

func (f *fakeRatingApplier) ApplyRating(_ context.Context, providerID uuid.UUID, rating int) error {
	f.providerID = providerID
	f.ratings = append(f.ratings, rating)
	return nil
}

type recordedEvent struct {
	event   enums.AnalyticsEventType
	payload map[string]any
}

type recordingTracker struct {
	events []recordedEvent
}

func (r *recordingTracker) Track(_ context.Context, event enums.AnalyticsEventType, payload map[string]any) {
	r.events = append(r.events, recordedEvent{event: event, payload: payload})
}

func newReviewsService(t *testing.T, repo *fakeReviewRepo, contacts *fakeContactChecker, raters *fakeRatingApplier, tracker *recordingTracker) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:     repo,
		Contacts: contacts,
		Raters:   raters,
		Tracker:  tracker,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateReviewPersistsAndAppliesRating(t *testing.T) {
	repo := &fakeReviewRepo{}
	raters := &fakeRatingApplier{}
	tracker := &recordingTracker{}
	svc := newReviewsService(t, repo, &fakeContactChecker{allowed: true}, raters, tracker)

	leadID := uuid.New()
	userID := uuid.New()
	providerID := uuid.New()

	dto, err := svc.CreateReview(context.Background(), leadID, userID, CreateReviewRequest{
		ProviderID: providerID,
		Rating:     4,
	})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if dto.LeadDeliveryID != leadID {
		t.Fatalf("expected review bound to lead %s, got %s", leadID, dto.LeadDeliveryID)
	}
	if dto.Rating != 4 {
		t.Fatalf("expected rating 4, got %d", dto.Rating)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 persisted review, got %d", len(repo.created))
	}
	if raters.providerID != providerID || len(raters.ratings) != 1 || raters.ratings[0] != 4 {
		t.Fatalf("expected rating applied to provider, got %+v", raters)
	}

	if len(tracker.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(tracker.events))
	}
	evt := tracker.events[0]
	if evt.event != enums.AnalyticsEventReviewCreated {
		t.Fatalf("unexpected event %q", evt.event)
	}
	if evt.payload["rating"] != 4 || evt.payload["provider_id"] != providerID.String() {
		t.Fatalf("unexpected payload %v", evt.payload)
	}
}

func TestCreateReviewWithoutContactForbidden(t *testing.T) {
	repo := &fakeReviewRepo{}
	raters := &fakeRatingApplier{}
	tracker := &recordingTracker{}
	svc := newReviewsService(t, repo, &fakeContactChecker{allowed: false}, raters, tracker)

	_, err := svc.CreateReview(context.Background(), uuid.New(), uuid.New(), CreateReviewRequest{
		ProviderID: uuid.New(),
		Rating:     5,
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("expected no review persisted")
	}
	if len(raters.ratings) != 0 {
		t.Fatal("expected no rating applied")
	}
	if len(tracker.events) != 0 {
		t.Fatal("expected no event emitted")
	}
}

func TestCreateReviewRejectsOutOfRangeRating(t *testing.T) {
	svc := newReviewsService(t, &fakeReviewRepo{}, &fakeContactChecker{allowed: true}, &fakeRatingApplier{}, &recordingTracker{})

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.CreateReview(context.Background(), uuid.New(), uuid.New(), CreateReviewRequest{
			ProviderID: uuid.New(),
			Rating:     rating,
		})
		if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
			t.Fatalf("rating %d: expected validation error, got %v", rating, err)
		}
	}
}
