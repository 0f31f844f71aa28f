package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ohmegaloceros-boop/freefoodfinder/internal/models"
)

// ValidationError identifies the field a submission was rejected on.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("service: invalid submission field %q: %s", e.Field, e.Reason)
}

// SubmissionInput is the client-supplied submission payload. It
// deliberately has no status or submittedAt fields; those are assigned
// server-side and anything the client sends for them is discarded at
// decode time.
type SubmissionInput struct {
	Name           string              `json:"name"`
	Type           models.LocationType `json:"type"`
	Coordinates    *models.Coordinates `json:"coordinates"`
	Address        string              `json:"address"`
	City           string              `json:"city"`
	State          string              `json:"state"`
	ZipCode        string              `json:"zipCode"`
	Hours          string              `json:"hours"`
	Phone          string              `json:"phone"`
	Description    string              `json:"description"`
	SubmitterEmail string              `json:"submitterEmail"`
}

// SubmissionStore interface for dependency injection
type SubmissionStore interface {
	Append(ctx context.Context, sub models.Submission) error
}

// SubmissionService validates and persists user-proposed locations.
type SubmissionService struct {
	store SubmissionStore
	now   func() time.Time
	newID func() string
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(s SubmissionStore) *SubmissionService {
	return &SubmissionService{
		store: s,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Submit validates the payload, normalizes the server-assigned fields and
// appends the submission to the pending queue. Nothing is persisted when
// validation fails. Returns the assigned submission id.
func (s *SubmissionService) Submit(ctx context.Context, in SubmissionInput) (string, error) {
	if err := validate(in); err != nil {
		return "", err
	}

	sub := models.Submission{
		Location: models.Location{
			ID:          s.newID(),
			Name:        strings.TrimSpace(in.Name),
			Type:        in.Type,
			Coordinates: *in.Coordinates,
			Address:     in.Address,
			City:        in.City,
			State:       in.State,
			ZipCode:     in.ZipCode,
			Hours:       in.Hours,
			Phone:       in.Phone,
			Description: in.Description,
		},
		SubmitterEmail: in.SubmitterEmail,
		SubmittedAt:    s.now().UTC(),
		Status:         models.StatusPending,
	}

	if err := s.store.Append(ctx, sub); err != nil {
		return "", fmt.Errorf("service: failed to persist submission: %w", err)
	}

	return sub.ID, nil
}

func validate(in SubmissionInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !in.Type.Valid() {
		return &ValidationError{Field: "type", Reason: "must be one of foodbank, community_fridge, food_box"}
	}
	if in.Coordinates == nil {
		return &ValidationError{Field: "coordinates", Reason: "required"}
	}
	if !in.Coordinates.Valid() {
		return &ValidationError{Field: "coordinates", Reason: "latitude must be in [-90,90] and longitude in [-180,180]"}
	}
	// Fridges and boxes may be described by a general area; food banks
	// need a street address.
	if in.Type == models.TypeFoodBank && strings.TrimSpace(in.Address) == "" {
		return &ValidationError{Field: "address", Reason: "required for foodbank locations"}
	}
	return nil
}
