package rental

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"bikerental/internal/domain"
	"bikerental/internal/repository"
)

const dateLayout = "2006-01-02"

type Service struct {
	rentals RentalRepository
	bikes   CatalogStore
	log     *logrus.Logger
}

func NewService(rentals RentalRepository, bikes CatalogStore, log *logrus.Logger) *Service {
	return &Service{
		rentals: rentals,
		bikes:   bikes,
		log:     log,
	}
}

// Create validates a booking request and inserts a pending rental. Checks run
// in order, fail fast: bike exists, bike not retired, no duplicate active
// rental for this user, no overlapping dates. The repository re-runs the same
// guards inside one transaction, so two concurrent requests cannot both pass.
func (s *Service) Create(ctx context.Context, req CreateRentalRequest) (*domain.Rental, error) {
	bike, err := s.bikes.GetByID(ctx, req.BikeID)
	if err != nil {
		return nil, err
	}
	if !bike.Available {
		return nil, domain.ErrBikeUnavailable
	}

	existing, err := s.rentals.FindActiveByUserAndBike(ctx, req.UserID, req.BikeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateRental
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if start != nil {
		conflict, err := s.rentals.HasConflict(ctx, req.BikeID, *start, *end)
		if err != nil {
			return nil, err
		}
		if conflict {
			return nil, domain.ErrDateConflict
		}
	}

	if req.TotalPrice != nil && *req.TotalPrice <= 0 {
		return nil, fmt.Errorf("%w: total_price must be positive", domain.ErrInvalidInput)
	}

	r := &domain.Rental{
		UserID:     req.UserID,
		BikeID:     req.BikeID,
		Status:     domain.RentalPending,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: req.TotalPrice,
	}
	if err := s.rentals.Create(ctx, r); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"rental_id": r.ID,
		"user_id":   r.UserID,
		"bike_id":   r.BikeID,
	}).Info("rental request created")

	return r, nil
}

// Confirm moves a pending rental to confirmed. Bike availability stays
// untouched: the flag is an administrative override, overlap checking is
// authoritative for booking state.
func (s *Service) Confirm(ctx context.Context, id int64) (*domain.Rental, error) {
	return s.transition(ctx, id, domain.RentalConfirmed)
}

// Reject moves a pending rental to rejected.
func (s *Service) Reject(ctx context.Context, id int64) (*domain.Rental, error) {
	return s.transition(ctx, id, domain.RentalRejected)
}

// Return closes a confirmed rental and stamps the return date.
func (s *Service) Return(ctx context.Context, id int64) (*domain.Rental, error) {
	return s.transition(ctx, id, domain.RentalReturned)
}

// Cancel voids a rental while it is still pending. Cancelled is a durable
// status, not a deletion, so the history stays auditable.
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Rental, error) {
	return s.transition(ctx, id, domain.RentalCancelled)
}

func (s *Service) transition(ctx context.Context, id int64, target domain.RentalStatus) (*domain.Rental, error) {
	r, err := s.rentals.Transition(ctx, id, target)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"rental_id": r.ID,
		"status":    r.Status,
	}).Info("rental status updated")

	return r, nil
}

func (s *Service) ListAll(ctx context.Context) ([]repository.AdminRentalRow, error) {
	return s.rentals.ListAllWithDetails(ctx)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]repository.UserRentalRow, error) {
	return s.rentals.ListByUserWithDetails(ctx, userID)
}

// FindConflicts exposes the availability query: every bike id occupied for
// some part of the inclusive [start, end] range.
func (s *Service) FindConflicts(ctx context.Context, startStr, endStr string) ([]int64, error) {
	start, end, err := parseDateRange(startStr, endStr)
	if err != nil {
		return nil, err
	}
	if start == nil {
		return nil, fmt.Errorf("%w: start_date and end_date are required", domain.ErrInvalidInput)
	}
	return s.rentals.FindConflicts(ctx, *start, *end)
}

// parseDateRange parses an optional date pair. Both dates must be supplied
// together and start must not be after end.
func parseDateRange(startStr, endStr string) (*time.Time, *time.Time, error) {
	if startStr == "" && endStr == "" {
		return nil, nil, nil
	}
	if startStr == "" || endStr == "" {
		return nil, nil, fmt.Errorf("%w: start_date and end_date must be supplied together", domain.ErrInvalidInput)
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: malformed start_date", domain.ErrInvalidInput)
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: malformed end_date", domain.ErrInvalidInput)
	}
	if start.After(end) {
		return nil, nil, fmt.Errorf("%w: start_date is after end_date", domain.ErrInvalidInput)
	}
	return &start, &end, nil
}
