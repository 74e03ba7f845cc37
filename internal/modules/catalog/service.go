package catalog

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bikerental/internal/domain"
	"bikerental/internal/repository"
)

type Service struct {
	bikes   *repository.BikeRepository
	rentals *repository.RentalRepository
	log     *logrus.Logger
}

func NewService(bikes *repository.BikeRepository, rentals *repository.RentalRepository, log *logrus.Logger) *Service {
	return &Service{
		bikes:   bikes,
		rentals: rentals,
		log:     log,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Bike, error) {
	return s.bikes.GetAll(ctx)
}

func (s *Service) ListAvailable(ctx context.Context) ([]domain.Bike, error) {
	return s.bikes.ListAvailable(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Bike, error) {
	return s.bikes.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req BikeRequest) (*domain.Bike, error) {
	bike := &domain.Bike{
		Name:         req.Name,
		Type:         req.Type,
		PricePerHour: req.PricePerHour,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Available:    true,
	}
	if req.Available != nil {
		bike.Available = *req.Available
	}
	if err := s.bikes.Create(ctx, bike); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"bike_id": bike.ID, "type": bike.Type}).Info("bike added")
	return bike, nil
}

func (s *Service) Update(ctx context.Context, id int64, req BikeRequest) (*domain.Bike, error) {
	bike, err := s.bikes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	bike.Name = req.Name
	bike.Type = req.Type
	bike.PricePerHour = req.PricePerHour
	bike.Description = req.Description
	bike.ImageURL = req.ImageURL
	if req.Available != nil {
		bike.Available = *req.Available
	}

	if err := s.bikes.Update(ctx, bike); err != nil {
		return nil, err
	}
	return bike, nil
}

// SetAvailability is the administrative override ("retired / under
// maintenance"). It never touches date-range booking state.
func (s *Service) SetAvailability(ctx context.Context, id int64, available bool) error {
	return s.bikes.SetAvailability(ctx, id, available)
}

// Delete removes a bike and its rental history. Refused while active rentals
// exist; the history cascade and the bike delete run in one transaction.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.bikes.GetByID(ctx, id); err != nil {
		return err
	}

	active, err := s.rentals.CountActiveByBike(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrActiveRentals
	}

	return s.bikes.DB().Transaction(func(tx *gorm.DB) error {
		if err := s.rentals.DeleteByBike(ctx, tx, id); err != nil {
			return err
		}
		return s.bikes.Delete(ctx, tx, id)
	})
}
