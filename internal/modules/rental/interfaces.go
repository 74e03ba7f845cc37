package rental

import (
	"context"
	"time"

	"bikerental/internal/domain"
	"bikerental/internal/repository"
)

// RentalRepository is the durable store of rental records: append-only
// creation plus in-place status transitions.
type RentalRepository interface {
	Create(ctx context.Context, r *domain.Rental) error
	Transition(ctx context.Context, id int64, target domain.RentalStatus) (*domain.Rental, error)
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)

	HasConflict(ctx context.Context, bikeID int64, start, end time.Time) (bool, error)
	FindConflicts(ctx context.Context, start, end time.Time) ([]int64, error)
	FindActiveByUserAndBike(ctx context.Context, userID, bikeID int64) (*domain.Rental, error)

	ListAllWithDetails(ctx context.Context) ([]repository.AdminRentalRow, error)
	ListByUserWithDetails(ctx context.Context, userID int64) ([]repository.UserRentalRow, error)
}

// CatalogStore is the consulted, not owned, bike catalog.
type CatalogStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Bike, error)
}
