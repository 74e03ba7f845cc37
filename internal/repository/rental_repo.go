package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bikerental/internal/domain"
)

type RentalRepository struct {
	db *gorm.DB
}

func NewRentalRepository(db *gorm.DB) *RentalRepository {
	return &RentalRepository{db: db}
}

var activeStatuses = []domain.RentalStatus{domain.RentalPending, domain.RentalConfirmed}

// lockForUpdate takes a row lock on Postgres. SQLite has no FOR UPDATE and
// serializes writers per transaction, which gives the same guarantee.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Create inserts a pending rental after re-running every booking guard inside
// a single transaction with the bike row locked. The orchestrator performs the
// same checks up front for fail-fast ordering; this closes the window between
// check and insert under concurrent requests.
func (r *RentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bike domain.Bike
		if err := lockForUpdate(tx).First(&bike, rental.BikeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBikeNotFound
			}
			return err
		}
		if !bike.Available {
			return domain.ErrBikeUnavailable
		}

		var cnt int64
		if err := tx.Model(&domain.Rental{}).
			Where("user_id = ? AND bike_id = ?", rental.UserID, rental.BikeID).
			Where("status IN ?", activeStatuses).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return domain.ErrDuplicateRental
		}

		if rental.StartDate != nil && rental.EndDate != nil {
			if err := tx.Model(&domain.Rental{}).
				Where("bike_id = ?", rental.BikeID).
				Where("status IN ?", activeStatuses).
				Where("start_date <= ? AND end_date >= ?", rental.EndDate, rental.StartDate).
				Count(&cnt).Error; err != nil {
				return err
			}
			if cnt > 0 {
				return domain.ErrDateConflict
			}
		}

		rental.Status = domain.RentalPending
		return tx.Create(rental).Error
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrDateConflict
	}
	return err
}

// Transition moves a rental along the lifecycle state machine. The current
// status is re-read under a row lock inside the same transaction that writes
// the update, so concurrent admin actions cannot double-apply.
func (r *RentalRepository) Transition(ctx context.Context, id int64, target domain.RentalStatus) (*domain.Rental, error) {
	var rental domain.Rental
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&rental, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRentalNotFound
			}
			return err
		}

		if !rental.Status.CanTransitionTo(target) {
			if target == domain.RentalCancelled {
				return domain.ErrCancelNotPending
			}
			return domain.ErrInvalidTransition
		}

		updates := map[string]any{"status": target}
		if target == domain.RentalReturned {
			now := time.Now().UTC()
			rental.ReturnDate = &now
			updates["return_date"] = &now
		}
		rental.Status = target

		return tx.Model(&domain.Rental{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

func (r *RentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	var rental domain.Rental
	if err := r.db.WithContext(ctx).First(&rental, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRentalNotFound
		}
		return nil, err
	}
	return &rental, nil
}

// HasConflict reports whether any active rental on the bike overlaps the
// inclusive [start, end] range. Two ranges overlap iff a1 <= b2 AND b1 <= a2;
// a shared boundary day counts as overlap.
func (r *RentalRepository) HasConflict(ctx context.Context, bikeID int64, start, end time.Time) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Rental{}).
		Where("bike_id = ?", bikeID).
		Where("status IN ?", activeStatuses).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// FindConflicts returns every bike id with at least one active rental
// overlapping the inclusive [start, end] range.
func (r *RentalRepository) FindConflicts(ctx context.Context, start, end time.Time) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.Rental{}).
		Distinct("bike_id").
		Where("status IN ?", activeStatuses).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Order("bike_id").
		Pluck("bike_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FindActiveByUserAndBike returns the user's pending or confirmed rental for
// the bike, or nil when there is none.
func (r *RentalRepository) FindActiveByUserAndBike(ctx context.Context, userID, bikeID int64) (*domain.Rental, error) {
	var rental domain.Rental
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND bike_id = ?", userID, bikeID).
		Where("status IN ?", activeStatuses).
		First(&rental).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

// AdminRentalRow is the admin listing projection: rentals enriched with user
// and bike display fields. Presentation only, nothing here is persisted back.
type AdminRentalRow struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	UserName   string     `json:"user_name"`
	BikeID     int64      `json:"bike_id"`
	BikeName   string     `json:"bike_name"`
	Status     string     `json:"status"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	TotalPrice *float64   `json:"total_price,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

func (r *RentalRepository) ListAllWithDetails(ctx context.Context) ([]AdminRentalRow, error) {
	var rows []AdminRentalRow
	err := r.db.WithContext(ctx).
		Table("rentals r").
		Select(`
			r.id,
			r.user_id,
			u.full_name AS user_name,
			r.bike_id,
			b.name AS bike_name,
			r.status,
			r.start_date,
			r.end_date,
			r.total_price,
			r.created_at,
			r.return_date
		`).
		Joins("JOIN users u ON u.id = r.user_id").
		Joins("JOIN bikes b ON b.id = r.bike_id").
		Order("r.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	return rows, nil
}

// UserRentalRow is the per-user listing projection joined with bike display
// fields.
type UserRentalRow struct {
	ID          int64      `json:"id"`
	BikeID      int64      `json:"bike_id"`
	BikeName    string     `json:"bike_name"`
	BikeType    string     `json:"bike_type"`
	BikePrice   float64    `json:"bike_price"`
	BikeImage   string     `json:"bike_image,omitempty"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	TotalPrice  *float64   `json:"total_price,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ReturnDate  *time.Time `json:"return_date,omitempty"`
	Description string     `json:"bike_description,omitempty"`
}

func (r *RentalRepository) ListByUserWithDetails(ctx context.Context, userID int64) ([]UserRentalRow, error) {
	var rows []UserRentalRow
	err := r.db.WithContext(ctx).
		Table("rentals r").
		Select(`
			r.id,
			r.bike_id,
			b.name AS bike_name,
			b.type AS bike_type,
			b.price_per_hour AS bike_price,
			b.image_url AS bike_image,
			b.description AS description,
			r.status,
			r.start_date,
			r.end_date,
			r.total_price,
			r.created_at,
			r.return_date
		`).
		Joins("JOIN bikes b ON b.id = r.bike_id").
		Where("r.user_id = ?", userID).
		Order("r.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list user rentals: %w", err)
	}
	return rows, nil
}

// TypeFrequency is one row of a user's rental history grouped by bike type.
type TypeFrequency struct {
	Type      string `gorm:"column:type"`
	Frequency int64  `gorm:"column:frequency"`
}

// TypeFrequenciesForUser returns the distinct bike types the user has rented
// (returned or confirmed), most frequent first.
func (r *RentalRepository) TypeFrequenciesForUser(ctx context.Context, userID int64) ([]TypeFrequency, error) {
	var rows []TypeFrequency
	err := r.db.WithContext(ctx).
		Table("rentals r").
		Select("b.type AS type, COUNT(*) AS frequency").
		Joins("JOIN bikes b ON b.id = r.bike_id").
		Where("r.user_id = ?", userID).
		Where("r.status IN ?", []domain.RentalStatus{domain.RentalReturned, domain.RentalConfirmed}).
		Group("b.type").
		Order("frequency DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// BikeRentalCount is an available bike with its all-time rental count.
type BikeRentalCount struct {
	domain.Bike
	RentalCount int64 `json:"rental_count" gorm:"column:rental_count"`
}

// AvailableBikesWithCounts returns every available bike with its all-time
// rental count, bike id ascending. Ranking happens in the recommender.
func (r *RentalRepository) AvailableBikesWithCounts(ctx context.Context) ([]BikeRentalCount, error) {
	var rows []BikeRentalCount
	err := r.db.WithContext(ctx).
		Table("bikes b").
		Select("b.*, COUNT(r.id) AS rental_count").
		Joins("LEFT JOIN rentals r ON r.bike_id = b.id").
		Where("b.available = ?", true).
		Group("b.id").
		Order("b.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountActiveByBike is the bike-deletion guard.
func (r *RentalRepository) CountActiveByBike(ctx context.Context, bikeID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.Rental{}).
		Where("bike_id = ?", bikeID).
		Where("status IN ?", activeStatuses).
		Count(&cnt).Error
	return cnt, err
}

// DeleteByBike removes the rental history of a bike; used only by the
// bike-delete cascade.
func (r *RentalRepository) DeleteByBike(ctx context.Context, tx *gorm.DB, bikeID int64) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Where("bike_id = ?", bikeID).Delete(&domain.Rental{}).Error
}

func (r *RentalRepository) DB() *gorm.DB {
	return r.db
}
