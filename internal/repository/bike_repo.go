package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bikerental/internal/domain"
)

type BikeRepository struct {
	db *gorm.DB
}

func NewBikeRepository(db *gorm.DB) *BikeRepository {
	return &BikeRepository{db: db}
}

func (r *BikeRepository) Create(ctx context.Context, bike *domain.Bike) error {
	return r.db.WithContext(ctx).Create(bike).Error
}

func (r *BikeRepository) GetByID(ctx context.Context, id int64) (*domain.Bike, error) {
	var bike domain.Bike
	if err := r.db.WithContext(ctx).First(&bike, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBikeNotFound
		}
		return nil, err
	}
	return &bike, nil
}

func (r *BikeRepository) GetAll(ctx context.Context) ([]domain.Bike, error) {
	var bikes []domain.Bike
	if err := r.db.WithContext(ctx).Order("id").Find(&bikes).Error; err != nil {
		return nil, err
	}
	return bikes, nil
}

func (r *BikeRepository) ListAvailable(ctx context.Context) ([]domain.Bike, error) {
	var bikes []domain.Bike
	if err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("id").
		Find(&bikes).Error; err != nil {
		return nil, err
	}
	return bikes, nil
}

func (r *BikeRepository) Update(ctx context.Context, bike *domain.Bike) error {
	tx := r.db.WithContext(ctx).Model(&domain.Bike{}).
		Where("id = ?", bike.ID).
		Updates(map[string]any{
			"name":           bike.Name,
			"type":           bike.Type,
			"price_per_hour": bike.PricePerHour,
			"description":    bike.Description,
			"image_url":      bike.ImageURL,
			"available":      bike.Available,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrBikeNotFound
	}
	return nil
}

// SetAvailability flips the administrative override flag. Date-range booking
// state is untouched; already-confirmed rentals stay valid.
func (r *BikeRepository) SetAvailability(ctx context.Context, id int64, available bool) error {
	tx := r.db.WithContext(ctx).Model(&domain.Bike{}).
		Where("id = ?", id).
		Update("available", available)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrBikeNotFound
	}
	return nil
}

// Delete removes the bike inside the given transaction.
func (r *BikeRepository) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Delete(&domain.Bike{}, id).Error
}

func (r *BikeRepository) DB() *gorm.DB {
	return r.db
}
