package domain

import "time"

// Bike is a catalog record. Available is an administrative override
// ("retired / under maintenance"), fully independent from date-range booking
// state: a bike can be available with zero open ranges, or unavailable while
// still honoring already-confirmed future bookings.
type Bike struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" validate:"required"`
	Type         string    `json:"type" validate:"required"`
	PricePerHour float64   `json:"price_per_hour" validate:"required,gt=0"`
	Available    bool      `json:"available" gorm:"default:true"`
	Description  string    `json:"description" gorm:"type:text"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Bike) TableName() string { return "bikes" }
