package catalog

type BikeRequest struct {
	Name         string  `json:"name" binding:"required"`
	Type         string  `json:"type" binding:"required"`
	PricePerHour float64 `json:"price_per_hour" binding:"required,gt=0"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"image_url"`
	Available    *bool   `json:"available"`
}

type AvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}
