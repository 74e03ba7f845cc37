package rental

// CreateRentalRequest is the booking request body. Dates are optional: legacy
// no-date requests hold the bike with a single active rental, dated requests
// occupy an inclusive day range. Dates use the 2006-01-02 layout.
type CreateRentalRequest struct {
	UserID     int64    `json:"user_id" binding:"required"`
	BikeID     int64    `json:"bike_id" binding:"required"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	TotalPrice *float64 `json:"total_price"`
}
