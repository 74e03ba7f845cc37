package pricing

type QuoteRequest struct {
	BikeID      int64    `json:"bike_id" binding:"required"`
	Demand      float64  `json:"demand" binding:"gte=0"`
	Seasonality *float64 `json:"seasonality" binding:"omitempty,gt=0"`
	Tier        string   `json:"tier" binding:"omitempty,oneof=regular frequent premium"`
}
