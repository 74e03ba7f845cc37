package domain

import "time"

type RentalStatus string

const (
	RentalPending   RentalStatus = "pending"
	RentalConfirmed RentalStatus = "confirmed"
	RentalReturned  RentalStatus = "returned"
	RentalRejected  RentalStatus = "rejected"
	RentalCancelled RentalStatus = "cancelled"
)

// rentalTransitions is the booking lifecycle state machine. Terminal states
// have no successors.
var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalPending:   {RentalConfirmed, RentalRejected, RentalCancelled},
	RentalConfirmed: {RentalReturned},
	RentalReturned:  {},
	RentalRejected:  {},
	RentalCancelled: {},
}

func (s RentalStatus) IsValid() bool {
	_, ok := rentalTransitions[s]
	return ok
}

func (s RentalStatus) CanTransitionTo(target RentalStatus) bool {
	for _, t := range rentalTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s RentalStatus) IsTerminal() bool {
	return len(rentalTransitions[s]) == 0
}

// Rental is a booking of one bike by one user. StartDate/EndDate are optional:
// legacy no-date rentals are simple single-active-rental holds, dated rentals
// occupy an inclusive [StartDate, EndDate] range on the bike.
type Rental struct {
	ID         int64        `json:"id" gorm:"primaryKey"`
	UserID     int64        `json:"user_id" gorm:"index"`
	BikeID     int64        `json:"bike_id" gorm:"index"`
	Status     RentalStatus `json:"status" gorm:"default:pending;index"`
	StartDate  *time.Time   `json:"start_date,omitempty"`
	EndDate    *time.Time   `json:"end_date,omitempty"`
	TotalPrice *float64     `json:"total_price,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	ReturnDate *time.Time   `json:"return_date,omitempty"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Bike *Bike `json:"bike,omitempty" gorm:"foreignKey:BikeID"`
}

func (Rental) TableName() string { return "rentals" }

// IsActive reports whether the rental still occupies the bike.
func (r *Rental) IsActive() bool {
	return r.Status == RentalPending || r.Status == RentalConfirmed
}
