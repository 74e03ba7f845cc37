package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bikerental/internal/database"
	"bikerental/internal/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(s string) *time.Time {
	d := date(s)
	return &d
}

func seedBike(t *testing.T, db *gorm.DB, available bool) *domain.Bike {
	bike := &domain.Bike{Name: "Trail Blazer", Type: "Mountain", PricePerHour: 12, Available: available}
	require.NoError(t, db.Create(bike).Error)
	return bike
}

func seedUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	user := &domain.User{FullName: "Rider", Email: email, PasswordHash: "x", Role: domain.RoleUser}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestRentalRepository_Create_Guards(t *testing.T) {
	db := setupDB(t)
	repo := NewRentalRepository(db)
	ctx := context.Background()

	bike := seedBike(t, db, true)
	user := seedUser(t, db, "a@example.com")
	other := seedUser(t, db, "b@example.com")

	t.Run("bike missing", func(t *testing.T) {
		err := repo.Create(ctx, &domain.Rental{UserID: user.ID, BikeID: 9999})
		assert.ErrorIs(t, err, domain.ErrBikeNotFound)
	})

	t.Run("bike retired", func(t *testing.T) {
		retired := seedBike(t, db, false)
		err := repo.Create(ctx, &domain.Rental{UserID: user.ID, BikeID: retired.ID})
		assert.ErrorIs(t, err, domain.ErrBikeUnavailable)
	})

	t.Run("insert pending", func(t *testing.T) {
		r := &domain.Rental{
			UserID:    user.ID,
			BikeID:    bike.ID,
			StartDate: datePtr("2024-01-01"),
			EndDate:   datePtr("2024-01-05"),
		}
		require.NoError(t, repo.Create(ctx, r))
		assert.NotZero(t, r.ID)
		assert.Equal(t, domain.RentalPending, r.Status)
	})

	t.Run("duplicate active rental rejected on second call", func(t *testing.T) {
		err := repo.Create(ctx, &domain.Rental{UserID: user.ID, BikeID: bike.ID})
		assert.ErrorIs(t, err, domain.ErrDuplicateRental)
	})

	t.Run("overlapping range from another user rejected", func(t *testing.T) {
		err := repo.Create(ctx, &domain.Rental{
			UserID:    other.ID,
			BikeID:    bike.ID,
			StartDate: datePtr("2024-01-05"),
			EndDate:   datePtr("2024-01-10"),
		})
		assert.ErrorIs(t, err, domain.ErrDateConflict)
	})

	t.Run("disjoint range from another user accepted", func(t *testing.T) {
		err := repo.Create(ctx, &domain.Rental{
			UserID:    other.ID,
			BikeID:    bike.ID,
			StartDate: datePtr("2024-01-06"),
			EndDate:   datePtr("2024-01-10"),
		})
		assert.NoError(t, err)
	})
}

func TestRentalRepository_HasConflict_Boundaries(t *testing.T) {
	db := setupDB(t)
	repo := NewRentalRepository(db)
	ctx := context.Background()

	bike := seedBike(t, db, true)
	user := seedUser(t, db, "a@example.com")

	require.NoError(t, repo.Create(ctx, &domain.Rental{
		UserID:    user.ID,
		BikeID:    bike.ID,
		StartDate: datePtr("2024-01-01"),
		EndDate:   datePtr("2024-01-05"),
	}))

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"identical range", "2024-01-01", "2024-01-05", true},
		{"contained", "2024-01-02", "2024-01-03", true},
		{"containing", "2023-12-25", "2024-01-10", true},
		{"shared boundary day counts as overlap", "2024-01-05", "2024-01-10", true},
		{"shared boundary on the other side", "2023-12-25", "2024-01-01", true},
		{"disjoint after", "2024-01-06", "2024-01-10", false},
		{"disjoint before", "2023-12-25", "2023-12-31", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.HasConflict(ctx, bike.ID, date(tt.start), date(tt.end))
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRentalRepository_HasConflict_IgnoresTerminalStatuses(t *testing.T) {
	db := setupDB(t)
	repo := NewRentalRepository(db)
	ctx := context.Background()

	bike := seedBike(t, db, true)
	user := seedUser(t, db, "a@example.com")

	r := &domain.Rental{
		UserID:    user.ID,
		BikeID:    bike.ID,
		StartDate: datePtr("2024-01-01"),
		EndDate:   datePtr("2024-01-05"),
	}
	require.NoError(t, repo.Create(ctx, r))

	_, err := repo.Transition(ctx, r.ID, domain.RentalCancelled)
	require.NoError(t, err)

	got, err := repo.HasConflict(ctx, bike.ID, date("2024-01-02"), date("2024-01-03"))
	assert.NoError(t, err)
	assert.False(t, got, "cancelled rentals must not occupy the bike")
}

func TestRentalRepository_FindConflicts(t *testing.T) {
	db := setupDB(t)
	repo := NewRentalRepository(db)
	ctx := context.Background()

	bike1 := seedBike(t, db, true)
	bike2 := seedBike(t, db, true)
	bike3 := seedBike(t, db, true)
	user := seedUser(t, db, "a@example.com")

	require.NoError(t, repo.Create(ctx, &domain.Rental{
		UserID: user.ID, BikeID: bike1.ID,
		StartDate: datePtr("2024-03-01"), EndDate: datePtr("2024-03-03"),
	}))
	require.NoError(t, repo.Create(ctx, &domain.Rental{
		UserID: user.ID, BikeID: bike2.ID,
		StartDate: datePtr("2024-03-10"), EndDate: datePtr("2024-03-12"),
	}))
	require.NoError(t, repo.Create(ctx, &domain.Rental{
		UserID: user.ID, BikeID: bike3.ID,
		StartDate: datePtr("2024-03-02"), EndDate: datePtr("2024-03-05"),
	}))

	ids, err := repo.FindConflicts(ctx, date("2024-03-03"), date("2024-03-04"))
	assert.NoError(t, err)
	assert.Equal(t, []int64{bike1.ID, bike3.ID}, ids)
}

func TestRentalRepository_FindActiveByUserAndBike(t *testing.T) {
	db := setupDB(t)
	repo := NewRentalRepository(db)
	ctx := context.Background()

	bike := seedBike(t, db, true)
	user := seedUser(t, db, "a@example.com")

	got, err := repo.FindActiveByUserAndBike(ctx, user.ID, bike.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)

	r := &domain.Rental{UserID: user.ID, BikeID: bike.ID}
	require.NoError(t, repo.Create(ctx, r))

	got, err = repo.FindActiveByUserAndBike(ctx, user.ID, bike.ID)
	assert.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, r.ID, got.ID)
}

func TestRentalRepository_Transition(t *testing.T) {
	db := setupDB(t)
	repo := NewRentalRepository(db)
	ctx := context.Background()

	bike := seedBike(t, db, true)
	user := seedUser(t, db, "a@example.com")

	newPending := func(t *testing.T) *domain.Rental {
		r := &domain.Rental{UserID: user.ID, BikeID: bike.ID}
		require.NoError(t, repo.Create(ctx, r))
		t.Cleanup(func() {
			db.Where("id = ?", r.ID).Delete(&domain.Rental{})
		})
		return r
	}

	t.Run("pending to confirmed", func(t *testing.T) {
		r := newPending(t)
		got, err := repo.Transition(ctx, r.ID, domain.RentalConfirmed)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalConfirmed, got.Status)
		assert.Nil(t, got.ReturnDate)
	})

	t.Run("confirm then confirm fails", func(t *testing.T) {
		r := newPending(t)
		_, err := repo.Transition(ctx, r.ID, domain.RentalConfirmed)
		require.NoError(t, err)
		_, err = repo.Transition(ctx, r.ID, domain.RentalConfirmed)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("return before confirm fails", func(t *testing.T) {
		r := newPending(t)
		_, err := repo.Transition(ctx, r.ID, domain.RentalReturned)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("return stamps return date", func(t *testing.T) {
		r := newPending(t)
		_, err := repo.Transition(ctx, r.ID, domain.RentalConfirmed)
		require.NoError(t, err)

		got, err := repo.Transition(ctx, r.ID, domain.RentalReturned)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalReturned, got.Status)
		require.NotNil(t, got.ReturnDate)
		assert.WithinDuration(t, time.Now().UTC(), *got.ReturnDate, 5*time.Second)
	})

	t.Run("cancel confirmed fails with cancel error", func(t *testing.T) {
		r := newPending(t)
		_, err := repo.Transition(ctx, r.ID, domain.RentalConfirmed)
		require.NoError(t, err)
		_, err = repo.Transition(ctx, r.ID, domain.RentalCancelled)
		assert.ErrorIs(t, err, domain.ErrCancelNotPending)
	})

	t.Run("missing rental", func(t *testing.T) {
		_, err := repo.Transition(ctx, 9999, domain.RentalConfirmed)
		assert.ErrorIs(t, err, domain.ErrRentalNotFound)
	})
}

func TestRentalRepository_Listings(t *testing.T) {
	db := setupDB(t)
	repo := NewRentalRepository(db)
	ctx := context.Background()

	bike := seedBike(t, db, true)
	user := seedUser(t, db, "a@example.com")

	price := 48.0
	require.NoError(t, repo.Create(ctx, &domain.Rental{
		UserID:     user.ID,
		BikeID:     bike.ID,
		StartDate:  datePtr("2024-03-01"),
		EndDate:    datePtr("2024-03-03"),
		TotalPrice: &price,
	}))

	admin, err := repo.ListAllWithDetails(ctx)
	assert.NoError(t, err)
	require.Len(t, admin, 1)
	assert.Equal(t, "Rider", admin[0].UserName)
	assert.Equal(t, "Trail Blazer", admin[0].BikeName)
	assert.Equal(t, "pending", admin[0].Status)

	mine, err := repo.ListByUserWithDetails(ctx, user.ID)
	assert.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mountain", mine[0].BikeType)
	require.NotNil(t, mine[0].TotalPrice)
	assert.Equal(t, 48.0, *mine[0].TotalPrice)

	none, err := repo.ListByUserWithDetails(ctx, user.ID+1)
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestRentalRepository_HistoryQueries(t *testing.T) {
	db := setupDB(t)
	repo := NewRentalRepository(db)
	ctx := context.Background()

	mountain := seedBike(t, db, true)
	electric := &domain.Bike{Name: "Volt", Type: "Electric", PricePerHour: 25, Available: true}
	require.NoError(t, db.Create(electric).Error)
	user := seedUser(t, db, "a@example.com")

	// two returned mountain rides, one confirmed electric ride
	for _, row := range []struct {
		bikeID int64
		status domain.RentalStatus
	}{
		{mountain.ID, domain.RentalReturned},
		{mountain.ID, domain.RentalReturned},
		{electric.ID, domain.RentalConfirmed},
	} {
		require.NoError(t, db.Create(&domain.Rental{
			UserID: user.ID, BikeID: row.bikeID, Status: row.status,
		}).Error)
	}

	prefs, err := repo.TypeFrequenciesForUser(ctx, user.ID)
	assert.NoError(t, err)
	require.Len(t, prefs, 2)
	assert.Equal(t, "Mountain", prefs[0].Type)
	assert.Equal(t, int64(2), prefs[0].Frequency)

	counts, err := repo.AvailableBikesWithCounts(ctx)
	assert.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, mountain.ID, counts[0].ID)
	assert.Equal(t, int64(2), counts[0].RentalCount)
	assert.Equal(t, int64(1), counts[1].RentalCount)
}

func TestRentalRepository_DeleteGuardQueries(t *testing.T) {
	db := setupDB(t)
	repo := NewRentalRepository(db)
	ctx := context.Background()

	bike := seedBike(t, db, true)
	user := seedUser(t, db, "a@example.com")

	r := &domain.Rental{UserID: user.ID, BikeID: bike.ID}
	require.NoError(t, repo.Create(ctx, r))

	active, err := repo.CountActiveByBike(ctx, bike.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), active)

	_, err = repo.Transition(ctx, r.ID, domain.RentalRejected)
	require.NoError(t, err)

	active, err = repo.CountActiveByBike(ctx, bike.ID)
	assert.NoError(t, err)
	assert.Zero(t, active)

	require.NoError(t, repo.DeleteByBike(ctx, nil, bike.ID))
	var cnt int64
	db.Model(&domain.Rental{}).Where("bike_id = ?", bike.ID).Count(&cnt)
	assert.Zero(t, cnt)
}
