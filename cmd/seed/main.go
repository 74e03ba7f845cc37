package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"bikerental/internal/config"
	"bikerental/internal/database"
	"bikerental/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM rentals")
	db.Exec("DELETE FROM bikes")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		FullName:     "Admin",
		Email:        "admin@bikerental.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@bikerental.local / admin123")

	riderHash, _ := bcrypt.GenerateFromPassword([]byte("rider123"), bcrypt.DefaultCost)
	rider := domain.User{
		FullName:     "Demo Rider",
		Email:        "rider@bikerental.local",
		PasswordHash: string(riderHash),
		Role:         domain.RoleUser,
	}
	db.Create(&rider)

	log.Println("Creating bikes...")

	bikes := []domain.Bike{
		{Name: "Trail Blazer", Type: "Mountain", PricePerHour: 12, Available: true, Description: "Front suspension, 21 speeds"},
		{Name: "Volt Cruiser", Type: "Electric", PricePerHour: 25, Available: true, Description: "500W motor, 60km range"},
		{Name: "City Mix", Type: "Hybrid", PricePerHour: 15, Available: true, Description: "Comfortable commuter"},
		{Name: "Road Runner", Type: "Highway", PricePerHour: 18, Available: true, Description: "Lightweight road frame"},
		{Name: "Volt Peak", Type: "Electric Mountain", PricePerHour: 30, Available: true, Description: "Full suspension e-MTB"},
		{Name: "Old Faithful", Type: "Hybrid", PricePerHour: 10, Available: false, Description: "Under maintenance"},
	}
	for i := range bikes {
		db.Create(&bikes[i])
	}

	log.Printf("Seeded %d bikes", len(bikes))
}
