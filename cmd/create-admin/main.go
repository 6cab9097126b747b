package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"homefind/internal/entity"
	"homefind/internal/repo/persistent"
	"homefind/pkg/config"
	"homefind/pkg/database"

	"golang.org/x/crypto/bcrypt"
)

// Creates an admin account with the verification capabilities. Run once
// during deployment; admin accounts cannot be created over the API.
func main() {
	var (
		email    = flag.String("email", "", "admin email")
		phone    = flag.String("phone", "", "admin phone number")
		fullName = flag.String("name", "Administrator", "admin full name")
		password = flag.String("password", "", "admin password")
	)
	flag.Parse()

	if *email == "" || *password == "" || *phone == "" {
		log.Fatal("email, phone and password are required")
	}
	if len(*password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &entity.User{
		Email:       *email,
		PhoneNumber: *phone,
		FullName:    *fullName,
		Password:    string(hash),
		Capabilities: []entity.Capability{
			entity.CapabilityBrowseProperties,
			entity.CapabilityAdminAccess,
			entity.CapabilityVerifyListing,
			entity.CapabilityCreateListing,
		},
		VerificationLevel: entity.LevelIdentityVerified,
		IsActive:          true,
	}

	userRepo := persistent.NewUserRepository(db)
	if err := userRepo.Create(context.Background(), admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Admin account created: %s (%s)\n", admin.Email, admin.ID)
}
