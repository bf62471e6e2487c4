// Package main seeds the database with the admin account and, when
// SEED_DEMO is set, a bundle of demo businesses and a demo customer
// for local development.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"gorm.io/gorm"

	"baartal/internal/config"
	"baartal/internal/models"
	"baartal/internal/repositories"
	"baartal/internal/services/business"
	"baartal/internal/utils"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	if err := seedAdmin(adminEmail, adminPassword, os.Getenv("ADMIN_PHONE")); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	if config.GetBoolEnv("SEED_DEMO", false) {
		if err := seedDemoData(); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
	}
}

func seedAdmin(email, password, phone string) error {
	var existing models.User
	err := repositories.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Println("admin user already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Baartal Admin",
		Phone:        phone,
		UserType:     models.UserTypeAdmin,
		IsActive:     true,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("admin account created")
	return nil
}

// seedDemoData fills one pincode with verified businesses and creates
// a demo customer. Businesses go through the registration service so
// bundle assignment and QR minting follow the production path.
func seedDemoData() error {
	ctx := context.Background()

	userRepo := repositories.NewUserRepository(repositories.DB, repositories.Cache)
	businessRepo := repositories.NewBusinessRepository(repositories.DB, repositories.Cache)
	businessService := business.NewService(businessRepo, userRepo)

	const pincode = "110001"

	demos := []struct {
		owner    string
		email    string
		name     string
		category string
		rate     float64
	}{
		{"Ramesh Sharma", "kirana@demo.baartal.in", "Sharma Kirana Store", models.CategoryKirana, 8},
		{"Sunita Verma", "electronics@demo.baartal.in", "Verma Electronics", models.CategoryElectronics, 5},
		{"Arif Khan", "cafe@demo.baartal.in", "Chandni Chowk Cafe", models.CategoryCafe, 10},
	}

	for _, d := range demos {
		owner, err := ensureUser(d.owner, d.email, models.UserTypeBusiness, pincode)
		if err != nil {
			return err
		}

		rate := d.rate
		result, err := businessService.Register(ctx, business.RegisterRequest{
			OwnerUserID:  owner.ID,
			BusinessName: d.name,
			Category:     d.category,
			Pincode:      pincode,
			BCoinRate:    &rate,
		})
		if err != nil {
			if errors.Is(err, business.ErrBusinessExists) || errors.Is(err, business.ErrCategoryTaken) {
				log.Printf("business %q already seeded", d.name)
				continue
			}
			return err
		}

		// Demo partners start out verified.
		err = repositories.DB.Model(&models.Business{}).
			Where("id = ?", result.Business.ID).
			Update("is_verified", true).Error
		if err != nil {
			return err
		}
		log.Printf("seeded business %q with QR code %s", d.name, result.QRCode.Code)
	}

	customer, err := ensureUser("Demo Customer", "customer@demo.baartal.in", models.UserTypeCustomer, pincode)
	if err != nil {
		return err
	}
	profile := models.CustomerProfile{UserID: customer.ID, PreferredPincode: pincode}
	err = repositories.DB.Where("user_id = ?", customer.ID).FirstOrCreate(&profile).Error
	if err != nil {
		return err
	}
	log.Println("demo data ready")
	return nil
}

func ensureUser(name, email, userType, pincode string) (*models.User, error) {
	var existing models.User
	err := repositories.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(config.GetEnv("SEED_DEMO_PASSWORD", "demo-password"))
	if err != nil {
		return nil, err
	}
	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		UserType:     userType,
		Pincode:      pincode,
		IsActive:     true,
	}
	if err := repositories.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
