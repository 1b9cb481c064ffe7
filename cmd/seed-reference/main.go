package main

import (
	"errors"
	"log"
	"os"

	"permit-management-api/config"
	"permit-management-api/models"
	"permit-management-api/services"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds the permit type catalogue, a starter set of assemblies and an admin
// account. Safe to re-run: existing rows are left alone.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()

	if err := services.EnsureReferenceData(config.DB); err != nil {
		log.Fatalf("Failed to seed permit types: %v", err)
	}

	if err := seedAssemblies(config.DB); err != nil {
		log.Fatalf("Failed to seed assemblies: %v", err)
	}

	if err := seedAdmin(config.DB); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	log.Println("Reference data seeded")
}

type assemblySeed struct {
	name        string
	region      string
	mmdaType    string
	departments []string
	committees  []string
}

var assemblySeeds = []assemblySeed{
	{
		name:        "Accra Metropolitan Assembly",
		region:      "Greater Accra",
		mmdaType:    "metropolitan",
		departments: []string{"Physical Planning", "Works", "Environmental Health"},
		committees:  []string{"Spatial Planning Committee", "Works Sub-Committee"},
	},
	{
		name:        "Kumasi Metropolitan Assembly",
		region:      "Ashanti",
		mmdaType:    "metropolitan",
		departments: []string{"Physical Planning", "Works"},
		committees:  []string{"Spatial Planning Committee"},
	},
	{
		name:        "Tamale Metropolitan Assembly",
		region:      "Northern",
		mmdaType:    "metropolitan",
		departments: []string{"Physical Planning"},
		committees:  []string{"Spatial Planning Committee"},
	},
}

func seedAssemblies(db *gorm.DB) error {
	for _, seed := range assemblySeeds {
		var mmda models.MMDA
		err := db.Where("name = ?", seed.name).First(&mmda).Error
		switch {
		case err == nil:
			continue
		case errors.Is(err, gorm.ErrRecordNotFound):
			// create below
		default:
			return err
		}

		mmda = models.MMDA{Name: seed.name, Region: seed.region, Type: seed.mmdaType}
		if err := db.Create(&mmda).Error; err != nil {
			return err
		}
		for _, name := range seed.departments {
			if err := db.Create(&models.Department{MMDAID: mmda.ID, Name: name}).Error; err != nil {
				return err
			}
		}
		for _, name := range seed.committees {
			if err := db.Create(&models.Committee{MMDAID: mmda.ID, Name: name}).Error; err != nil {
				return err
			}
		}
		log.Printf("Seeded %s", seed.name)
	}
	return nil
}

func seedAdmin(db *gorm.DB) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD not set, skipping admin account")
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashString := string(hash)

	admin := models.User{
		Email:                 &email,
		PasswordHash:          &hashString,
		Role:                  models.RoleAdmin,
		IsActive:              true,
		PreferredVerification: "email",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Seeded admin account %s", email)
	return nil
}
