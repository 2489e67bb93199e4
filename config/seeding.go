package config

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/edwinjebakumar/clientportal/models"
	"github.com/edwinjebakumar/clientportal/pkg/forms"
)

// RunAllSeeding runs all seeding operations in the correct order. Every step
// checks for existing data first, so re-running is safe.
func RunAllSeeding() error {
	log.Println("=== Starting Database Seeding ===")

	log.Println("[1/4] Seeding Field Types...")
	if err := forms.NewRegistry(DB).Seed(); err != nil {
		return err
	}

	log.Println("[2/4] Seeding Admin User...")
	SeedAdminUser()

	log.Println("[3/4] Seeding Clients...")
	SeedClients()

	log.Println("[4/4] Seeding Templates...")
	SeedTemplates()

	log.Println("=== Database Seeding Complete ===")
	return nil
}

// SeedAdminUser creates the default portal administrator if no admin exists.
func SeedAdminUser() {
	var count int64
	DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin@123456"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Warning: could not hash admin password: %v", err)
		return
	}

	admin := models.User{
		Name:         "Portal Admin",
		Email:        "admin@clientportal.com",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Warning: could not seed admin user: %v", err)
	}
}

// SeedClients creates the demo client organizations.
func SeedClients() {
	var count int64
	DB.Model(&models.Client{}).Count(&count)
	if count > 0 {
		return
	}

	clients := []models.Client{
		{Name: "EdCorp"},
		{Name: "EmiCorp"},
		{Name: "ElshaCorp"},
	}
	if err := DB.Create(&clients).Error; err != nil {
		log.Printf("Warning: could not seed clients: %v", err)
	}
}

// SeedTemplates creates the base KYC template and a pair of demo templates
// derived from it.
func SeedTemplates() {
	var count int64
	DB.Model(&models.FormTemplate{}).Count(&count)
	if count > 0 {
		return
	}

	base := models.BaseTemplate{
		Name:        "Base KYC Template",
		Description: "Standard KYC fields",
	}
	if err := DB.Where("name = ?", base.Name).FirstOrCreate(&base).Error; err != nil {
		log.Printf("Warning: could not seed base template: %v", err)
		return
	}

	var textType, dropdownType models.FieldType
	if err := DB.Where("name = ?", "Text").First(&textType).Error; err != nil {
		log.Printf("Warning: field types not seeded yet: %v", err)
		return
	}
	if err := DB.Where("name = ?", "Dropdown").First(&dropdownType).Error; err != nil {
		log.Printf("Warning: field types not seeded yet: %v", err)
		return
	}

	templates := []models.FormTemplate{
		{
			Name:           "Client Onboarding",
			Description:    "Initial onboarding questionnaire",
			BaseTemplateID: &base.ID,
			Fields: []models.FormField{
				{Label: "Full Name", FieldTypeID: textType.ID, IsRequired: true, FieldOrder: 0},
				{Label: "Company Role", FieldTypeID: dropdownType.ID, IsRequired: true,
					OptionsJson: datatypes.JSON(`["Director","Officer","Employee"]`), FieldOrder: 1},
			},
		},
		{
			Name:        "Quarterly Feedback",
			Description: "Free-form feedback for account managers",
			Fields: []models.FormField{
				{Label: "Feedback", FieldTypeID: textType.ID, IsRequired: false, FieldOrder: 0},
			},
		},
	}
	if err := DB.Create(&templates).Error; err != nil {
		log.Printf("Warning: could not seed templates: %v", err)
	}
}
