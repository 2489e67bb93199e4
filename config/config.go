package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/edwinjebakumar/clientportal/pkg/forms"
)

var DB *gorm.DB

func Connect() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dsn := os.Getenv("DB_DSN")
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
}

// SubmissionPolicy reads the configured resubmission behavior. Unset or
// unrecognized values fall back to append-only (full history).
func SubmissionPolicy() forms.SubmissionPolicy {
	return forms.ParsePolicy(os.Getenv("SUBMISSION_POLICY"))
}
