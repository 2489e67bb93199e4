package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/edwinjebakumar/clientportal/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250408_create_portal_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.FieldType{}, &models.BaseTemplate{},
					&models.FormTemplate{}, &models.FormField{}, &models.Client{},
					&models.FormAssignment{}, &models.Submission{}, &models.SubmissionFile{},
					&models.ActivityHistory{})
			},
		},
		{
			ID: "20250514_add_field_order",
			Migrate: func(tx *gorm.DB) error {
				// Column exists on fresh installs via AutoMigrate above; this
				// backfills databases created before ordering was introduced.
				if err := tx.Exec("ALTER TABLE form_fields ADD COLUMN IF NOT EXISTS field_order integer NOT NULL DEFAULT 0").Error; err != nil {
					return err
				}
				return nil
			},
		},
		{
			ID: "20250514_add_assignment_status_and_notes",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Exec("ALTER TABLE form_assignments ADD COLUMN IF NOT EXISTS status varchar(50) NOT NULL DEFAULT 'Pending'").Error; err != nil {
					return err
				}
				if err := tx.Exec("ALTER TABLE form_assignments ADD COLUMN IF NOT EXISTS notes text").Error; err != nil {
					return err
				}
				return nil
			},
		},
	})
	return m.Migrate()
}
