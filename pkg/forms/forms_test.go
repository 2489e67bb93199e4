package forms

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/edwinjebakumar/clientportal/models"
)

// newTestDB opens an in-memory database with the portal schema and a seeded
// field type catalog.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.FieldType{}, &models.BaseTemplate{},
		&models.FormTemplate{}, &models.FormField{}, &models.Client{},
		&models.FormAssignment{}, &models.Submission{}, &models.SubmissionFile{},
		&models.ActivityHistory{})
	require.NoError(t, err)

	require.NoError(t, NewRegistry(db).Seed())
	return db
}

func createTestClient(t *testing.T, db *gorm.DB, name string) *models.Client {
	t.Helper()
	client := models.Client{Name: name}
	require.NoError(t, db.Create(&client).Error)
	return &client
}

func createTestTemplate(t *testing.T, db *gorm.DB, catalog *Catalog) *models.FormTemplate {
	t.Helper()
	template, err := catalog.CreateTemplate(TemplateInput{
		Name:        "KYC",
		Description: "Know your customer",
		Fields: []FieldInput{
			{Label: "Full Name", TypeName: "Text", IsRequired: true, FieldOrder: 0},
			{Label: "Country", TypeName: "Dropdown", IsRequired: true,
				Options: []byte(`["NL","IN","US"]`), FieldOrder: 1},
		},
	})
	require.NoError(t, err)
	return template
}
