package forms

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/edwinjebakumar/clientportal/models"
)

// builtinFieldTypes is the fixed catalog seeded on first use, in display order.
var builtinFieldTypes = []string{
	"Text", "Number", "Date", "Dropdown", "Checkbox", "Radio", "Email", "Phone",
}

// choiceFieldTypes are the kinds that require a non-empty options list.
var choiceFieldTypes = map[string]bool{
	"Dropdown": true,
	"Radio":    true,
}

// Registry exposes the catalog of field types and the per-type options rules.
type Registry struct {
	db *gorm.DB
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// Seed inserts the built-in field types if the table is empty. Safe to call
// more than once; a populated table is left untouched.
func (r *Registry) Seed() error {
	var count int64
	if err := r.db.Model(&models.FieldType{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting field types: %w", err)
	}
	if count > 0 {
		return nil
	}

	types := make([]models.FieldType, 0, len(builtinFieldTypes))
	for i, name := range builtinFieldTypes {
		types = append(types, models.FieldType{Name: name, DisplayOrder: i})
	}
	if err := r.db.Create(&types).Error; err != nil {
		return fmt.Errorf("seeding field types: %w", err)
	}
	return nil
}

// ListTypes returns the catalog in display order.
func (r *Registry) ListTypes() ([]models.FieldType, error) {
	var types []models.FieldType
	if err := r.db.Order("display_order asc").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// FindByName resolves a field type by its name, case-sensitively.
func (r *Registry) FindByName(name string) (*models.FieldType, error) {
	var ft models.FieldType
	if err := r.db.Where("name = ?", name).First(&ft).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, validationf("unknown field type %q", name)
		}
		return nil, err
	}
	return &ft, nil
}

// IsChoiceType reports whether the named type renders a fixed choice list.
func IsChoiceType(name string) bool {
	return choiceFieldTypes[name]
}

// ValidateOptions checks the options payload against the rules for the given
// field type. Choice types require a non-blank options list; every other type
// accepts empty options. Non-empty options must be valid JSON.
func (r *Registry) ValidateOptions(typeName string, options []byte) error {
	blank := len(options) == 0 || strings.TrimSpace(string(options)) == "" ||
		string(options) == "null"

	if blank {
		if IsChoiceType(typeName) {
			return validationf("field type %s requires options", typeName)
		}
		return nil
	}
	if !json.Valid(options) {
		return validationf("options for field type %s must be valid JSON", typeName)
	}
	return nil
}
