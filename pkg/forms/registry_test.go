package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwinjebakumar/clientportal/models"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := newTestDB(t) // seeds once
	registry := NewRegistry(db)

	require.NoError(t, registry.Seed()) // second call must not duplicate

	var count int64
	require.NoError(t, db.Model(&models.FieldType{}).Count(&count).Error)
	assert.Equal(t, int64(8), count)
}

func TestListTypesOrder(t *testing.T) {
	db := newTestDB(t)

	types, err := NewRegistry(db).ListTypes()
	require.NoError(t, err)
	require.Len(t, types, 8)

	names := make([]string, len(types))
	for i, ft := range types {
		names[i] = ft.Name
	}
	assert.Equal(t, []string{"Text", "Number", "Date", "Dropdown", "Checkbox", "Radio", "Email", "Phone"}, names)
}

func TestValidateOptions(t *testing.T) {
	db := newTestDB(t)
	registry := NewRegistry(db)

	tests := []struct {
		name     string
		typeName string
		options  string
		wantErr  bool
	}{
		{"dropdown with options", "Dropdown", `["A","B"]`, false},
		{"dropdown without options", "Dropdown", "", true},
		{"dropdown with blank options", "Dropdown", "   ", true},
		{"dropdown with null options", "Dropdown", "null", true},
		{"radio without options", "Radio", "", true},
		{"radio with options", "Radio", `["Yes","No"]`, false},
		{"text without options", "Text", "", false},
		{"text with options", "Text", `["ignored"]`, false},
		{"number without options", "Number", "", false},
		{"dropdown with invalid JSON", "Dropdown", `["A",`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.ValidateOptions(tt.typeName, []byte(tt.options))
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFindByNameUnknownType(t *testing.T) {
	db := newTestDB(t)

	_, err := NewRegistry(db).FindByName("Signature")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
