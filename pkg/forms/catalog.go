package forms

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edwinjebakumar/clientportal/models"
)

// FieldInput is one field definition supplied by the caller. ID is set only
// on update, to match an existing stored field.
type FieldInput struct {
	ID         *uuid.UUID     `json:"id,omitempty"`
	Label      string         `json:"label"`
	TypeName   string         `json:"fieldTypeName"`
	IsRequired bool           `json:"isRequired"`
	Options    datatypes.JSON `json:"options,omitempty"`
	FieldOrder int            `json:"fieldOrder"`
}

// TemplateInput is the payload for creating or updating a template.
type TemplateInput struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Fields      []FieldInput `json:"fields"`
}

// TemplateSummary is the list-view shape: no fields attached.
type TemplateSummary struct {
	ID          uuid.UUID `json:"templateId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// Catalog defines and validates form templates and their field schemas.
type Catalog struct {
	db       *gorm.DB
	registry *Registry
}

func NewCatalog(db *gorm.DB, registry *Registry) *Catalog {
	return &Catalog{db: db, registry: registry}
}

// resolveFields validates every input field and resolves its type name to a
// stored FieldType. Field order is taken from the caller verbatim; no
// reordering and no dedup.
func (c *Catalog) resolveFields(inputs []FieldInput) ([]models.FormField, error) {
	fields := make([]models.FormField, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.Label) == "" {
			return nil, validationf("field label is required")
		}
		ft, err := c.registry.FindByName(in.TypeName)
		if err != nil {
			return nil, err
		}
		if err := c.registry.ValidateOptions(ft.Name, in.Options); err != nil {
			return nil, err
		}
		fields = append(fields, models.FormField{
			Label:       in.Label,
			FieldTypeID: ft.ID,
			IsRequired:  in.IsRequired,
			OptionsJson: in.Options,
			FieldOrder:  in.FieldOrder,
		})
	}
	return fields, nil
}

// CreateTemplate persists a new template with its fields.
func (c *Catalog) CreateTemplate(input TemplateInput) (*models.FormTemplate, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, validationf("template name is required")
	}
	fields, err := c.resolveFields(input.Fields)
	if err != nil {
		return nil, err
	}

	template := models.FormTemplate{
		Name:        input.Name,
		Description: input.Description,
		Fields:      fields,
	}
	if err := c.db.Create(&template).Error; err != nil {
		return nil, err
	}
	return c.GetTemplate(template.ID)
}

// GetTemplate loads a template with its fields sorted by field order, each
// annotated with the resolved field type.
func (c *Catalog) GetTemplate(id uuid.UUID) (*models.FormTemplate, error) {
	var template models.FormTemplate
	err := c.db.
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("field_order asc")
		}).
		Preload("Fields.FieldType").
		First(&template, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &template, nil
}

// ListTemplates returns id/name/description summaries for all templates.
func (c *Catalog) ListTemplates() ([]TemplateSummary, error) {
	var templates []models.FormTemplate
	if err := c.db.Order("created_at asc").Find(&templates).Error; err != nil {
		return nil, err
	}
	summaries := make([]TemplateSummary, 0, len(templates))
	for _, t := range templates {
		summaries = append(summaries, TemplateSummary{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
		})
	}
	return summaries, nil
}

// UpdateTemplate reconciles the stored field set against the input: fields
// with a matching stored id are updated in place, fields without one are
// inserted, stored fields absent from the input are deleted. Templates marked
// base/derived are locked.
func (c *Catalog) UpdateTemplate(id uuid.UUID, input TemplateInput) (*models.FormTemplate, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, validationf("template name is required")
	}

	var template models.FormTemplate
	if err := c.db.Preload("Fields").First(&template, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if template.IsLocked() {
		return nil, ErrForbidden
	}

	existing := make(map[uuid.UUID]models.FormField, len(template.Fields))
	for _, f := range template.Fields {
		existing[f.ID] = f
	}

	var updates, inserts []models.FormField
	seen := make(map[uuid.UUID]bool)
	for _, in := range input.Fields {
		if strings.TrimSpace(in.Label) == "" {
			return nil, validationf("field label is required")
		}
		ft, err := c.registry.FindByName(in.TypeName)
		if err != nil {
			return nil, err
		}
		if err := c.registry.ValidateOptions(ft.Name, in.Options); err != nil {
			return nil, err
		}

		if in.ID != nil {
			if stored, ok := existing[*in.ID]; ok {
				stored.Label = in.Label
				stored.FieldTypeID = ft.ID
				stored.IsRequired = in.IsRequired
				stored.OptionsJson = in.Options
				stored.FieldOrder = in.FieldOrder
				updates = append(updates, stored)
				seen[*in.ID] = true
				continue
			}
		}
		inserts = append(inserts, models.FormField{
			FormTemplateID: template.ID,
			Label:          in.Label,
			FieldTypeID:    ft.ID,
			IsRequired:     in.IsRequired,
			OptionsJson:    in.Options,
			FieldOrder:     in.FieldOrder,
		})
	}

	var removals []uuid.UUID
	for fid := range existing {
		if !seen[fid] {
			removals = append(removals, fid)
		}
	}

	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&template).Updates(map[string]interface{}{
			"name":        input.Name,
			"description": input.Description,
		}).Error; err != nil {
			return err
		}
		for i := range updates {
			if err := tx.Save(&updates[i]).Error; err != nil {
				return err
			}
		}
		if len(inserts) > 0 {
			if err := tx.Create(&inserts).Error; err != nil {
				return err
			}
		}
		if len(removals) > 0 {
			if err := tx.Delete(&models.FormField{}, "id IN ?", removals).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.GetTemplate(id)
}

// DeleteTemplate removes a template and cascades its fields. Locked
// templates are refused.
func (c *Catalog) DeleteTemplate(id uuid.UUID) error {
	var template models.FormTemplate
	if err := c.db.First(&template, "id = ?", id).Error; err != nil {
		return notFoundOr(err)
	}
	if template.IsLocked() {
		return ErrForbidden
	}
	return c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.FormField{}, "form_template_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&template).Error
	})
}

// CloneTemplate builds an unsaved copy of a template: name prefixed
// "Copy of ", fields copied without ids so the draft can be created
// independently. The clone's BaseTemplateID points at the source when the
// source is itself an ancestor, otherwise at the source's own ancestor.
func (c *Catalog) CloneTemplate(id uuid.UUID) (*models.FormTemplate, error) {
	source, err := c.GetTemplate(id)
	if err != nil {
		return nil, err
	}

	baseID := source.BaseTemplateID
	if baseID == nil {
		srcID := source.ID
		baseID = &srcID
	}

	clone := &models.FormTemplate{
		Name:           "Copy of " + source.Name,
		Description:    source.Description,
		BaseTemplateID: baseID,
	}
	for _, f := range source.Fields {
		clone.Fields = append(clone.Fields, models.FormField{
			Label:       f.Label,
			FieldTypeID: f.FieldTypeID,
			IsRequired:  f.IsRequired,
			OptionsJson: f.OptionsJson,
			FieldOrder:  f.FieldOrder,
		})
	}
	return clone, nil
}

// SaveClone persists a draft produced by CloneTemplate.
func (c *Catalog) SaveClone(clone *models.FormTemplate) (*models.FormTemplate, error) {
	if err := c.db.Create(clone).Error; err != nil {
		return nil, err
	}
	return c.GetTemplate(clone.ID)
}
