package forms

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edwinjebakumar/clientportal/models"
)

// AssignmentOverview is the per-client listing shape: the assignment enriched
// with template naming and the most recent submission timestamp.
type AssignmentOverview struct {
	ID                  uuid.UUID  `json:"id"`
	ClientID            uuid.UUID  `json:"clientId"`
	FormTemplateID      uuid.UUID  `json:"formTemplateId"`
	FormTemplateName    string     `json:"formTemplateName"`
	TemplateDescription string     `json:"description"`
	AssignedAt          time.Time  `json:"assignedAt"`
	Status              string     `json:"status"`
	Notes               string     `json:"notes,omitempty"`
	LastSubmissionDate  *time.Time `json:"lastSubmissionDate,omitempty"`
}

// Ledger maps templates to client organizations and tracks assignment status.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Assign binds a template to a client. The (client, template) pair is
// unique; a duplicate is a conflict whether caught by the pre-check or by
// the unique index under a concurrent race.
func (l *Ledger) Assign(clientID, templateID uuid.UUID, notes string) (*models.FormAssignment, error) {
	var client models.Client
	if err := l.db.First(&client, "id = ?", clientID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	var template models.FormTemplate
	if err := l.db.First(&template, "id = ?", templateID).Error; err != nil {
		return nil, notFoundOr(err)
	}

	var count int64
	err := l.db.Model(&models.FormAssignment{}).
		Where("client_id = ? AND form_template_id = ?", clientID, templateID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}

	assignment := models.FormAssignment{
		ClientID:       clientID,
		FormTemplateID: templateID,
		AssignedAt:     time.Now().UTC(),
		Status:         models.AssignmentStatusPending,
		Notes:          notes,
	}
	if err := l.db.Create(&assignment).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &assignment, nil
}

// ListByClient returns a client's assignments, most recently assigned first.
func (l *Ledger) ListByClient(clientID uuid.UUID) ([]AssignmentOverview, error) {
	var assignments []models.FormAssignment
	err := l.db.
		Preload("FormTemplate").
		Where("client_id = ?", clientID).
		Order("assigned_at desc").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	overviews := make([]AssignmentOverview, 0, len(assignments))
	for _, a := range assignments {
		ov := AssignmentOverview{
			ID:             a.ID,
			ClientID:       a.ClientID,
			FormTemplateID: a.FormTemplateID,
			AssignedAt:     a.AssignedAt,
			Status:         a.Status,
			Notes:          a.Notes,
		}
		if a.FormTemplate != nil {
			ov.FormTemplateName = a.FormTemplate.Name
			ov.TemplateDescription = a.FormTemplate.Description
		}

		var latest models.Submission
		err := l.db.
			Where("form_assignment_id = ?", a.ID).
			Order("submitted_at desc").
			First(&latest).Error
		if err == nil {
			t := latest.SubmittedAt
			ov.LastSubmissionDate = &t
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		overviews = append(overviews, ov)
	}
	return overviews, nil
}

// GetAssignment loads one assignment with its template and submissions.
func (l *Ledger) GetAssignment(id uuid.UUID) (*models.FormAssignment, error) {
	var assignment models.FormAssignment
	err := l.db.
		Preload("FormTemplate").
		Preload("Submissions", func(db *gorm.DB) *gorm.DB {
			return db.Order("submitted_at desc")
		}).
		First(&assignment, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &assignment, nil
}

// MarkSubmitted transitions an assignment to Submitted. Calling it on an
// already-submitted assignment is a no-op.
func (l *Ledger) MarkSubmitted(id uuid.UUID) error {
	return markSubmitted(l.db, id)
}

// markSubmitted runs against the given handle so SubmissionStore can call it
// inside its transaction.
func markSubmitted(db *gorm.DB, id uuid.UUID) error {
	var assignment models.FormAssignment
	if err := db.First(&assignment, "id = ?", id).Error; err != nil {
		return notFoundOr(err)
	}
	if assignment.Status == models.AssignmentStatusSubmitted {
		return nil
	}
	return db.Model(&assignment).
		Update("status", models.AssignmentStatusSubmitted).Error
}

// Unassign removes an assignment together with its submissions and their
// audit records.
func (l *Ledger) Unassign(id uuid.UUID) error {
	var assignment models.FormAssignment
	if err := l.db.First(&assignment, "id = ?", id).Error; err != nil {
		return notFoundOr(err)
	}
	return l.db.Transaction(func(tx *gorm.DB) error {
		var submissionIDs []uuid.UUID
		if err := tx.Model(&models.Submission{}).
			Where("form_assignment_id = ?", id).
			Pluck("id", &submissionIDs).Error; err != nil {
			return err
		}
		if len(submissionIDs) > 0 {
			if err := tx.Delete(&models.ActivityHistory{}, "submission_id IN ?", submissionIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.SubmissionFile{}, "submission_id IN ?", submissionIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.Submission{}, "id IN ?", submissionIDs).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&assignment).Error
	})
}

// DeleteClient removes a client. Refused while the client still has
// assignments; callers must unassign first.
func (l *Ledger) DeleteClient(id uuid.UUID) error {
	var client models.Client
	if err := l.db.First(&client, "id = ?", id).Error; err != nil {
		return notFoundOr(err)
	}
	var count int64
	err := l.db.Model(&models.FormAssignment{}).
		Where("client_id = ?", id).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	return l.db.Delete(&client).Error
}
