package forms

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edwinjebakumar/clientportal/models"
)

// SubmissionPolicy decides what a repeated submission against the same
// assignment does. AppendOnly inserts a new row every time and keeps the
// full history; UpsertPerUser rewrites the caller's existing row in place
// and logs the change as an Edit.
type SubmissionPolicy string

const (
	PolicyAppendOnly    SubmissionPolicy = "append"
	PolicyUpsertPerUser SubmissionPolicy = "upsert"
)

// ParsePolicy maps a config string onto a policy, defaulting to append-only.
func ParsePolicy(s string) SubmissionPolicy {
	if SubmissionPolicy(s) == PolicyUpsertPerUser {
		return PolicyUpsertPerUser
	}
	return PolicyAppendOnly
}

// Store records submissions against assignments and appends the audit trail.
type Store struct {
	db     *gorm.DB
	policy SubmissionPolicy
}

func NewStore(db *gorm.DB, policy SubmissionPolicy) *Store {
	return &Store{db: db, policy: policy}
}

// Submit records a filled form. The submission write, the assignment status
// transition and the audit append run in one transaction; a failure in any
// step leaves no partial state.
func (s *Store) Submit(assignmentID uuid.UUID, userID string, data []byte) (*models.Submission, error) {
	if userID == "" {
		return nil, validationf("submitting user is required")
	}
	if !json.Valid(data) {
		return nil, validationf("submission data must be valid JSON")
	}

	var assignment models.FormAssignment
	if err := s.db.First(&assignment, "id = ?", assignmentID).Error; err != nil {
		return nil, notFoundOr(err)
	}

	var submission models.Submission
	err := s.db.Transaction(func(tx *gorm.DB) error {
		action := models.ActionSubmit

		if s.policy == PolicyUpsertPerUser {
			var existing models.Submission
			err := tx.Where("form_assignment_id = ? AND submitted_by_user_id = ?", assignmentID, userID).
				First(&existing).Error
			switch {
			case err == nil:
				existing.DataJson = data
				existing.SubmittedAt = time.Now().UTC()
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				submission = existing
				action = models.ActionEdit
			case err == gorm.ErrRecordNotFound:
				submission = models.Submission{
					FormAssignmentID:  assignmentID,
					SubmittedByUserID: userID,
					DataJson:          data,
					SubmittedAt:       time.Now().UTC(),
				}
				if err := tx.Create(&submission).Error; err != nil {
					return err
				}
			default:
				return err
			}
		} else {
			submission = models.Submission{
				FormAssignmentID:  assignmentID,
				SubmittedByUserID: userID,
				DataJson:          data,
				SubmittedAt:       time.Now().UTC(),
			}
			if err := tx.Create(&submission).Error; err != nil {
				return err
			}
		}

		if err := markSubmitted(tx, assignmentID); err != nil {
			return err
		}

		description := "Initial submission"
		if action == models.ActionEdit {
			description = "Submission updated"
		}
		return logActivity(tx, submission.ID, userID, action, data, description)
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// GetLatest returns the most recent submission for an assignment.
func (s *Store) GetLatest(assignmentID uuid.UUID) (*models.Submission, error) {
	var submission models.Submission
	err := s.db.
		Where("form_assignment_id = ?", assignmentID).
		Order("submitted_at desc").
		First(&submission).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &submission, nil
}

// ListByAssignment returns all submissions for an assignment, newest first.
func (s *Store) ListByAssignment(assignmentID uuid.UUID) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.db.
		Where("form_assignment_id = ?", assignmentID).
		Order("submitted_at desc").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// GetDetails loads a submission with its parent assignment and template.
func (s *Store) GetDetails(id uuid.UUID) (*models.Submission, error) {
	var submission models.Submission
	err := s.db.
		Preload("FormAssignment").
		Preload("FormAssignment.FormTemplate").
		First(&submission, "id = ?", id).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &submission, nil
}

// LogActivity appends one audit record. The snapshot is stored verbatim;
// the only check is that it is syntactically valid JSON when present.
func (s *Store) LogActivity(submissionID uuid.UUID, userID, actionType string, snapshot []byte, description string) error {
	return logActivity(s.db, submissionID, userID, actionType, snapshot, description)
}

func logActivity(db *gorm.DB, submissionID uuid.UUID, userID, actionType string, snapshot []byte, description string) error {
	if len(snapshot) > 0 && !json.Valid(snapshot) {
		return validationf("activity snapshot must be valid JSON")
	}
	activity := models.ActivityHistory{
		SubmissionID:      submissionID,
		PerformedByUserID: userID,
		ActionType:        actionType,
		Description:       description,
		DataSnapshot:      snapshot,
		PerformedAt:       time.Now().UTC(),
	}
	if err := db.Create(&activity).Error; err != nil {
		return fmt.Errorf("appending activity: %w", err)
	}
	return nil
}

// ListActivityBySubmission returns a submission's audit trail, newest first.
func (s *Store) ListActivityBySubmission(submissionID uuid.UUID) ([]models.ActivityHistory, error) {
	var history []models.ActivityHistory
	err := s.db.
		Where("submission_id = ?", submissionID).
		Order("performed_at desc").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

// ListActivityByUser returns everything a user did, newest first.
func (s *Store) ListActivityByUser(userID string) ([]models.ActivityHistory, error) {
	var history []models.ActivityHistory
	err := s.db.
		Where("performed_by_user_id = ?", userID).
		Order("performed_at desc").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

// AttachFile records an uploaded attachment against a submission.
func (s *Store) AttachFile(submissionID uuid.UUID, filePath, originalName string) (*models.SubmissionFile, error) {
	var submission models.Submission
	if err := s.db.First(&submission, "id = ?", submissionID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	file := models.SubmissionFile{
		SubmissionID:     submissionID,
		FilePath:         filePath,
		OriginalFileName: originalName,
		UploadedAt:       time.Now().UTC(),
	}
	if err := s.db.Create(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// ListFiles returns a submission's attachments in upload order.
func (s *Store) ListFiles(submissionID uuid.UUID) ([]models.SubmissionFile, error) {
	var files []models.SubmissionFile
	err := s.db.
		Where("submission_id = ?", submissionID).
		Order("uploaded_at asc").
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}
