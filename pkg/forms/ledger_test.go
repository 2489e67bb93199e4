package forms

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwinjebakumar/clientportal/models"
)

func TestAssignDuplicateConflict(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalog(db, NewRegistry(db))
	ledger := NewLedger(db)

	client := createTestClient(t, db, "EdCorp")
	template := createTestTemplate(t, db, catalog)

	first, err := ledger.Assign(client.ID, template.ID, "kickoff")
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentStatusPending, first.Status)
	assert.Equal(t, "kickoff", first.Notes)
	assert.False(t, first.AssignedAt.IsZero())

	_, err = ledger.Assign(client.ID, template.ID, "")
	assert.ErrorIs(t, err, ErrConflict)

	var count int64
	require.NoError(t, db.Model(&models.FormAssignment{}).
		Where("client_id = ?", client.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAssignMissingReferences(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalog(db, NewRegistry(db))
	ledger := NewLedger(db)

	client := createTestClient(t, db, "EdCorp")
	template := createTestTemplate(t, db, catalog)

	_, err := ledger.Assign(uuid.New(), template.ID, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ledger.Assign(client.ID, uuid.New(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByClientOrderingAndEnrichment(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalog(db, NewRegistry(db))
	ledger := NewLedger(db)
	store := NewStore(db, PolicyAppendOnly)

	client := createTestClient(t, db, "EmiCorp")
	older := createTestTemplate(t, db, catalog)
	newer, err := catalog.CreateTemplate(TemplateInput{Name: "Feedback", Description: "quarterly"})
	require.NoError(t, err)

	a1, err := ledger.Assign(client.ID, older.ID, "")
	require.NoError(t, err)
	// Force distinct assignment times; sqlite timestamps are fine-grained
	// but the insert order alone is not what we sort on.
	require.NoError(t, db.Model(a1).Update("assigned_at", time.Now().UTC().Add(-time.Hour)).Error)
	_, err = ledger.Assign(client.ID, newer.ID, "")
	require.NoError(t, err)

	_, err = store.Submit(a1.ID, "u1", []byte(`{"Full Name":"Ada","Country":"NL"}`))
	require.NoError(t, err)

	overviews, err := ledger.ListByClient(client.ID)
	require.NoError(t, err)
	require.Len(t, overviews, 2)

	// newest assignment first
	assert.Equal(t, "Feedback", overviews[0].FormTemplateName)
	assert.Equal(t, "quarterly", overviews[0].TemplateDescription)
	assert.Nil(t, overviews[0].LastSubmissionDate)

	assert.Equal(t, "KYC", overviews[1].FormTemplateName)
	require.NotNil(t, overviews[1].LastSubmissionDate)
	assert.Equal(t, models.AssignmentStatusSubmitted, overviews[1].Status)
}

func TestMarkSubmittedIdempotent(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalog(db, NewRegistry(db))
	ledger := NewLedger(db)

	client := createTestClient(t, db, "EdCorp")
	template := createTestTemplate(t, db, catalog)
	assignment, err := ledger.Assign(client.ID, template.ID, "")
	require.NoError(t, err)

	require.NoError(t, ledger.MarkSubmitted(assignment.ID))
	require.NoError(t, ledger.MarkSubmitted(assignment.ID)) // no-op, not an error

	got, err := ledger.GetAssignment(assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentStatusSubmitted, got.Status)
}

func TestDeleteClientBlockedByAssignments(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalog(db, NewRegistry(db))
	ledger := NewLedger(db)

	client := createTestClient(t, db, "ElshaCorp")
	template := createTestTemplate(t, db, catalog)
	assignment, err := ledger.Assign(client.ID, template.ID, "")
	require.NoError(t, err)

	err = ledger.DeleteClient(client.ID)
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, ledger.Unassign(assignment.ID))
	require.NoError(t, ledger.DeleteClient(client.ID))

	var count int64
	require.NoError(t, db.Model(&models.Client{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUnassignRemovesSubmissionHistory(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalog(db, NewRegistry(db))
	ledger := NewLedger(db)
	store := NewStore(db, PolicyAppendOnly)

	client := createTestClient(t, db, "EdCorp")
	template := createTestTemplate(t, db, catalog)
	assignment, err := ledger.Assign(client.ID, template.ID, "")
	require.NoError(t, err)
	_, err = store.Submit(assignment.ID, "u1", []byte(`{"Full Name":"Ada","Country":"NL"}`))
	require.NoError(t, err)

	require.NoError(t, ledger.Unassign(assignment.ID))

	var submissions, history int64
	require.NoError(t, db.Model(&models.Submission{}).Count(&submissions).Error)
	require.NoError(t, db.Model(&models.ActivityHistory{}).Count(&history).Error)
	assert.Equal(t, int64(0), submissions)
	assert.Equal(t, int64(0), history)
}
