package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/2beens/bodycomp/internal/assessments"
	"github.com/2beens/bodycomp/internal/bodycomp"
	"github.com/2beens/bodycomp/internal/bodycomp/progress"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSchemaRepo implements SchemaRepo for service tests.
type mockSchemaRepo struct {
	cols []SchemaColumn
	err  error
}

func (m *mockSchemaRepo) GetAssessmentColumns(_ context.Context) ([]SchemaColumn, error) {
	return m.cols, m.err
}

// mockAssessmentsService implements assessmentsService for service tests.
type mockAssessmentsService struct {
	listParams  assessments.ListParams
	list        []assessments.Assessment
	listErr     error
	report      *assessments.ProgressReport
	progressErr error
}

func (m *mockAssessmentsService) Preview(in bodycomp.MeasurementInput) assessments.PreviewResponse {
	result, ok := bodycomp.Estimate(in)
	return assessments.PreviewResponse{Result: result, Complete: ok}
}

func (m *mockAssessmentsService) List(_ context.Context, params assessments.ListParams) ([]assessments.Assessment, error) {
	m.listParams = params
	return m.list, m.listErr
}

func (m *mockAssessmentsService) Progress(_ context.Context, _ uuid.UUID) (*assessments.ProgressReport, error) {
	return m.report, m.progressErr
}

func TestContextService_GetSchema(t *testing.T) {
	def := "nextval('body_assessment_id_seq'::regclass)"
	svc := NewContextService(&mockSchemaRepo{
		cols: []SchemaColumn{
			{TableName: assessmentsTable, ColumnName: "id", DataType: "integer", IsNullable: "NO", ColumnDef: &def},
			{TableName: assessmentsTable, ColumnName: "body_fat_pct", DataType: "double precision", IsNullable: "YES"},
		},
	}, &mockAssessmentsService{})

	text, err := svc.GetSchema(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "## body_assessment")
	assert.Contains(t, text, "| id | integer | NO | "+def+" |")
	assert.Contains(t, text, "| body_fat_pct | double precision | YES | - |")

	svc = NewContextService(&mockSchemaRepo{}, &mockAssessmentsService{})
	text, err = svc.GetSchema(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "not found")

	svc = NewContextService(&mockSchemaRepo{err: errors.New("db gone")}, &mockAssessmentsService{})
	_, err = svc.GetSchema(context.Background())
	assert.EqualError(t, err, "db gone")
}

func TestContextService_GetProgress(t *testing.T) {
	subjectID := uuid.MustParse("5b3e8a52-3f1c-4d7e-9a55-1d0c1b2a9f10")
	from := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	svc := NewContextService(&mockSchemaRepo{}, &mockAssessmentsService{
		report: &assessments.ProgressReport{
			SubjectID:   subjectID,
			Assessments: 3,
			From:        &from,
			To:          &to,
			Lines: []progress.Line{
				{Text: "Body fat fell from 16.2% to 13.05%", Positive: true},
				{Text: "Contracted arm decreased by 1.0cm (35cm → 34cm)", Positive: false},
			},
		},
	})

	text, err := svc.GetProgress(context.Background(), subjectID)
	require.NoError(t, err)
	assert.Equal(t,
		"Progress of subject 5b3e8a52-3f1c-4d7e-9a55-1d0c1b2a9f10, 3 assessment(s), 2025-01-10 to 2025-03-10.\n"+
			"[+] Body fat fell from 16.2% to 13.05%\n"+
			"[-] Contracted arm decreased by 1.0cm (35cm → 34cm)\n",
		text,
	)
}

func TestContextService_GetProgress_Empty(t *testing.T) {
	subjectID := uuid.New()
	svc := NewContextService(&mockSchemaRepo{}, &mockAssessmentsService{
		report: &assessments.ProgressReport{SubjectID: subjectID, Lines: []progress.Line{}},
	})

	text, err := svc.GetProgress(context.Background(), subjectID)
	require.NoError(t, err)
	assert.Equal(t, "Progress of subject "+subjectID.String()+", 0 assessment(s).\nNothing to report yet.\n", text)

	svc = NewContextService(&mockSchemaRepo{}, &mockAssessmentsService{progressErr: errors.New("boom")})
	_, err = svc.GetProgress(context.Background(), subjectID)
	assert.Error(t, err)
}
