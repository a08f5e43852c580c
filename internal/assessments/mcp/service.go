package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/2beens/bodycomp/internal/assessments"
	"github.com/2beens/bodycomp/internal/bodycomp"

	"github.com/google/uuid"
)

// assessmentsService is the part of assessments.Service the tools need.
type assessmentsService interface {
	Preview(in bodycomp.MeasurementInput) assessments.PreviewResponse
	List(ctx context.Context, params assessments.ListParams) ([]assessments.Assessment, error)
	Progress(ctx context.Context, subjectID uuid.UUID) (*assessments.ProgressReport, error)
}

// contextService is what Handler calls; kept as an interface for tests.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	Estimate(in bodycomp.MeasurementInput) assessments.PreviewResponse
	ListAssessments(ctx context.Context, params assessments.ListParams) ([]assessments.Assessment, error)
	GetProgress(ctx context.Context, subjectID uuid.UUID) (string, error)
}

type ContextService struct {
	schema      SchemaRepo
	assessments assessmentsService
}

func NewContextService(schemaRepo SchemaRepo, service assessmentsService) *ContextService {
	return &ContextService{
		schema:      schemaRepo,
		assessments: service,
	}
}

// GetSchema returns the body_assessment table layout as markdown.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.GetAssessmentColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatSchema(cols), nil
}

func (s *ContextService) Estimate(in bodycomp.MeasurementInput) assessments.PreviewResponse {
	return s.assessments.Preview(in)
}

func (s *ContextService) ListAssessments(ctx context.Context, params assessments.ListParams) ([]assessments.Assessment, error) {
	return s.assessments.List(ctx, params)
}

// GetProgress returns the narrated progress of a subject as plain text.
func (s *ContextService) GetProgress(ctx context.Context, subjectID uuid.UUID) (string, error) {
	report, err := s.assessments.Progress(ctx, subjectID)
	if err != nil {
		return "", err
	}
	return formatProgress(report), nil
}

func formatSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Body assessment DB Schema\n\nTable body_assessment not found in the database.\n"
	}

	var b strings.Builder
	b.WriteString("# Body assessment DB Schema\n\n## ")
	b.WriteString(assessmentsTable)
	b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
	for _, c := range cols {
		def := "-"
		if c.ColumnDef != nil && *c.ColumnDef != "" {
			def = *c.ColumnDef
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def))
	}
	return b.String()
}

func formatProgress(report *assessments.ProgressReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Progress of subject %s, %d assessment(s)", report.SubjectID, report.Assessments))
	if report.From != nil && report.To != nil {
		b.WriteString(fmt.Sprintf(", %s to %s", report.From.Format("2006-01-02"), report.To.Format("2006-01-02")))
	}
	b.WriteString(".\n")

	if len(report.Lines) == 0 {
		b.WriteString("Nothing to report yet.\n")
		return b.String()
	}

	for _, l := range report.Lines {
		mark := "-"
		if l.Positive {
			mark = "+"
		}
		b.WriteString(fmt.Sprintf("[%s] %s\n", mark, l.Text))
	}
	return b.String()
}
