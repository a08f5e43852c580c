package mcp

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server exposing the assessment tools. It is mounted
// at /mcp by the HTTP service and served over stdio by cmd/bodycomp_mcp.
func NewServer(pool *pgxpool.Pool, service assessmentsService) *mcp.Server {
	h := NewHandler(NewContextService(NewPoolSchemaRepo(pool), service))
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "bodycomp",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_assessment_schema",
		Description: "Returns the DB schema of the body_assessment table: columns, types, nullable, default.",
	}, h.GetAssessmentSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "estimate_composition",
		Description: "Estimates body density, body fat %, fat mass and lean mass from the Jackson-Pollock 7-site skinfolds (mm), sex, age and weight (kg). Nothing is stored.",
	}, h.EstimateCompositionTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_assessments",
		Description: "Returns the current (not corrected) assessments of a subject, oldest first. Optional from_date, to_date (YYYY-MM-DD).",
	}, h.ListAssessmentsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_progress",
		Description: "Describes how a subject changed between the first and the latest assessment: body fat, fat and lean mass, waist, abdomen, hip, contracted arm and chest. Lines marked [+] are progress.",
	}, h.GetProgressTool())

	return s
}
