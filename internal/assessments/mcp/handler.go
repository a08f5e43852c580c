package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/2beens/bodycomp/internal/assessments"
	"github.com/2beens/bodycomp/internal/bodycomp"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler parses tool input, calls the service and formats the MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return textResult(string(raw))
}

// GetAssessmentSchemaTool returns the MCP tool handler for get_assessment_schema.
func (h *Handler) GetAssessmentSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}

// EstimateInput is the input for estimate_composition.
type EstimateInput struct {
	Sex         string   `json:"sex" jsonschema:"male or female"`
	Age         int      `json:"age" jsonschema:"Age in whole years"`
	WeightKg    float64  `json:"weight_kg" jsonschema:"Body weight in kilograms"`
	Chest       *float64 `json:"chest,omitempty" jsonschema:"Chest skinfold in mm"`
	Axillary    *float64 `json:"axillary,omitempty" jsonschema:"Midaxillary skinfold in mm"`
	Triceps     *float64 `json:"triceps,omitempty" jsonschema:"Triceps skinfold in mm"`
	Subscapular *float64 `json:"subscapular,omitempty" jsonschema:"Subscapular skinfold in mm"`
	Abdominal   *float64 `json:"abdominal,omitempty" jsonschema:"Abdominal skinfold in mm"`
	Suprailiac  *float64 `json:"suprailiac,omitempty" jsonschema:"Suprailiac skinfold in mm"`
	Thigh       *float64 `json:"thigh,omitempty" jsonschema:"Thigh skinfold in mm"`
}

func (in EstimateInput) measurementInput() bodycomp.MeasurementInput {
	return bodycomp.MeasurementInput{
		Sex:      bodycomp.SexPtr(bodycomp.Sex(in.Sex)),
		Age:      bodycomp.Int(in.Age),
		WeightKg: bodycomp.Float(in.WeightKg),
		Skinfolds: bodycomp.Skinfolds{
			Chest:       in.Chest,
			Axillary:    in.Axillary,
			Triceps:     in.Triceps,
			Subscapular: in.Subscapular,
			Abdominal:   in.Abdominal,
			Suprailiac:  in.Suprailiac,
			Thigh:       in.Thigh,
		},
	}
}

// EstimateCompositionTool returns the MCP tool handler for estimate_composition.
func (h *Handler) EstimateCompositionTool() func(context.Context, *mcp.CallToolRequest, EstimateInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in EstimateInput) (*mcp.CallToolResult, any, error) {
		preview := h.service.Estimate(in.measurementInput())
		if !preview.Complete {
			return textResult("Not enough data to estimate: sex (male/female), a positive age and weight, and all seven skinfolds are required."), nil, nil
		}
		return jsonResult(preview.Result), nil, nil
	}
}

// ListAssessmentsInput is the input for list_assessments.
type ListAssessmentsInput struct {
	SubjectID string `json:"subject_id" jsonschema:"Subject UUID"`
	FromDate  string `json:"from_date,omitempty" jsonschema:"Start date (YYYY-MM-DD)"`
	ToDate    string `json:"to_date,omitempty" jsonschema:"End date (YYYY-MM-DD), inclusive"`
}

// ListAssessmentsTool returns the MCP tool handler for list_assessments.
func (h *Handler) ListAssessmentsTool() func(context.Context, *mcp.CallToolRequest, ListAssessmentsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ListAssessmentsInput) (*mcp.CallToolResult, any, error) {
		subjectID, err := uuid.Parse(in.SubjectID)
		if err != nil {
			return errorResult("Invalid subject_id: UUID expected"), nil, nil
		}

		params := assessments.ListParams{SubjectID: subjectID}
		if in.FromDate != "" {
			from, err := time.Parse("2006-01-02", in.FromDate)
			if err != nil {
				return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
			}
			params.From = &from
		}
		if in.ToDate != "" {
			to, err := time.Parse("2006-01-02", in.ToDate)
			if err != nil {
				return errorResult("Invalid to_date: use YYYY-MM-DD"), nil, nil
			}
			to = time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 999999999, to.Location())
			params.To = &to
		}

		list, err := h.service.ListAssessments(ctx, params)
		if err != nil {
			return errorResult("Error listing assessments: " + err.Error()), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

// ProgressInput is the input for get_progress.
type ProgressInput struct {
	SubjectID string `json:"subject_id" jsonschema:"Subject UUID"`
}

// GetProgressTool returns the MCP tool handler for get_progress.
func (h *Handler) GetProgressTool() func(context.Context, *mcp.CallToolRequest, ProgressInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ProgressInput) (*mcp.CallToolResult, any, error) {
		subjectID, err := uuid.Parse(in.SubjectID)
		if err != nil {
			return errorResult("Invalid subject_id: UUID expected"), nil, nil
		}

		text, err := h.service.GetProgress(ctx, subjectID)
		if err != nil {
			return errorResult("Error getting progress: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}
