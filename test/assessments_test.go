//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/bodycomp/internal/assessments"
	"github.com/2beens/bodycomp/internal/bodycomp"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sevenSites(chest, axillary, triceps, subscapular, abdominal, suprailiac, thigh float64) bodycomp.Skinfolds {
	return bodycomp.Skinfolds{
		Chest:       bodycomp.Float(chest),
		Axillary:    bodycomp.Float(axillary),
		Triceps:     bodycomp.Float(triceps),
		Subscapular: bodycomp.Float(subscapular),
		Abdominal:   bodycomp.Float(abdominal),
		Suprailiac:  bodycomp.Float(suprailiac),
		Thigh:       bodycomp.Float(thigh),
	}
}

func (s *IntegrationTestSuite) doRequest(
	ctx context.Context,
	method, path string,
	body any,
	expectedStatus int,
	target any,
) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(s.T(), err)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, bodyReader)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.Equal(s.T(), expectedStatus, resp.StatusCode, string(respBytes))

	if target != nil {
		require.NoError(s.T(), json.Unmarshal(respBytes, target))
	}
}

func (s *IntegrationTestSuite) TestAssessments_FullFlow() {
	ctx := context.Background()
	t := s.T()
	subjectID := uuid.New()
	start := time.Date(2025, 1, 6, 7, 30, 0, 0, time.UTC)

	first := assessments.NewAssessment{
		SubjectID:  subjectID,
		MeasuredAt: start,
		Input: bodycomp.MeasurementInput{
			Sex:       bodycomp.SexPtr(bodycomp.SexMale),
			Age:       bodycomp.Int(30),
			WeightKg:  bodycomp.Float(84),
			Skinfolds: sevenSites(14, 16, 11, 18, 26, 15, 19),
			Circumferences: bodycomp.Circumferences{
				Waist:         bodycomp.Float(92),
				ArmContracted: bodycomp.Float(36),
			},
		},
		Notes: gofakeit.Sentence(5),
	}
	var added1 assessments.Assessment
	s.doRequest(ctx, "POST", "/assessments", first, http.StatusCreated, &added1)
	require.NotNil(t, added1.Result)

	// no progress with a single assessment
	var report assessments.ProgressReport
	s.doRequest(ctx, "GET", fmt.Sprintf("/subjects/%s/progress", subjectID), nil, http.StatusOK, &report)
	assert.Equal(t, 1, report.Assessments)
	assert.Empty(t, report.Lines)

	// a typo in the abdominal site, corrected right after
	typo := first
	typo.MeasuredAt = start.Add(56 * 24 * time.Hour)
	typo.Input.WeightKg = bodycomp.Float(80)
	typo.Input.Skinfolds = sevenSites(10, 12, 8, 14, 200, 10, 15)
	typo.Input.Circumferences = bodycomp.Circumferences{
		Waist:         bodycomp.Float(88),
		ArmContracted: bodycomp.Float(37),
	}
	var added2 assessments.Assessment
	s.doRequest(ctx, "POST", "/assessments", typo, http.StatusCreated, &added2)

	fixed := typo
	fixed.SubjectID = uuid.Nil
	fixed.MeasuredAt = time.Time{}
	fixed.Input.Skinfolds = sevenSites(10, 12, 8, 14, 20, 10, 15)
	var correction assessments.Assessment
	s.doRequest(ctx, "POST", fmt.Sprintf("/assessments/%d/correction", added2.ID), fixed, http.StatusCreated, &correction)
	assert.Equal(t, subjectID, correction.SubjectID)
	assert.True(t, typo.MeasuredAt.Equal(correction.MeasuredAt))
	require.NotNil(t, correction.Result)
	assert.Equal(t, 13.05, correction.Result.BodyFatPct)
	assert.Equal(t, 10.44, correction.Result.FatMassKg)

	// correcting twice is a conflict
	s.doRequest(ctx, "POST", fmt.Sprintf("/assessments/%d/correction", added2.ID), fixed, http.StatusConflict, nil)

	// the corrected record is still stored
	var supersededBy *int
	require.NoError(t, s.DB.QueryRowContext(ctx,
		`SELECT c.id FROM body_assessment a LEFT JOIN body_assessment c ON c.supersedes_id = a.id WHERE a.id = $1`,
		added2.ID,
	).Scan(&supersededBy))
	require.NotNil(t, supersededBy)
	assert.Equal(t, correction.ID, *supersededBy)

	var list assessments.ListResponse
	s.doRequest(ctx, "GET", fmt.Sprintf("/subjects/%s/assessments", subjectID), nil, http.StatusOK, &list)
	require.Len(t, list.Assessments, 2)
	assert.Equal(t, added1.ID, list.Assessments[0].ID)
	assert.Equal(t, correction.ID, list.Assessments[1].ID)

	s.doRequest(ctx, "GET", fmt.Sprintf("/subjects/%s/progress", subjectID), nil, http.StatusOK, &report)
	assert.Equal(t, 2, report.Assessments)
	require.Len(t, report.Lines, 4)
	assert.Contains(t, report.Lines[0].Text, "Body fat fell from")
	assert.True(t, report.Lines[0].Positive)
	assert.Contains(t, report.Lines[1].Text, "Lost")
	assert.Equal(t, "Waist decreased by 4.0cm (92cm → 88cm)", report.Lines[2].Text)
	assert.True(t, report.Lines[2].Positive)
	assert.Equal(t, "Contracted arm increased by 1.0cm (36cm → 37cm)", report.Lines[3].Text)
	assert.True(t, report.Lines[3].Positive)

	// deleting the correction brings the typo back, and drops the cached progress
	var deleted assessments.DeleteResponse
	s.doRequest(ctx, "DELETE", fmt.Sprintf("/assessments/%d", correction.ID), nil, http.StatusOK, &deleted)
	assert.Equal(t, correction.ID, deleted.DeletedID)

	s.doRequest(ctx, "GET", fmt.Sprintf("/subjects/%s/assessments", subjectID), nil, http.StatusOK, &list)
	require.Len(t, list.Assessments, 2)
	assert.Equal(t, added2.ID, list.Assessments[1].ID)

	s.doRequest(ctx, "GET", fmt.Sprintf("/assessments/%d", correction.ID), nil, http.StatusNotFound, nil)
}

func (s *IntegrationTestSuite) TestAssessments_IncompleteAndPreview() {
	ctx := context.Background()
	t := s.T()
	subjectID := uuid.New()

	in := bodycomp.MeasurementInput{
		Sex:       bodycomp.SexPtr(bodycomp.SexFemale),
		Age:       bodycomp.Int(30),
		WeightKg:  bodycomp.Float(60),
		Skinfolds: sevenSites(10, 12, 8, 14, 20, 10, 15),
	}

	var preview assessments.PreviewResponse
	s.doRequest(ctx, "POST", "/assessments/preview", in, http.StatusOK, &preview)
	require.True(t, preview.Complete)
	assert.Equal(t, 18.85, preview.Result.BodyFatPct)

	in.Skinfolds.Thigh = nil
	var added assessments.Assessment
	s.doRequest(ctx, "POST", "/assessments", assessments.NewAssessment{
		SubjectID: subjectID,
		Input:     in,
	}, http.StatusCreated, &added)
	assert.Nil(t, added.Result)
	assert.False(t, added.MeasuredAt.IsZero())

	var got assessments.Assessment
	s.doRequest(ctx, "GET", fmt.Sprintf("/assessments/%d", added.ID), nil, http.StatusOK, &got)
	assert.Nil(t, got.Result)
	assert.Nil(t, got.Input.Skinfolds.Thigh)
	assert.Equal(t, 10.0, *got.Input.Skinfolds.Chest)

	s.doRequest(ctx, "POST", "/assessments", assessments.NewAssessment{Input: in}, http.StatusBadRequest, nil)
	s.doRequest(ctx, "GET", "/subjects/not-a-uuid/progress", nil, http.StatusBadRequest, nil)
}
