package assessments

import (
	"errors"
	"time"

	"github.com/2beens/bodycomp/internal/bodycomp"
	"github.com/2beens/bodycomp/internal/bodycomp/progress"

	"github.com/google/uuid"
)

var (
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrInvalidSubject     = errors.New("invalid subject id")
	ErrSubjectMismatch    = errors.New("correction subject differs from the corrected assessment")
	ErrAlreadySuperseded  = errors.New("assessment already corrected")
)

// Assessment is a stored measurement session. It is never updated in place:
// a correction is a new record pointing to the one it supersedes.
type Assessment struct {
	ID           int                         `json:"id"`
	SubjectID    uuid.UUID                   `json:"subjectId"`
	MeasuredAt   time.Time                   `json:"measuredAt"`
	Input        bodycomp.MeasurementInput   `json:"input"`
	Result       *bodycomp.CompositionResult `json:"result,omitempty"`
	Notes        string                      `json:"notes,omitempty"`
	SupersedesID *int                        `json:"supersedesId,omitempty"`
	SupersededBy *int                        `json:"supersededBy,omitempty"`
	CreatedAt    time.Time                   `json:"createdAt"`
}

// Snapshot picks the values the progress narrator compares.
func (a Assessment) Snapshot() progress.Snapshot {
	s := progress.Snapshot{
		Circumferences: a.Input.Circumferences,
	}
	if a.Result != nil {
		s.BodyFatPct = bodycomp.Float(a.Result.BodyFatPct)
		s.FatMassKg = bodycomp.Float(a.Result.FatMassKg)
		s.LeanMassKg = bodycomp.Float(a.Result.LeanMassKg)
	}
	return s
}

// NewAssessment is the payload for creating or correcting an assessment.
type NewAssessment struct {
	SubjectID  uuid.UUID                 `json:"subjectId"`
	MeasuredAt time.Time                 `json:"measuredAt"`
	Input      bodycomp.MeasurementInput `json:"input"`
	Notes      string                    `json:"notes,omitempty"`
}

type ListParams struct {
	SubjectID uuid.UUID
	From      *time.Time
	To        *time.Time
}

// PreviewResponse is the live estimate shown while a trainer is typing.
// Complete is false until the estimation gate passes.
type PreviewResponse struct {
	Result   *bodycomp.CompositionResult `json:"result,omitempty"`
	Complete bool                        `json:"complete"`
}

type ProgressReport struct {
	SubjectID   uuid.UUID       `json:"subjectId"`
	Assessments int             `json:"assessments"`
	From        *time.Time      `json:"from,omitempty"`
	To          *time.Time      `json:"to,omitempty"`
	Lines       []progress.Line `json:"lines"`
}
