package assessments

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/bodycomp/internal/bodycomp"
	"github.com/2beens/bodycomp/internal/bodycomp/progress"
	"github.com/2beens/bodycomp/internal/telemetry/metrics"
	"github.com/2beens/bodycomp/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=assessments_test

type assessmentsRepo interface {
	Add(ctx context.Context, a Assessment) (*Assessment, error)
	Get(ctx context.Context, id int) (*Assessment, error)
	List(ctx context.Context, params ListParams) ([]Assessment, error)
	Delete(ctx context.Context, id int) error
}

type Service struct {
	repo           assessmentsRepo
	progressCache  ProgressCache
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(
	repo assessmentsRepo,
	progressCache ProgressCache,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		progressCache:  progressCache,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// Create stores a new assessment. The composition result is attached only
// when the input passes the estimation gate; otherwise the record keeps
// just the raw measurements.
func (s *Service) Create(ctx context.Context, na NewAssessment) (_ *Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.assessments.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if na.SubjectID == uuid.Nil {
		return nil, ErrInvalidSubject
	}
	span.SetAttributes(attribute.String("subject_id", na.SubjectID.String()))

	added, err := s.repo.Add(ctx, s.build(na))
	if err != nil {
		return nil, fmt.Errorf("add assessment: %w", err)
	}

	s.afterStore(ctx, added)
	return added, nil
}

// Correct stores a new assessment superseding the one with the given id.
// The corrected record is kept, but no longer listed. A zero subject or
// measurement time in the correction is taken over from the corrected record.
func (s *Service) Correct(ctx context.Context, id int, na NewAssessment) (_ *Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.assessments.correct")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("corrected_id", id))

	corrected, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get corrected assessment %d: %w", id, err)
	}

	if na.SubjectID == uuid.Nil {
		na.SubjectID = corrected.SubjectID
	}
	if na.SubjectID != corrected.SubjectID {
		return nil, ErrSubjectMismatch
	}
	if corrected.SupersededBy != nil {
		return nil, ErrAlreadySuperseded
	}
	if na.MeasuredAt.IsZero() {
		na.MeasuredAt = corrected.MeasuredAt
	}

	a := s.build(na)
	a.SupersedesID = &corrected.ID

	added, err := s.repo.Add(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("add correction of %d: %w", id, err)
	}

	s.metricsManager.CounterAssessmentsCorrected.Inc()
	s.afterStore(ctx, added)
	return added, nil
}

// Preview runs the estimator without storing anything.
func (s *Service) Preview(in bodycomp.MeasurementInput) PreviewResponse {
	result, ok := bodycomp.Estimate(in)
	return PreviewResponse{
		Result:   result,
		Complete: ok,
	}
}

func (s *Service) Get(ctx context.Context, id int) (_ *Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.assessments.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get assessment %d: %w", id, err)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, params ListParams) (_ []Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.assessments.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if params.SubjectID == uuid.Nil {
		return nil, ErrInvalidSubject
	}

	list, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	if list == nil {
		list = []Assessment{}
	}
	return list, nil
}

func (s *Service) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.assessments.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get assessment %d: %w", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete assessment %d: %w", id, err)
	}

	s.invalidateProgress(ctx, a.SubjectID)
	return nil
}

// Progress narrates the change between the subject's first and latest
// assessment. Cache failures are logged and otherwise ignored.
func (s *Service) Progress(ctx context.Context, subjectID uuid.UUID) (_ *ProgressReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.assessments.progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if subjectID == uuid.Nil {
		return nil, ErrInvalidSubject
	}
	span.SetAttributes(attribute.String("subject_id", subjectID.String()))

	// the generation is read before listing, so a write racing with this
	// call leaves the report under a generation that is no longer read
	generation, err := s.progressCache.Generation(ctx, subjectID)
	if err != nil {
		log.Errorf("get progress cache generation for %s: %s", subjectID, err)
		return s.narrateProgress(ctx, subjectID)
	}

	cached, found, err := s.progressCache.Get(ctx, subjectID, generation)
	if err != nil {
		log.Errorf("get cached progress for %s: %s", subjectID, err)
	}
	if found {
		s.metricsManager.CounterProgressCache.WithLabelValues(metrics.CacheResultHit).Inc()
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return cached, nil
	}
	s.metricsManager.CounterProgressCache.WithLabelValues(metrics.CacheResultMiss).Inc()

	report, err := s.narrateProgress(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if err := s.progressCache.Set(ctx, *report, generation); err != nil {
		log.Errorf("cache progress for %s: %s", subjectID, err)
	}

	return report, nil
}

func (s *Service) narrateProgress(ctx context.Context, subjectID uuid.UUID) (*ProgressReport, error) {
	list, err := s.repo.List(ctx, ListParams{SubjectID: subjectID})
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	report := BuildProgressReport(subjectID, list)
	return &report, nil
}

// BuildProgressReport narrates an already ordered (oldest first) list of
// a subject's assessments.
func BuildProgressReport(subjectID uuid.UUID, list []Assessment) ProgressReport {
	snapshots := make([]progress.Snapshot, 0, len(list))
	for _, a := range list {
		snapshots = append(snapshots, a.Snapshot())
	}

	report := ProgressReport{
		SubjectID:   subjectID,
		Assessments: len(list),
		Lines:       progress.Narrate(snapshots),
	}
	if len(list) > 0 {
		from := list[0].MeasuredAt
		to := list[len(list)-1].MeasuredAt
		report.From = &from
		report.To = &to
	}
	return report
}

func (s *Service) build(na NewAssessment) Assessment {
	now := s.now()
	measuredAt := na.MeasuredAt
	if measuredAt.IsZero() {
		measuredAt = now
	}

	result, _ := bodycomp.Estimate(na.Input)
	return Assessment{
		SubjectID:  na.SubjectID,
		MeasuredAt: measuredAt,
		Input:      na.Input,
		Result:     result,
		Notes:      na.Notes,
		CreatedAt:  now,
	}
}

func (s *Service) afterStore(ctx context.Context, a *Assessment) {
	s.metricsManager.CounterAssessmentsCreated.Inc()
	if a.Result != nil {
		s.metricsManager.HistBodyFatPct.Observe(a.Result.BodyFatPct)
	} else {
		s.metricsManager.CounterIncompleteSkinfolds.Inc()
	}
	s.invalidateProgress(ctx, a.SubjectID)
}

func (s *Service) invalidateProgress(ctx context.Context, subjectID uuid.UUID) {
	if err := s.progressCache.Invalidate(ctx, subjectID); err != nil {
		log.Errorf("invalidate progress cache for %s: %s", subjectID, err)
	}
}
