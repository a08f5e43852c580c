package assessments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/bodycomp/internal/bodycomp"
	"github.com/2beens/bodycomp/internal/telemetry/tracing"
	"github.com/2beens/bodycomp/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const assessmentColumns = `
	a.id, a.subject_id, a.measured_at,
	a.sex, a.age, a.weight_kg,
	a.sf_chest, a.sf_axillary, a.sf_triceps, a.sf_subscapular, a.sf_abdominal, a.sf_suprailiac, a.sf_thigh,
	a.circ_neck, a.circ_shoulder, a.circ_chest, a.circ_waist, a.circ_abdomen, a.circ_hip,
	a.circ_arm_relaxed, a.circ_arm_contracted, a.circ_forearm,
	a.circ_thigh_proximal, a.circ_thigh_mid, a.circ_calf,
	a.sum_skinfolds, a.body_density, a.body_fat_pct, a.fat_mass_kg, a.lean_mass_kg,
	a.notes, a.supersedes_id, c.id, a.created_at`

// supersedesIndex allows a record to be corrected only once.
const supersedesIndex = "ux_body_assessment_supersedes_id"

// correctionJoin resolves the record superseding a, if any.
const correctionJoin = `LEFT JOIN body_assessment c ON c.supersedes_id = a.id`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, a Assessment) (_ *Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.assessments.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("subject_id", a.SubjectID.String()))

	in := a.Input
	var sex *string
	if in.Sex != nil {
		s := in.Sex.String()
		sex = &s
	}

	var res bodycomp.CompositionResult
	hasResult := a.Result != nil
	if hasResult {
		res = *a.Result
	}
	resultValue := func(v float64) *float64 {
		if !hasResult {
			return nil
		}
		return &v
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO body_assessment (
				subject_id, measured_at, sex, age, weight_kg,
				sf_chest, sf_axillary, sf_triceps, sf_subscapular, sf_abdominal, sf_suprailiac, sf_thigh,
				circ_neck, circ_shoulder, circ_chest, circ_waist, circ_abdomen, circ_hip,
				circ_arm_relaxed, circ_arm_contracted, circ_forearm,
				circ_thigh_proximal, circ_thigh_mid, circ_calf,
				sum_skinfolds, body_density, body_fat_pct, fat_mass_kg, lean_mass_kg,
				notes, supersedes_id, created_at
			) VALUES (
				$1, $2, $3, $4, $5,
				$6, $7, $8, $9, $10, $11, $12,
				$13, $14, $15, $16, $17, $18,
				$19, $20, $21,
				$22, $23, $24,
				$25, $26, $27, $28, $29,
				$30, $31, $32
			)
			RETURNING id;`,
		a.SubjectID, a.MeasuredAt, sex, in.Age, in.WeightKg,
		in.Skinfolds.Chest, in.Skinfolds.Axillary, in.Skinfolds.Triceps, in.Skinfolds.Subscapular,
		in.Skinfolds.Abdominal, in.Skinfolds.Suprailiac, in.Skinfolds.Thigh,
		in.Circumferences.Neck, in.Circumferences.Shoulder, in.Circumferences.Chest,
		in.Circumferences.Waist, in.Circumferences.Abdomen, in.Circumferences.Hip,
		in.Circumferences.ArmRelaxed, in.Circumferences.ArmContracted, in.Circumferences.Forearm,
		in.Circumferences.ThighProximal, in.Circumferences.ThighMid, in.Circumferences.Calf,
		resultValue(res.SumSkinfolds), resultValue(res.BodyDensity), resultValue(res.BodyFatPct),
		resultValue(res.FatMassKg), resultValue(res.LeanMassKg),
		a.Notes, a.SupersedesID, a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var id int
	if rows.Next() {
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
	}
	// constraint violations surface here, after the first Next
	if err := rows.Err(); err != nil {
		switch {
		case pkg.IsForeignKeyViolationError(err):
			return nil, ErrAssessmentNotFound
		case pkg.IsUniqueViolationError(err) && pkg.ViolatedConstraint(err) == supersedesIndex:
			return nil, ErrAlreadySuperseded
		default:
			return nil, err
		}
	}
	if id == 0 {
		return nil, errors.New("unexpected error [no rows next]")
	}

	span.SetAttributes(attribute.Int("assessment.id", id))

	a.ID = id
	return &a, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.assessments.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+assessmentColumns+`
			FROM body_assessment a
			`+correctionJoin+`
			WHERE a.id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assessments, err := rows2assessments(rows)
	if err != nil {
		return nil, err
	}

	if len(assessments) != 1 {
		return nil, ErrAssessmentNotFound
	}

	return &assessments[0], nil
}

// List returns the subject's current assessments, oldest first.
// Records superseded by a correction are left out.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Assessment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.assessments.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("subject_id", params.SubjectID.String()))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT `+assessmentColumns+`
			FROM body_assessment a
			`+correctionJoin+`
			WHERE a.subject_id = $1
				AND c.id IS NULL
				AND ($2::timestamptz IS NULL OR a.measured_at >= $2)
				AND ($3::timestamptz IS NULL OR a.measured_at <= $3)
			ORDER BY a.measured_at ASC, a.id ASC;`,
		params.SubjectID, params.From, params.To,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2assessments(rows)
}

// Delete removes a single record. A correction pointing to it stays,
// as a standalone record.
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.assessments.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM body_assessment WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAssessmentNotFound
	}
	return nil
}

func rows2assessments(rows pgx.Rows) ([]Assessment, error) {
	var assessments []Assessment
	for rows.Next() {
		var (
			a            Assessment
			sex          *string
			sum, density *float64
			fatPct       *float64
			fatMass      *float64
			leanMass     *float64
			measuredAt   time.Time
			createdAt    time.Time
			subjectID    uuid.UUID
		)
		in := &a.Input
		if err := rows.Scan(
			&a.ID, &subjectID, &measuredAt,
			&sex, &in.Age, &in.WeightKg,
			&in.Skinfolds.Chest, &in.Skinfolds.Axillary, &in.Skinfolds.Triceps, &in.Skinfolds.Subscapular,
			&in.Skinfolds.Abdominal, &in.Skinfolds.Suprailiac, &in.Skinfolds.Thigh,
			&in.Circumferences.Neck, &in.Circumferences.Shoulder, &in.Circumferences.Chest,
			&in.Circumferences.Waist, &in.Circumferences.Abdomen, &in.Circumferences.Hip,
			&in.Circumferences.ArmRelaxed, &in.Circumferences.ArmContracted, &in.Circumferences.Forearm,
			&in.Circumferences.ThighProximal, &in.Circumferences.ThighMid, &in.Circumferences.Calf,
			&sum, &density, &fatPct, &fatMass, &leanMass,
			&a.Notes, &a.SupersedesID, &a.SupersededBy, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		a.SubjectID = subjectID
		a.MeasuredAt = measuredAt
		a.CreatedAt = createdAt
		if sex != nil {
			in.Sex = bodycomp.SexPtr(bodycomp.Sex(*sex))
		}
		// result columns are written all together, or not at all
		if fatPct != nil && sum != nil && density != nil && fatMass != nil && leanMass != nil {
			a.Result = &bodycomp.CompositionResult{
				SumSkinfolds: *sum,
				BodyDensity:  *density,
				BodyFatPct:   *fatPct,
				FatMassKg:    *fatMass,
				LeanMassKg:   *leanMass,
			}
		}

		assessments = append(assessments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assessments, nil
}
