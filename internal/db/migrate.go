package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Schema holds the idempotent DDL for the body assessments store.
// All measurement and result columns are nullable: a trainer may record
// circumferences only, and results exist only when the estimation gate passes.
const Schema = `
CREATE TABLE IF NOT EXISTS body_assessment
(
    id                  SERIAL PRIMARY KEY,
    subject_id          UUID        NOT NULL,
    measured_at         TIMESTAMPTZ NOT NULL,
    sex                 VARCHAR,
    age                 INTEGER,
    weight_kg           DOUBLE PRECISION,
    sf_chest            DOUBLE PRECISION,
    sf_axillary         DOUBLE PRECISION,
    sf_triceps          DOUBLE PRECISION,
    sf_subscapular      DOUBLE PRECISION,
    sf_abdominal        DOUBLE PRECISION,
    sf_suprailiac       DOUBLE PRECISION,
    sf_thigh            DOUBLE PRECISION,
    circ_neck           DOUBLE PRECISION,
    circ_shoulder       DOUBLE PRECISION,
    circ_chest          DOUBLE PRECISION,
    circ_waist          DOUBLE PRECISION,
    circ_abdomen        DOUBLE PRECISION,
    circ_hip            DOUBLE PRECISION,
    circ_arm_relaxed    DOUBLE PRECISION,
    circ_arm_contracted DOUBLE PRECISION,
    circ_forearm        DOUBLE PRECISION,
    circ_thigh_proximal DOUBLE PRECISION,
    circ_thigh_mid      DOUBLE PRECISION,
    circ_calf           DOUBLE PRECISION,
    sum_skinfolds       DOUBLE PRECISION,
    body_density        DOUBLE PRECISION,
    body_fat_pct        DOUBLE PRECISION,
    fat_mass_kg         DOUBLE PRECISION,
    lean_mass_kg        DOUBLE PRECISION,
    notes               TEXT        NOT NULL DEFAULT '',
    supersedes_id       INTEGER REFERENCES body_assessment (id) ON DELETE SET NULL,
    created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS ix_body_assessment_subject_measured_at
    ON body_assessment (subject_id, measured_at);
CREATE UNIQUE INDEX IF NOT EXISTS ux_body_assessment_supersedes_id
    ON body_assessment (supersedes_id);
`

// Migrate creates the schema when missing. Safe to run on every start.
func Migrate(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate body_assessment: %w", err)
	}
	log.Debugln("db schema in place")
	return nil
}
