package main

import (
	"context"
	"math"

	"github.com/jackc/pgx/v4"
	uuid "github.com/nu7hatch/gouuid"
	"github.com/pkg/errors"
)

const createReportTable = `
	CREATE TABLE IF NOT EXISTS traffic_report (
		run_id    uuid        NOT NULL,
		created   timestamptz NOT NULL,
		direction char(1)     NOT NULL,
		grouped   boolean     NOT NULL,
		key       text        NOT NULL,
		vendor    text        NOT NULL,
		bytes     bigint      NOT NULL
	)
`

// ReportStore keeps finished reports in PostgreSQL.
type ReportStore struct {
	conn *pgx.Conn
}

func OpenReportStore(ctx context.Context, connString string) (*ReportStore, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, errors.Wrap(err, "could not connect to database")
	}
	return &ReportStore{conn: conn}, nil
}

func (s *ReportStore) EnsureSchema(ctx context.Context) error {
	_, err := s.conn.Exec(ctx, createReportTable)
	return errors.Wrap(err, "create traffic_report")
}

// Save stores rows under a fresh run id, in one transaction, and returns the
// id.
func (s *ReportStore) Save(ctx context.Context, run Run, rows []ReportRow) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", errors.Wrap(err, "generate run id")
	}
	runID := id.String()

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return "", errors.Wrap(err, "begin")
	}
	defer tx.Rollback(ctx)

	for _, r := range rows {
		n, err := rowBytes(r)
		if err != nil {
			return "", err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO traffic_report VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, runID, run.Time, run.Direction.String(), run.Grouped, r.Key, r.Vendor, n)
		if err != nil {
			return "", errors.Wrapf(err, "insert row %s", r.Key)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return "", errors.Wrap(err, "commit")
	}

	return runID, nil
}

// rowBytes converts a row total to the bigint column type.
func rowBytes(r ReportRow) (int64, error) {
	if r.Bytes > math.MaxInt64 {
		return 0, errors.Errorf("row %s: %d bytes does not fit a bigint", r.Key, r.Bytes)
	}
	return int64(r.Bytes), nil
}

// Rows returns the stored rows of a run in report order.
func (s *ReportStore) Rows(ctx context.Context, runID string) ([]ReportRow, error) {
	rs, err := s.conn.Query(ctx, `
		SELECT key, vendor, bytes FROM traffic_report WHERE run_id = $1 ORDER BY bytes DESC, vendor, key
	`, runID)
	if err != nil {
		return nil, errors.Wrapf(err, "query run %s", runID)
	}
	defer rs.Close()

	rows := []ReportRow{}
	for rs.Next() {
		var r ReportRow
		var n int64
		if err := rs.Scan(&r.Key, &r.Vendor, &n); err != nil {
			return nil, errors.Wrap(err, "scan row")
		}
		r.Bytes = uint64(n)
		rows = append(rows, r)
	}
	return rows, errors.Wrap(rs.Err(), "read rows")
}

func (s *ReportStore) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}
