package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/seriescodec"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// SaveSession stores a closed session in one transaction. An existing id is
// rejected with types.ErrSessionExists and the stored record is left untouched.
func (s *Store) SaveSession(ctx context.Context, sess *types.Session) (err error) {
	if sess == nil || sess.ID == "" {
		return fmt.Errorf("sqlitestore: session without id")
	}
	if !sess.Closed() {
		return fmt.Errorf("sqlitestore: session %s is still open", sess.ID)
	}

	metadata, err := json.Marshal(sess.Metadata)
	if err != nil {
		return err
	}
	var analysis []byte
	status := ""
	if sess.Analysis != nil {
		if analysis, err = json.Marshal(sess.Analysis); err != nil {
			return err
		}
		status = string(sess.Analysis.Status)
	}

	blobs := make(map[string][]byte, len(channels))
	for ch, values := range splitPoints(sess.Points) {
		if blobs[ch], err = seriescodec.EncodeFloats(values, s.compression); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var exists int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM sessions WHERE id = ?`, sess.ID).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		err = fmt.Errorf("%w: %s", types.ErrSessionExists, sess.ID)
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, number, started_at, ended_at, material, metadata, point_count, overruns, status, analysis)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.Number,
		sess.StartedAt.UTC().Format(time.RFC3339Nano),
		sess.EndedAt.UTC().Format(time.RFC3339Nano),
		sess.Metadata[types.MetaMaterial],
		string(metadata),
		len(sess.Points),
		int64(sess.Overruns),
		status,
		nullableString(analysis),
	)
	if err != nil {
		return err
	}

	for _, ch := range channels {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO session_series (session_id, channel, data) VALUES (?, ?, ?)`,
			sess.ID, ch, blobs[ch]); err != nil {
			return err
		}
	}

	for _, r := range regionRows(sess.Analysis) {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO session_regions (session_id, region, outcome, start_idx, end_idx, stress_mpa, strain)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sess.ID, string(r.region), string(r.outcome), r.startIdx, r.endIdx, r.stress, r.strain); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	s.NotifyLoggers(types.InfoLevel, "session saved",
		"component", s.componentMetadata,
		"event", "SaveSession",
		"result", "SUCCESS",
		"session_id", sess.ID,
		"points", len(sess.Points),
	)
	return nil
}

// ListSessions returns every stored session ordered by number then start time.
func (s *Store) ListSessions(ctx context.Context) ([]types.SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, number, started_at, ended_at, material, point_count, status
		 FROM sessions ORDER BY number, started_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.SessionSummary
	for rows.Next() {
		var sum types.SessionSummary
		var started, ended, status string
		if err := rows.Scan(&sum.ID, &sum.Number, &started, &ended, &sum.Material, &sum.Points, &status); err != nil {
			return nil, err
		}
		if sum.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, err
		}
		if sum.EndedAt, err = time.Parse(time.RFC3339Nano, ended); err != nil {
			return nil, err
		}
		sum.Status = types.AnalysisStatus(status)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// LoadSession reads a stored session back, including every point.
func (s *Store) LoadSession(ctx context.Context, id string) (*types.Session, error) {
	var (
		sess             types.Session
		started, ended   string
		metadata         string
		analysis         sql.NullString
		pointCount       int
		overruns         int64
		material, status string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, number, started_at, ended_at, material, metadata, point_count, overruns, status, analysis
		 FROM sessions WHERE id = ?`, id).
		Scan(&sess.ID, &sess.Number, &started, &ended, &material, &metadata, &pointCount, &overruns, &status, &analysis)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", types.ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if sess.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, err
	}
	if sess.EndedAt, err = time.Parse(time.RFC3339Nano, ended); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(metadata), &sess.Metadata); err != nil {
		return nil, err
	}
	if analysis.Valid {
		var a types.AnalysisResult
		if err := json.Unmarshal([]byte(analysis.String), &a); err != nil {
			return nil, err
		}
		sess.Analysis = &a
	}
	sess.Overruns = uint64(overruns)

	cols, err := s.loadSeries(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Points, err = joinPoints(cols, pointCount); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Store) loadSeries(ctx context.Context, id string) (map[string][]float64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT channel, data FROM session_series WHERE session_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string][]float64, len(channels))
	for rows.Next() {
		var ch string
		var blob []byte
		if err := rows.Scan(&ch, &blob); err != nil {
			return nil, err
		}
		values, err := seriescodec.DecodeFloats(blob)
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", ch, err)
		}
		cols[ch] = values
	}
	return cols, rows.Err()
}

// RegionOutcomes returns the stored outcome of every region for id.
func (s *Store) RegionOutcomes(ctx context.Context, id string) (map[types.Region]types.RegionOutcome, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT region, outcome FROM session_regions WHERE session_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[types.Region]types.RegionOutcome)
	for rows.Next() {
		var region, outcome string
		if err := rows.Scan(&region, &outcome); err != nil {
			return nil, err
		}
		out[types.Region(region)] = types.RegionOutcome(outcome)
	}
	return out, rows.Err()
}

func nullableString(b []byte) interface{} {
	if b == nil {
		return nil
	}
	return string(b)
}
