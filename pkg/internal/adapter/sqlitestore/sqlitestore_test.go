package sqlitestore

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/seriescodec"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

func openStore(t *testing.T, path string, opts ...types.Option[*Store]) *Store {
	t.Helper()
	s, err := Open(context.Background(), path, opts...)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func closedSession(id string, number, n int) *types.Session {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(number) * time.Hour)
	points := make([]types.ProcessedPoint, n)
	for i := range points {
		strain := float64(i) * 0.0001
		p := types.ProcessedPoint{
			Timestamp:      float64(i) / 1000,
			Ch0Voltage:     float64(i) * 0.002,
			Ch1Voltage:     strain * 5,
			ForceN:         float64(i) * 2,
			DisplacementMM: strain * 50,
			StressMPa:      float64(i) * 0.2,
			Strain:         strain,
		}
		if i >= 20 {
			k := 200.0
			p.StiffnessGPa = &k
		}
		points[i] = p
	}
	return &types.Session{
		ID:        id,
		Number:    number,
		StartedAt: start,
		EndedAt:   start.Add(time.Duration(n) * time.Millisecond),
		Metadata: map[string]string{
			types.MetaMaterial:            "steel",
			types.MetaCrossSectionAreaMM2: "10",
			types.MetaGaugeLengthMM:       "50",
			types.MetaSampleRateHz:        "1000",
		},
		Points:   points,
		Overruns: 3,
	}
}

func withAnalysis(s *types.Session) *types.Session {
	s.Analysis = &types.AnalysisResult{
		Status:   types.AnalysisComplete,
		Points:   len(s.Points),
		Elastic:  &types.ElasticRegion{StartIdx: 0, EndIdx: 40, ModulusGPa: 200, RSquared: 0.999},
		Yield:    &types.YieldPoint{Index: 50, StressMPa: 400, Strain: 0.004},
		Ultimate: &types.UltimatePoint{Index: 80, StressMPa: 450, Strain: 0.02},
		Plastic:  &types.PlasticRegion{StartIdx: 50, EndIdx: 80, StrainRange: 0.016},
		Outcomes: map[types.Region]types.RegionOutcome{
			types.RegionElastic:  types.OutcomeDetected,
			types.RegionYield:    types.OutcomeDetected,
			types.RegionUltimate: types.OutcomeDetected,
			types.RegionFracture: types.OutcomeNotDetected,
			types.RegionPlastic:  types.OutcomeDetected,
		},
	}
	return s
}

func TestSaveAndLoadSession(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "rig.db"))

	in := withAnalysis(closedSession("s-1", 1, 100))
	if err := s.SaveSession(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.LoadSession(ctx, "s-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Number != 1 || out.Overruns != 3 {
		t.Fatalf("unexpected header: number=%d overruns=%d", out.Number, out.Overruns)
	}
	if !out.StartedAt.Equal(in.StartedAt) || !out.EndedAt.Equal(in.EndedAt) {
		t.Fatalf("times changed: %v..%v vs %v..%v", out.StartedAt, out.EndedAt, in.StartedAt, in.EndedAt)
	}
	if out.Metadata[types.MetaMaterial] != "steel" || len(out.Metadata) != len(in.Metadata) {
		t.Fatalf("unexpected metadata: %v", out.Metadata)
	}
	if len(out.Points) != len(in.Points) {
		t.Fatalf("expected %d points, got %d", len(in.Points), len(out.Points))
	}
	for i := range in.Points {
		a, b := in.Points[i], out.Points[i]
		if a.Timestamp != b.Timestamp || a.StressMPa != b.StressMPa || a.Strain != b.Strain || a.ForceN != b.ForceN {
			t.Fatalf("point %d changed: %+v vs %+v", i, a, b)
		}
		if (a.StiffnessGPa == nil) != (b.StiffnessGPa == nil) {
			t.Fatalf("point %d stiffness presence changed", i)
		}
		if a.StiffnessGPa != nil && *a.StiffnessGPa != *b.StiffnessGPa {
			t.Fatalf("point %d stiffness changed", i)
		}
	}
	if out.Analysis == nil || out.Analysis.Yield == nil || out.Analysis.Yield.StressMPa != 400 {
		t.Fatalf("analysis not restored: %+v", out.Analysis)
	}
	if out.Analysis.Outcome(types.RegionFracture) != types.OutcomeNotDetected {
		t.Fatalf("expected fracture not detected")
	}
}

func TestSaveSessionRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "rig.db"))

	if err := s.SaveSession(ctx, closedSession("dup", 1, 10)); err != nil {
		t.Fatalf("save: %v", err)
	}
	err := s.SaveSession(ctx, closedSession("dup", 2, 30))
	if !errors.Is(err, types.ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists, got %v", err)
	}

	out, err := s.LoadSession(ctx, "dup")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Number != 1 || len(out.Points) != 10 {
		t.Fatalf("stored record was modified: number=%d points=%d", out.Number, len(out.Points))
	}
}

func TestSaveSessionRejectsOpenSession(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "rig.db"))

	open := closedSession("open", 1, 10)
	open.EndedAt = time.Time{}
	if err := s.SaveSession(context.Background(), open); err == nil {
		t.Fatal("expected error saving an open session")
	}
}

func TestLoadSessionNotFound(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "rig.db"))

	_, err := s.LoadSession(context.Background(), "missing")
	if !errors.Is(err, types.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestListSessionsOrdered(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "rig.db"))

	for _, sess := range []*types.Session{
		closedSession("c", 3, 5),
		withAnalysis(closedSession("a", 1, 100)),
		closedSession("b", 2, 7),
	} {
		if err := s.SaveSession(ctx, sess); err != nil {
			t.Fatalf("save %s: %v", sess.ID, err)
		}
	}

	list, err := s.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(list))
	}
	for i, want := range []string{"a", "b", "c"} {
		if list[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, list[i].ID)
		}
	}
	if list[0].Status != types.AnalysisComplete || list[1].Status != "" {
		t.Fatalf("unexpected statuses: %q %q", list[0].Status, list[1].Status)
	}
	if list[2].Points != 5 || list[2].Material != "steel" {
		t.Fatalf("unexpected summary: %+v", list[2])
	}
}

func TestListSessionsEmpty(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "rig.db"))

	list, err := s.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no sessions, got %d", len(list))
	}
}

func TestReopenKeepsSessions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "rig.db")

	first, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.SaveSession(ctx, closedSession("keep", 1, 25)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second := openStore(t, path)
	out, err := second.LoadSession(ctx, "keep")
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if len(out.Points) != 25 {
		t.Fatalf("expected 25 points, got %d", len(out.Points))
	}
}

func TestCompressionOptionIsRecordedPerBlob(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rig.db")

	s := openStore(t, path, WithCompression(seriescodec.CompressSnappy))
	if err := s.SaveSession(ctx, closedSession("snappy", 1, 50)); err != nil {
		t.Fatalf("save: %v", err)
	}

	var blob []byte
	if err := s.db.QueryRowContext(ctx,
		`SELECT data FROM session_series WHERE session_id = ? AND channel = ?`, "snappy", "stress_mpa").Scan(&blob); err != nil {
		t.Fatalf("query blob: %v", err)
	}
	c, err := seriescodec.CompressionOf(blob)
	if err != nil {
		t.Fatalf("compression of: %v", err)
	}
	if c != seriescodec.CompressSnappy {
		t.Fatalf("expected snappy blob, got %s", c)
	}

	// A store configured differently still reads older blobs.
	s.compression = seriescodec.CompressBrotli
	if err := s.SaveSession(ctx, closedSession("brotli", 2, 50)); err != nil {
		t.Fatalf("save: %v", err)
	}
	for _, id := range []string{"snappy", "brotli"} {
		if _, err := s.LoadSession(ctx, id); err != nil {
			t.Fatalf("load %s: %v", id, err)
		}
	}
}

func TestRegionOutcomesAreQueryable(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "rig.db"))

	if err := s.SaveSession(ctx, withAnalysis(closedSession("r", 1, 100))); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.RegionOutcomes(ctx, "r")
	if err != nil {
		t.Fatalf("outcomes: %v", err)
	}
	if len(got) != len(types.Regions) {
		t.Fatalf("expected %d region rows, got %d", len(types.Regions), len(got))
	}
	if got[types.RegionYield] != types.OutcomeDetected || got[types.RegionFracture] != types.OutcomeNotDetected {
		t.Fatalf("unexpected outcomes: %v", got)
	}

	var stress float64
	if err := s.db.QueryRowContext(ctx,
		`SELECT stress_mpa FROM session_regions WHERE session_id = ? AND region = ?`, "r", "ultimate").Scan(&stress); err != nil {
		t.Fatalf("query: %v", err)
	}
	if math.Abs(stress-450) > 1e-9 {
		t.Fatalf("expected ultimate stress 450, got %v", stress)
	}
}
