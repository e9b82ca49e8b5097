package parquetstore

import (
	"bytes"
	"io"
	"time"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	parquet "github.com/parquet-go/parquet-go"
)

type pointRow struct {
	Timestamp      float64  `parquet:"t"`
	Ch0Voltage     float64  `parquet:"ch0_v"`
	Ch1Voltage     float64  `parquet:"ch1_v"`
	ForceN         float64  `parquet:"force_n"`
	DisplacementMM float64  `parquet:"displacement_mm"`
	StressMPa      float64  `parquet:"stress_mpa"`
	Strain         float64  `parquet:"strain"`
	StiffnessGPa   *float64 `parquet:"stiffness_gpa,optional"`
}

// sessionHeader is everything in a session except its points.
type sessionHeader struct {
	ID        string                `json:"id"`
	Number    int                   `json:"number"`
	StartedAt time.Time             `json:"started_at"`
	EndedAt   time.Time             `json:"ended_at"`
	Metadata  map[string]string     `json:"metadata"`
	Analysis  *types.AnalysisResult `json:"analysis,omitempty"`
	Overruns  uint64                `json:"overruns"`
	Points    int                   `json:"points"`
}

func headerOf(s *types.Session) sessionHeader {
	return sessionHeader{
		ID:        s.ID,
		Number:    s.Number,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
		Metadata:  s.Metadata,
		Analysis:  s.Analysis,
		Overruns:  s.Overruns,
		Points:    len(s.Points),
	}
}

func (h sessionHeader) summary() types.SessionSummary {
	sum := types.SessionSummary{
		ID:        h.ID,
		Number:    h.Number,
		StartedAt: h.StartedAt,
		EndedAt:   h.EndedAt,
		Material:  h.Metadata[types.MetaMaterial],
		Points:    h.Points,
	}
	if h.Analysis != nil {
		sum.Status = h.Analysis.Status
	}
	return sum
}

func (h sessionHeader) session(points []types.ProcessedPoint) *types.Session {
	return &types.Session{
		ID:        h.ID,
		Number:    h.Number,
		StartedAt: h.StartedAt,
		EndedAt:   h.EndedAt,
		Metadata:  h.Metadata,
		Points:    points,
		Analysis:  h.Analysis,
		Overruns:  h.Overruns,
	}
}

func encodePoints(points []types.ProcessedPoint, compression parquet.WriterOption) ([]byte, error) {
	rows := make([]pointRow, len(points))
	for i, p := range points {
		rows[i] = pointRow{
			Timestamp:      p.Timestamp,
			Ch0Voltage:     p.Ch0Voltage,
			Ch1Voltage:     p.Ch1Voltage,
			ForceN:         p.ForceN,
			DisplacementMM: p.DisplacementMM,
			StressMPa:      p.StressMPa,
			Strain:         p.Strain,
			StiffnessGPa:   p.StiffnessGPa,
		}
	}

	var buf bytes.Buffer
	pw := parquet.NewGenericWriter[pointRow](&buf, compression)
	if len(rows) > 0 {
		if _, err := pw.Write(rows); err != nil {
			return nil, err
		}
	}
	if err := pw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodePoints(data []byte) ([]types.ProcessedPoint, error) {
	gr := parquet.NewGenericReader[pointRow](bytes.NewReader(data))
	defer gr.Close()

	out := make([]types.ProcessedPoint, 0, gr.NumRows())
	batch := make([]pointRow, 1024)
	for {
		n, err := gr.Read(batch)
		for _, r := range batch[:n] {
			p := types.ProcessedPoint{
				Timestamp:      r.Timestamp,
				Ch0Voltage:     r.Ch0Voltage,
				Ch1Voltage:     r.Ch1Voltage,
				ForceN:         r.ForceN,
				DisplacementMM: r.DisplacementMM,
				StressMPa:      r.StressMPa,
				Strain:         r.Strain,
			}
			// The reader may reuse row memory between batches.
			if r.StiffnessGPa != nil {
				k := *r.StiffnessGPa
				p.StiffnessGPa = &k
			}
			out = append(out, p)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
