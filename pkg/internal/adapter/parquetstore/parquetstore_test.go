package parquetstore

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeydtaylor/tensilerig/pkg/internal/adapter/s3client"
	"github.com/joeydtaylor/tensilerig/pkg/internal/seriescodec"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// fakeBucket is an in-memory S3 bucket behind an http.RoundTripper.
type fakeBucket struct {
	mu       sync.Mutex
	objects  map[string][]byte
	failPuts bool
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: make(map[string][]byte)}
}

func (b *fakeBucket) RoundTrip(r *http.Request) (*http.Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := objectKey(r.URL.Path)
	switch {
	case r.Method == http.MethodPut:
		if b.failPuts {
			return response(http.StatusInternalServerError,
				[]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>InternalError</Code><Message>boom</Message></Error>`)), nil
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		if strings.Contains(r.Header.Get("Content-Encoding"), "aws-chunked") {
			if body, err = dechunk(body); err != nil {
				return nil, err
			}
		}
		b.objects[key] = body
		return response(http.StatusOK, nil), nil

	case r.Method == http.MethodGet && r.URL.Query().Get("list-type") == "2":
		prefix := r.URL.Query().Get("prefix")
		var keys []string
		for k := range b.objects {
			if strings.HasPrefix(k, prefix) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		var sb strings.Builder
		sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?><ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/"><IsTruncated>false</IsTruncated>`)
		for _, k := range keys {
			sb.WriteString("<Contents><Key>" + k + "</Key><Size>" + strconv.Itoa(len(b.objects[k])) + "</Size></Contents>")
		}
		sb.WriteString("</ListBucketResult>")
		return response(http.StatusOK, []byte(sb.String())), nil

	case r.Method == http.MethodGet:
		body, ok := b.objects[key]
		if !ok {
			return response(http.StatusNotFound,
				[]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)), nil
		}
		return response(http.StatusOK, append([]byte(nil), body...)), nil
	}
	return nil, fmt.Errorf("unexpected request %s %s", r.Method, r.URL)
}

func (b *fakeBucket) keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.objects))
	for k := range b.objects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func objectKey(p string) string {
	parts := strings.SplitN(strings.TrimPrefix(p, "/"), "/", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return ""
}

// dechunk strips aws-chunked framing: "<hex>[;ext]\r\n<data>\r\n" ... "0\r\n<trailers>".
func dechunk(body []byte) ([]byte, error) {
	var out bytes.Buffer
	rd := bufio.NewReader(bytes.NewReader(body))
	for {
		line, err := rd.ReadString('\n')
		if err != nil {
			return nil, err
		}
		size, err := strconv.ParseInt(strings.TrimSpace(strings.SplitN(line, ";", 2)[0]), 16, 64)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return out.Bytes(), nil
		}
		if _, err := io.CopyN(&out, rd, size); err != nil {
			return nil, err
		}
		if _, err := rd.Discard(2); err != nil {
			return nil, err
		}
	}
}

func response(status int, body []byte) *http.Response {
	h := http.Header{}
	if len(body) > 0 && body[0] == '<' {
		h.Set("Content-Type", "application/xml")
	}
	return &http.Response{
		StatusCode:    status,
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:        h,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}
}

func newObjectSink(b *fakeBucket) *s3client.S3Client {
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
		HTTPClient:  &http.Client{Transport: b},
	}
	cli := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://s3.test")
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
		o.RetryMaxAttempts = 1
	})
	return s3client.NewS3Client(cli, "rig-bucket", s3client.WithPrefix("sessions/"))
}

func openStore(t *testing.T, dir string, opts ...types.Option[*Store]) *Store {
	t.Helper()
	s, err := Open(dir, opts...)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func closedSession(id string, number, n int) *types.Session {
	start := time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC).Add(time.Duration(number) * time.Minute)
	points := make([]types.ProcessedPoint, n)
	for i := range points {
		strain := float64(i) * 0.0002
		p := types.ProcessedPoint{
			Timestamp:      float64(i) / 500,
			Ch0Voltage:     float64(i) * 0.004,
			Ch1Voltage:     strain * 5,
			ForceN:         float64(i) * 4,
			DisplacementMM: strain * 50,
			StressMPa:      float64(i) * 0.4,
			Strain:         strain,
		}
		if i%3 != 0 {
			k := 199.5
			p.StiffnessGPa = &k
		}
		points[i] = p
	}
	return &types.Session{
		ID:        id,
		Number:    number,
		StartedAt: start,
		EndedAt:   start.Add(time.Duration(n) * 2 * time.Millisecond),
		Metadata: map[string]string{
			types.MetaMaterial:      "aluminium",
			types.MetaGaugeLengthMM: "50",
			types.MetaOperator:      "rig-2",
		},
		Points:   points,
		Overruns: 1,
	}
}

func samePoints(t *testing.T, want, got []types.ProcessedPoint) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("expected %d points, got %d", len(want), len(got))
	}
	for i := range want {
		a, b := want[i], got[i]
		if a.Timestamp != b.Timestamp || a.Ch0Voltage != b.Ch0Voltage || a.Ch1Voltage != b.Ch1Voltage ||
			a.ForceN != b.ForceN || a.DisplacementMM != b.DisplacementMM ||
			a.StressMPa != b.StressMPa || a.Strain != b.Strain {
			t.Fatalf("point %d changed: %+v vs %+v", i, a, b)
		}
		if (a.StiffnessGPa == nil) != (b.StiffnessGPa == nil) {
			t.Fatalf("point %d stiffness presence changed", i)
		}
		if a.StiffnessGPa != nil && *a.StiffnessGPa != *b.StiffnessGPa {
			t.Fatalf("point %d stiffness changed: %v vs %v", i, *a.StiffnessGPa, *b.StiffnessGPa)
		}
	}
}

func TestSaveAndLoadSession(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, t.TempDir())

	in := closedSession("p-1", 1, 2500)
	in.Analysis = &types.AnalysisResult{
		Status:   types.AnalysisComplete,
		Points:   len(in.Points),
		Ultimate: &types.UltimatePoint{Index: 2499, StressMPa: 999.6, Strain: 0.4998},
		Outcomes: map[types.Region]types.RegionOutcome{types.RegionUltimate: types.OutcomeDetected},
	}
	if err := s.SaveSession(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.LoadSession(ctx, "p-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	samePoints(t, in.Points, out.Points)
	if out.Number != 1 || out.Overruns != 1 || out.Metadata[types.MetaOperator] != "rig-2" {
		t.Fatalf("unexpected header: %+v", out)
	}
	if !out.StartedAt.Equal(in.StartedAt) || !out.EndedAt.Equal(in.EndedAt) {
		t.Fatalf("times changed")
	}
	if out.Analysis == nil || out.Analysis.Ultimate == nil || out.Analysis.Ultimate.Index != 2499 {
		t.Fatalf("analysis not restored: %+v", out.Analysis)
	}
}

func TestEveryCompressionRoundTrips(t *testing.T) {
	ctx := context.Background()
	for _, c := range seriescodec.Compressions() {
		c := c
		t.Run(string(c), func(t *testing.T) {
			s := openStore(t, t.TempDir(), WithCompression(c))
			in := closedSession("c", 1, 300)
			if err := s.SaveSession(ctx, in); err != nil {
				t.Fatalf("save: %v", err)
			}
			out, err := s.LoadSession(ctx, "c")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			samePoints(t, in.Points, out.Points)
		})
	}
}

func TestEmptySessionRoundTrips(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, t.TempDir())

	if err := s.SaveSession(ctx, closedSession("empty", 1, 0)); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := s.LoadSession(ctx, "empty")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out.Points) != 0 {
		t.Fatalf("expected no points, got %d", len(out.Points))
	}
}

func TestSaveSessionRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, t.TempDir())

	if err := s.SaveSession(ctx, closedSession("dup", 1, 10)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SaveSession(ctx, closedSession("dup", 9, 40)); !errors.Is(err, types.ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists, got %v", err)
	}
	out, err := s.LoadSession(ctx, "dup")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.Number != 1 || len(out.Points) != 10 {
		t.Fatalf("stored record was modified")
	}
}

func TestSaveSessionRejectsBadInput(t *testing.T) {
	s := openStore(t, t.TempDir())

	open := closedSession("open", 1, 5)
	open.EndedAt = time.Time{}
	if err := s.SaveSession(context.Background(), open); err == nil {
		t.Fatal("expected error for open session")
	}
	if err := s.SaveSession(context.Background(), closedSession("../escape", 1, 5)); err == nil {
		t.Fatal("expected error for id with a path separator")
	}
}

func TestLoadSessionNotFound(t *testing.T) {
	s := openStore(t, t.TempDir())

	if _, err := s.LoadSession(context.Background(), "nope"); !errors.Is(err, types.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestListSessionsOrdered(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := openStore(t, dir)

	for _, sess := range []*types.Session{closedSession("z", 2, 3), closedSession("y", 1, 4), closedSession("x", 3, 5)} {
		if err := s.SaveSession(ctx, sess); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	// Points files without a header are incomplete writes and are ignored.
	if err := os.WriteFile(filepath.Join(dir, "orphan.parquet"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	list, err := s.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var ids []string
	for _, sum := range list {
		ids = append(ids, sum.ID)
	}
	if strings.Join(ids, ",") != "y,z,x" {
		t.Fatalf("unexpected order: %v", ids)
	}
	if list[0].Material != "aluminium" || list[0].Points != 4 {
		t.Fatalf("unexpected summary: %+v", list[0])
	}
}

func TestObjectSinkMirrorsSessions(t *testing.T) {
	ctx := context.Background()
	bucket := newFakeBucket()
	s := openStore(t, t.TempDir(), WithObjectSink(newObjectSink(bucket)))

	in := closedSession("mirrored", 4, 120)
	if err := s.SaveSession(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := strings.Join(bucket.keys(), ","); got != "sessions/mirrored.json,sessions/mirrored.parquet" {
		t.Fatalf("unexpected objects: %s", got)
	}

	// A second machine with an empty directory reads it back from the bucket.
	other := openStore(t, t.TempDir(), WithObjectSink(newObjectSink(bucket)))
	list, err := other.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "mirrored" || list[0].Number != 4 {
		t.Fatalf("unexpected remote listing: %+v", list)
	}
	out, err := other.LoadSession(ctx, "mirrored")
	if err != nil {
		t.Fatalf("load from bucket: %v", err)
	}
	samePoints(t, in.Points, out.Points)

	if err := other.SaveSession(ctx, closedSession("mirrored", 5, 1)); !errors.Is(err, types.ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists from bucket, got %v", err)
	}
	if _, err := other.LoadSession(ctx, "absent"); !errors.Is(err, types.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestUploadFailureLeavesNothingBehind(t *testing.T) {
	ctx := context.Background()
	bucket := newFakeBucket()
	bucket.failPuts = true
	dir := t.TempDir()
	s := openStore(t, dir, WithObjectSink(newObjectSink(bucket)))

	if err := s.SaveSession(ctx, closedSession("lost", 1, 10)); err == nil {
		t.Fatal("expected upload error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty directory after failed upload, found %d entries", len(entries))
	}

	bucket.mu.Lock()
	bucket.failPuts = false
	bucket.mu.Unlock()
	if err := s.SaveSession(ctx, closedSession("lost", 1, 10)); err != nil {
		t.Fatalf("retry: %v", err)
	}
}
