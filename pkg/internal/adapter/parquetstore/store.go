package parquetstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joeydtaylor/tensilerig/pkg/internal/adapter/s3client"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"github.com/joeydtaylor/tensilerig/pkg/internal/utils"
)

// SaveSession writes the points file then the header. The header is the commit
// marker: a session without one does not exist. With an object sink the upload
// must also succeed, otherwise the local files are removed again.
func (s *Store) SaveSession(ctx context.Context, sess *types.Session) error {
	if sess == nil {
		return fmt.Errorf("parquetstore: nil session")
	}
	if err := validID(sess.ID); err != nil {
		return err
	}
	if !sess.Closed() {
		return fmt.Errorf("parquetstore: session %s is still open", sess.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.exists(ctx, sess.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", types.ErrSessionExists, sess.ID)
	}

	points, err := encodePoints(sess.Points, s.writerCompression())
	if err != nil {
		return fmt.Errorf("encode points: %w", err)
	}
	var header bytes.Buffer
	if err := s.headerEncoder.Encode(&header, headerOf(sess)); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	pointsPath, headerPath := s.paths(sess.ID)
	if err := writeFileAtomic(pointsPath, points); err != nil {
		return err
	}
	if err := writeFileAtomic(headerPath, header.Bytes()); err != nil {
		_ = os.Remove(pointsPath)
		return err
	}

	if s.objects != nil {
		if err := s.upload(ctx, sess.ID, points, header.Bytes()); err != nil {
			_ = os.Remove(headerPath)
			_ = os.Remove(pointsPath)
			return fmt.Errorf("upload session %s: %w", sess.ID, err)
		}
	}

	s.NotifyLoggers(types.InfoLevel, "session saved",
		"component", s.componentMetadata,
		"event", "SaveSession",
		"result", "SUCCESS",
		"session_id", sess.ID,
		"points", len(sess.Points),
		"bytes", len(points),
	)
	return nil
}

// ListSessions returns local sessions and, with an object sink, sessions only
// present in the bucket. Ordered by number then start time.
func (s *Store) ListSessions(ctx context.Context) ([]types.SessionSummary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []types.SessionSummary
	headers := utils.Filter(entries, func(e os.DirEntry) bool {
		return !e.IsDir() && strings.HasSuffix(e.Name(), headerExt)
	})
	for _, e := range headers {
		h, err := s.readLocalHeader(strings.TrimSuffix(e.Name(), headerExt))
		if err != nil {
			return nil, err
		}
		seen[h.ID] = true
		out = append(out, h.summary())
	}

	if s.objects != nil {
		names, err := s.objects.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, name := range names {
			id := strings.TrimSuffix(name, headerExt)
			if !strings.HasSuffix(name, headerExt) || seen[id] || validID(id) != nil {
				continue
			}
			h, err := s.readRemoteHeader(ctx, id)
			if err != nil {
				return nil, err
			}
			seen[id] = true
			out = append(out, h.summary())
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Number != out[j].Number {
			return out[i].Number < out[j].Number
		}
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out, nil
}

// LoadSession reads a session from disk, falling back to the object sink.
func (s *Store) LoadSession(ctx context.Context, id string) (*types.Session, error) {
	if err := validID(id); err != nil {
		return nil, err
	}

	h, err := s.readLocalHeader(id)
	if err == nil {
		pointsPath, _ := s.paths(id)
		data, err := os.ReadFile(pointsPath)
		if err != nil {
			return nil, err
		}
		return s.assemble(h, data)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if s.objects == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrSessionNotFound, id)
	}
	h, err = s.readRemoteHeader(ctx, id)
	if err != nil {
		if errors.Is(err, s3client.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s", types.ErrSessionNotFound, id)
		}
		return nil, err
	}
	data, err := s.objects.Get(ctx, id+pointsExt)
	if err != nil {
		return nil, err
	}
	return s.assemble(h, data)
}

func (s *Store) assemble(h sessionHeader, data []byte) (*types.Session, error) {
	points, err := decodePoints(data)
	if err != nil {
		return nil, fmt.Errorf("decode points for %s: %w", h.ID, err)
	}
	if len(points) != h.Points {
		return nil, fmt.Errorf("parquetstore: session %s has %d points, header says %d", h.ID, len(points), h.Points)
	}
	return h.session(points), nil
}

func (s *Store) exists(ctx context.Context, id string) (bool, error) {
	_, headerPath := s.paths(id)
	if _, err := os.Stat(headerPath); err == nil {
		return true, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if s.objects == nil {
		return false, nil
	}
	_, err := s.objects.Get(ctx, id+headerExt)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, s3client.ErrObjectNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *Store) upload(ctx context.Context, id string, points, header []byte) error {
	if err := s.objects.Put(ctx, id+pointsExt, points, "application/vnd.apache.parquet"); err != nil {
		return err
	}
	return s.objects.Put(ctx, id+headerExt, header, "application/json")
}

func (s *Store) readLocalHeader(id string) (sessionHeader, error) {
	_, headerPath := s.paths(id)
	f, err := os.Open(headerPath)
	if err != nil {
		return sessionHeader{}, err
	}
	defer f.Close()
	h, err := s.headerDecoder.Decode(f)
	if err != nil {
		return sessionHeader{}, fmt.Errorf("decode %s: %w", headerPath, err)
	}
	return h, nil
}

func (s *Store) readRemoteHeader(ctx context.Context, id string) (sessionHeader, error) {
	data, err := s.objects.Get(ctx, id+headerExt)
	if err != nil {
		return sessionHeader{}, err
	}
	h, err := s.headerDecoder.Decode(bytes.NewReader(data))
	if err != nil {
		return sessionHeader{}, fmt.Errorf("decode object %s: %w", id+headerExt, err)
	}
	return h, nil
}

func (s *Store) paths(id string) (points, header string) {
	return filepath.Join(s.dir, id+pointsExt), filepath.Join(s.dir, id+headerExt)
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}
