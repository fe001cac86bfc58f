package storage

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/KaladaranC/TutorTrack/internal/models"
)

// Bucket names.
var (
	bucketSessions = []byte("sessions") // insertion sequence -> session JSON
	bucketIDs      = []byte("ids")      // session id -> sequence key (index)
)

// BoltStore persists the collection in a local bbolt file. Records are
// keyed by an insertion sequence so List preserves creation order, with a
// secondary id index for update and delete.
type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		if _, createErr := tx.CreateBucketIfNotExists(bucketSessions); createErr != nil {
			return fmt.Errorf("create sessions bucket: %w", createErr)
		}
		if _, createErr := tx.CreateBucketIfNotExists(bucketIDs); createErr != nil {
			return fmt.Errorf("create ids bucket: %w", createErr)
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) List(_ context.Context) ([]models.Session, error) {
	var sessions []models.Session
	err := s.db.View(func(tx *bolt.Tx) error {
		var viewErr error
		sessions, viewErr = listSessions(tx)
		return viewErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return sessions, nil
}

func (s *BoltStore) Create(_ context.Context, session models.Session) ([]models.Session, error) {
	var sessions []models.Session
	err := s.db.Update(func(tx *bolt.Tx) error {
		records := tx.Bucket(bucketSessions)
		ids := tx.Bucket(bucketIDs)

		if ids.Get([]byte(session.ID)) != nil {
			return fmt.Errorf("session %s already exists", session.ID)
		}

		seq, err := records.NextSequence()
		if err != nil {
			return fmt.Errorf("allocate sequence: %w", err)
		}
		key := sequenceKey(seq)

		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		if err := records.Put(key, data); err != nil {
			return fmt.Errorf("store session: %w", err)
		}
		if err := ids.Put([]byte(session.ID), key); err != nil {
			return fmt.Errorf("store id index: %w", err)
		}

		sessions, err = listSessions(tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return sessions, nil
}

func (s *BoltStore) Update(_ context.Context, session models.Session) ([]models.Session, error) {
	var sessions []models.Session
	err := s.db.Update(func(tx *bolt.Tx) error {
		records := tx.Bucket(bucketSessions)
		ids := tx.Bucket(bucketIDs)

		// Unknown id is a no-op; the caller still gets the collection.
		if key := ids.Get([]byte(session.ID)); key != nil {
			data, err := json.Marshal(session)
			if err != nil {
				return fmt.Errorf("encode session: %w", err)
			}
			if err := records.Put(key, data); err != nil {
				return fmt.Errorf("store session: %w", err)
			}
		}

		var err error
		sessions, err = listSessions(tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return sessions, nil
}

func (s *BoltStore) Delete(_ context.Context, id string) ([]models.Session, error) {
	var sessions []models.Session
	err := s.db.Update(func(tx *bolt.Tx) error {
		records := tx.Bucket(bucketSessions)
		ids := tx.Bucket(bucketIDs)

		if key := ids.Get([]byte(id)); key != nil {
			if err := records.Delete(key); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
			if err := ids.Delete([]byte(id)); err != nil {
				return fmt.Errorf("delete id index: %w", err)
			}
		}

		var err error
		sessions, err = listSessions(tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return sessions, nil
}

func listSessions(tx *bolt.Tx) ([]models.Session, error) {
	sessions := make([]models.Session, 0)
	err := tx.Bucket(bucketSessions).ForEach(func(_, value []byte) error {
		var session models.Session
		if err := json.Unmarshal(value, &session); err != nil {
			return fmt.Errorf("decode session: %w", err)
		}
		sessions = append(sessions, session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
