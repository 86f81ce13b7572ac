// Package store is a small bbolt-backed snapshot archive used by the
// gaugectl CLI. Snapshots accumulate until explicitly cleared; bbolt
// needs no server process, which suits one-shot CLI runs.
package store

import (
	"bytes"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const snapshotBucket = "snapshots"

// Snapshot is one stored per-river payload.
type Snapshot struct {
	RiverID string
	TakenAt time.Time
	Payload []byte
}

// Store wraps the bbolt database file.
type Store struct {
	db   *bolt.DB
	path string
}

// Open creates or opens the database at path and ensures the bucket.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(snapshotBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshot bucket: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close releases the database file lock.
func (s *Store) Close() error { return s.db.Close() }

// SaveSnapshot stores one river payload keyed by river id and timestamp.
// Keys sort chronologically per river because the timestamp is RFC 3339.
func (s *Store) SaveSnapshot(riverID string, takenAt time.Time, payload []byte) error {
	key := riverID + "|" + takenAt.UTC().Format(time.RFC3339)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(snapshotBucket)).Put([]byte(key), payload)
	})
}

// Snapshots returns up to limit snapshots for a river, newest first.
// limit <= 0 means no limit.
func (s *Store) Snapshots(riverID string, limit int) ([]Snapshot, error) {
	prefix := []byte(riverID + "|")
	var snaps []Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(snapshotBucket)).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			takenAt, err := time.Parse(time.RFC3339, string(k[len(prefix):]))
			if err != nil {
				continue
			}
			payload := make([]byte, len(v))
			copy(payload, v)
			snaps = append(snaps, Snapshot{RiverID: riverID, TakenAt: takenAt, Payload: payload})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Cursor iterates oldest first; reverse for newest first.
	for i, j := 0, len(snaps)-1; i < j; i, j = i+1, j-1 {
		snaps[i], snaps[j] = snaps[j], snaps[i]
	}
	if limit > 0 && len(snaps) > limit {
		snaps = snaps[:limit]
	}
	return snaps, nil
}

// Count returns the total number of stored snapshots.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(snapshotBucket)).Stats().KeyN
		return nil
	})
	return n, err
}

