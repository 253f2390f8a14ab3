package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/dgallion1/chapterd/internal/document"
)

var (
	bucketReports = []byte("reports")
	bucketHashes  = []byte("hashes")
)

// ErrNotFound is returned when no report exists for a document ID.
var ErrNotFound = errors.New("report not found")

// Store persists segmentation reports in a bbolt database. A second bucket
// indexes content hashes to document IDs so re-uploads of identical content
// can be detected without rescanning reports.
type Store struct {
	db *bolt.DB
}

// Open opens the database at path, creating the file and its parent
// directory if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketReports, bucketHashes} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveReport writes a report and indexes its content hash.
func (s *Store) SaveReport(rep *document.Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketReports).Put([]byte(rep.DocID), data); err != nil {
			return err
		}
		if rep.ContentHash != "" {
			return tx.Bucket(bucketHashes).Put([]byte(rep.ContentHash), []byte(rep.DocID))
		}
		return nil
	})
}

// GetReport loads the full report for a document ID.
func (s *Store) GetReport(docID string) (*document.Report, error) {
	var rep document.Report
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketReports).Get([]byte(docID))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &rep)
	})
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// ListReports returns summaries of every stored report.
func (s *Store) ListReports() ([]document.Summary, error) {
	var summaries []document.Summary
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketReports).ForEach(func(k, v []byte) error {
			var rep document.Report
			if err := json.Unmarshal(v, &rep); err != nil {
				return fmt.Errorf("unmarshal report %s: %w", k, err)
			}
			summaries = append(summaries, rep.Summarize())
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// DeleteReport removes a report and its hash index entry.
func (s *Store) DeleteReport(docID string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		reports := tx.Bucket(bucketReports)
		data := reports.Get([]byte(docID))
		if data == nil {
			return ErrNotFound
		}

		var rep document.Report
		if err := json.Unmarshal(data, &rep); err == nil && rep.ContentHash != "" {
			if err := tx.Bucket(bucketHashes).Delete([]byte(rep.ContentHash)); err != nil {
				return err
			}
		}
		return reports.Delete([]byte(docID))
	})
}

// FindByHash returns the document ID stored for a content hash, if any.
func (s *Store) FindByHash(hash string) (string, bool, error) {
	var docID string
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketHashes).Get([]byte(hash)); v != nil {
			docID = string(v)
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return docID, docID != "", nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
