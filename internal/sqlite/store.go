// Package sqlite implements the session store for seam: datasets,
// attributes, and the committed link set persisted to a SQLite file and
// re-hydrated on attach. The link set is rewritten wholesale on save, the
// same way the engine replaces it in memory.
// See docs/ARCHITECTURE.md § Session Store.
package sqlite

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/seam/internal/memengine"
	"github.com/mesh-intelligence/seam/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// dbFileName is the database file created inside the configured data dir.
const dbFileName = "seam.db"

var (
	// ErrAlreadyAttached is returned by Attach on an attached store.
	ErrAlreadyAttached = errors.New("store already attached")
	// ErrDetached is returned by operations on a store that is not attached.
	ErrDetached = errors.New("store not attached")
)

// Store persists a linking session to a SQLite file.
type Store struct {
	mu       sync.Mutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewStore creates a detached store; call Attach with a Config to open it.
func NewStore() *Store {
	return &Store{}
}

// Attach validates the configuration, creates the data directory if needed,
// opens the database file, and applies the schema.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(config.DataDir, 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(config.DataDir, dbFileName))
	if err != nil {
		return err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return err
	}

	s.db = db
	s.config = config
	s.attached = true
	return nil
}

// Detach closes the database. Idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}
	s.attached = false
	return nil
}

// Load reads the persisted session back out in stored order.
func (s *Store) Load() ([]*types.Dataset, []memengine.LinkRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil, nil, ErrDetached
	}

	datasets, err := s.loadDatasets()
	if err != nil {
		return nil, nil, fmt.Errorf("load datasets: %w", err)
	}
	records, err := s.loadLinks()
	if err != nil {
		return nil, nil, fmt.Errorf("load links: %w", err)
	}
	return datasets, records, nil
}

// Replace rewrites the whole session in one transaction.
func (s *Store) Replace(datasets []*types.Dataset, records []memengine.LinkRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return ErrDetached
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"links", "attributes", "datasets"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for di, d := range datasets {
		if _, err := tx.Exec(
			"INSERT INTO datasets (dataset_id, label, position) VALUES (?, ?, ?)",
			d.DatasetID, d.Label, di,
		); err != nil {
			return fmt.Errorf("insert dataset %q: %w", d.DatasetID, err)
		}
		for ai, a := range d.Attributes {
			if _, err := tx.Exec(
				"INSERT INTO attributes (attribute_id, dataset_id, label, position) VALUES (?, ?, ?, ?)",
				a.AttributeID, d.DatasetID, a.Label, ai,
			); err != nil {
				return fmt.Errorf("insert attribute %q: %w", a.AttributeID, err)
			}
		}
	}

	for i, rec := range records {
		attrs1, err := encodeList(rec.Attrs1)
		if err != nil {
			return fmt.Errorf("insert link %q: %w", rec.LinkID, err)
		}
		attrs2, err := encodeList(rec.Attrs2)
		if err != nil {
			return fmt.Errorf("insert link %q: %w", rec.LinkID, err)
		}
		labels1, err := encodeList(rec.Labels1)
		if err != nil {
			return fmt.Errorf("insert link %q: %w", rec.LinkID, err)
		}
		labels2, err := encodeList(rec.Labels2)
		if err != nil {
			return fmt.Errorf("insert link %q: %w", rec.LinkID, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO links (link_id, shape, kind, description, function_name, invertible,
				dataset1_id, dataset2_id, attrs1, attrs2, labels1, labels2, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.LinkID, rec.Shape, rec.Kind, rec.Description, rec.FunctionName, boolInt(rec.Invertible),
			rec.Dataset1ID, rec.Dataset2ID, attrs1, attrs2, labels1, labels2, i,
		); err != nil {
			return fmt.Errorf("insert link %q: %w", rec.LinkID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) loadDatasets() ([]*types.Dataset, error) {
	rows, err := s.db.Query("SELECT dataset_id, label FROM datasets ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasets []*types.Dataset
	byID := make(map[string]*types.Dataset)
	for rows.Next() {
		d := &types.Dataset{}
		if err := rows.Scan(&d.DatasetID, &d.Label); err != nil {
			return nil, err
		}
		datasets = append(datasets, d)
		byID[d.DatasetID] = d
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	attrRows, err := s.db.Query(
		"SELECT attribute_id, dataset_id, label FROM attributes ORDER BY dataset_id, position")
	if err != nil {
		return nil, err
	}
	defer attrRows.Close()

	for attrRows.Next() {
		var attributeID, datasetID, label string
		if err := attrRows.Scan(&attributeID, &datasetID, &label); err != nil {
			return nil, err
		}
		d, ok := byID[datasetID]
		if !ok {
			return nil, fmt.Errorf("attribute %q: %w", attributeID, types.ErrDatasetNotFound)
		}
		d.Attributes = append(d.Attributes, &types.Attribute{
			AttributeID: attributeID,
			Label:       label,
			Dataset:     d,
		})
	}
	return datasets, attrRows.Err()
}

func (s *Store) loadLinks() ([]memengine.LinkRecord, error) {
	rows, err := s.db.Query(
		`SELECT link_id, shape, kind, description, function_name, invertible,
			dataset1_id, dataset2_id, attrs1, attrs2, labels1, labels2
		 FROM links ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []memengine.LinkRecord
	for rows.Next() {
		var rec memengine.LinkRecord
		var invertible int
		var attrs1, attrs2, labels1, labels2 string
		if err := rows.Scan(
			&rec.LinkID, &rec.Shape, &rec.Kind, &rec.Description, &rec.FunctionName, &invertible,
			&rec.Dataset1ID, &rec.Dataset2ID, &attrs1, &attrs2, &labels1, &labels2,
		); err != nil {
			return nil, err
		}
		rec.Invertible = invertible != 0
		if rec.Attrs1, err = decodeList(attrs1); err != nil {
			return nil, fmt.Errorf("link %q attrs1: %w", rec.LinkID, err)
		}
		if rec.Attrs2, err = decodeList(attrs2); err != nil {
			return nil, fmt.Errorf("link %q attrs2: %w", rec.LinkID, err)
		}
		if rec.Labels1, err = decodeList(labels1); err != nil {
			return nil, fmt.Errorf("link %q labels1: %w", rec.LinkID, err)
		}
		if rec.Labels2, err = decodeList(labels2); err != nil {
			return nil, fmt.Errorf("link %q labels2: %w", rec.LinkID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeList(data string) ([]string, error) {
	if data == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
