// Package sheet persists a flat stock table in an .xlsx workbook.
package sheet

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"
)

const worksheet = "Stock"

var header = []any{"id", "name", "qty", "price", "category"}

// ErrNotFound is returned for lookups/deletes of an absent record id.
var ErrNotFound = errors.New("record not found")

// Record is one stock row. ID is a string: caller-supplied or auto-assigned
// as P<seq:04d>.
type Record struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Qty      int     `json:"qty"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// Store serializes all workbook access behind one mutex; each operation opens
// the file, works on it, and closes it before returning.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore opens the workbook at path, creating it with a header row when
// missing.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f := excelize.NewFile()
		defer f.Close()
		if err := f.SetSheetName("Sheet1", worksheet); err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(worksheet, "A1", &header); err != nil {
			return nil, err
		}
		if err := f.SaveAs(path); err != nil {
			return nil, fmt.Errorf("create workbook %s: %w", path, err)
		}
	}
	return s, nil
}

func (s *Store) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	return f, nil
}

func parseRow(row []string) Record {
	rec := Record{}
	if len(row) > 0 {
		rec.ID = row[0]
	}
	if len(row) > 1 {
		rec.Name = row[1]
	}
	if len(row) > 2 {
		rec.Qty, _ = strconv.Atoi(row[2])
	}
	if len(row) > 3 {
		rec.Price, _ = strconv.ParseFloat(row[3], 64)
	}
	if len(row) > 4 {
		rec.Category = row[4]
	}
	return rec
}

// List returns all records in sheet order.
func (s *Store) List() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := f.GetRows(worksheet)
	if err != nil {
		return nil, err
	}
	records := []Record{}
	for i, row := range rows {
		if i == 0 || len(row) == 0 || row[0] == "" {
			continue
		}
		records = append(records, parseRow(row))
	}
	return records, nil
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (*Record, error) {
	records, err := s.List()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return &rec, nil
		}
	}
	return nil, ErrNotFound
}

// Put inserts or updates a record. An empty id gets the next P-sequence id.
// The stored record is returned so callers see the assigned id.
func (s *Store) Put(rec Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.open()
	if err != nil {
		return rec, err
	}
	defer f.Close()
	rows, err := f.GetRows(worksheet)
	if err != nil {
		return rec, err
	}

	if rec.ID == "" {
		rec.ID = nextID(rows)
	}
	target := len(rows) + 1 // append position (1-based)
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) > 0 && row[0] == rec.ID {
			target = i + 1
			break
		}
	}
	cells := []any{rec.ID, rec.Name, rec.Qty, rec.Price, rec.Category}
	if err := f.SetSheetRow(worksheet, fmt.Sprintf("A%d", target), &cells); err != nil {
		return rec, err
	}
	return rec, f.Save()
}

// Delete removes the row for id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()
	rows, err := f.GetRows(worksheet)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) > 0 && row[0] == id {
			if err := f.RemoveRow(worksheet, i+1); err != nil {
				return err
			}
			return f.Save()
		}
	}
	return ErrNotFound
}

// nextID scans existing P<seq:04d> ids and returns the next in sequence.
// Caller-supplied ids of another shape are ignored for numbering.
func nextID(rows [][]string) string {
	maxSeq := 0
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		var seq int
		if _, err := fmt.Sscanf(row[0], "P%d", &seq); err == nil && seq > maxSeq {
			maxSeq = seq
		}
	}
	return fmt.Sprintf("P%04d", maxSeq+1)
}
