package storage

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// FileStore keeps each record in its own directory: metadata.json plus an
// inputs.csv with one row per evaluated point.
type FileStore struct {
	baseDir string
}

func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

func (s *FileStore) Init(_ context.Context) error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) Save(_ context.Context, rec Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record has no id")
	}
	dir := filepath.Join(s.baseDir, rec.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	err := writeFile(filepath.Join(dir, "metadata.json"), func(f io.Writer) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	})
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, "inputs.csv"), func(f io.Writer) error {
		return writeInputs(f, rec)
	})
}

// writeFile creates path, fills it and closes it, reporting the close error
// of a successful fill.
func writeFile(path string, fill func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeInputs(out io.Writer, rec Record) error {
	w := csv.NewWriter(out)

	header := []string{"row", "reward"}
	for i := 0; i < rec.Dim; i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, x := range rec.Inputs {
		row := []string{strconv.Itoa(i), ""}
		if i < len(rec.Rewards) {
			row[1] = strconv.FormatFloat(rec.Rewards[i], 'g', -1, 64)
		}
		for _, v := range x {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func (s *FileStore) Get(_ context.Context, id string) (Record, bool, error) {
	rec, err := s.loadMeta(id)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}

	inputs, err := s.loadInputs(id)
	if err != nil {
		return Record{}, false, fmt.Errorf("load inputs %s: %w", id, err)
	}
	rec.Inputs = inputs
	return rec, true, nil
}

func (s *FileStore) List(_ context.Context, limit int) ([]Record, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, err
	}

	records := make([]Record, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rec, err := s.loadMeta(entry.Name())
		if err != nil {
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *FileStore) loadMeta(id string) (Record, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *FileStore) loadInputs(id string) ([][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "inputs.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}

	inputs := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		x := make([]float64, 0, len(record)-2)
		for _, field := range record[2:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, err
			}
			x = append(x, v)
		}
		inputs = append(inputs, x)
	}
	return inputs, nil
}
