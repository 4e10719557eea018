package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// ExportData is the JSON document written by ExportJSON.
type ExportData struct {
	Exported time.Time      `json:"exported"`
	Count    int            `json:"count"`
	Records  []ExportRecord `json:"records"`
}

type ExportRecord struct {
	Record
	ElapsedMS  float64     `json:"elapsed_ms"`
	BestRow    int         `json:"best_row"`
	BestReward float64     `json:"best_reward"`
	Inputs     [][]float64 `json:"inputs,omitempty"`
}

func ExportJSON(w io.Writer, records []Record) error {
	data := ExportData{
		Exported: time.Now().UTC(),
		Count:    len(records),
		Records:  make([]ExportRecord, len(records)),
	}
	for i, r := range records {
		idx, best := r.Best()
		data.Records[i] = ExportRecord{
			Record:     r,
			ElapsedMS:  float64(r.Elapsed) / float64(time.Millisecond),
			BestRow:    idx,
			BestReward: best,
			Inputs:     r.Inputs,
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes one line per evaluated row.
func ExportCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "benchmark", "source", "timestamp", "row", "reward"}); err != nil {
		return err
	}
	for _, r := range records {
		ts := r.Timestamp.UTC().Format(time.RFC3339Nano)
		for i, v := range r.Rewards {
			line := []string{r.ID, r.Benchmark, r.Source, ts, strconv.Itoa(i), strconv.FormatFloat(v, 'g', -1, 64)}
			if err := cw.Write(line); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFile writes records to path in the given format (json or csv).
func ExportFile(path, format string, records []Record) error {
	var export func(io.Writer, []Record) error
	switch format {
	case "json":
		export = ExportJSON
	case "csv":
		export = ExportCSV
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export(file, records); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
