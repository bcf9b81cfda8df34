package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run    RunMetadata `json:"run"`
	Header []string    `json:"header"`
	Rows   [][]float64 `json:"rows"`
}

func (s *Store) exportData(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	table, err := s.LoadSamples(runID)
	if err != nil {
		return nil, err
	}
	return &ExportData{Run: *meta, Header: table.Header, Rows: table.Rows}, nil
}

// ExportJSON writes a run with its samples to path, or to stdout when
// path is empty.
func (s *Store) ExportJSON(runID, path string) error {
	data, err := s.exportData(runID)
	if err != nil {
		return err
	}

	if path == "" {
		return encode(os.Stdout, data)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return encode(file, data)
}

func encode(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
