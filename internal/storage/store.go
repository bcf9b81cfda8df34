package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/hookeslaw/internal/metrics"
	"github.com/san-kum/hookeslaw/internal/physics"
	"github.com/san-kum/hookeslaw/internal/sweep"
)

var ErrRunNotFound = errors.New("storage: run not found")

// fields are the per-spring columns of samples.csv, in order.
var fields = []string{"applied_force", "spring_constant", "displacement", "length", "spring_force", "potential_energy"}

type Store struct {
	baseDir string
	logger  *slog.Logger
}

func New(baseDir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{baseDir: baseDir, logger: logger}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scene     string             `json:"scene"`
	Target    string             `json:"target"`
	System    physics.Kind       `json:"system"`
	Quantity  sweep.Quantity     `json:"quantity"`
	Timestamp time.Time          `json:"timestamp"`
	Steps     int                `json:"steps"`
	Samples   int                `json:"samples"`
	Skipped   int                `json:"skipped"`
	Labels    []string           `json:"labels"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Samples is the table stored in samples.csv.
type Samples struct {
	Header []string
	Rows   [][]float64
}

// Column returns one named column, e.g. "input" or "top_displacement".
func (t *Samples) Column(name string) ([]float64, bool) {
	idx := -1
	for i, h := range t.Header {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	col := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx < len(row) {
			col = append(col, row[idx])
		}
	}
	return col, true
}

func newRunID(scene string) string {
	return fmt.Sprintf("%s_%s", scene, uuid.NewString()[:8])
}

func (s *Store) Save(result *sweep.Result) (string, error) {
	runID := newRunID(result.Scene)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scene:     result.Scene,
		Target:    result.Target,
		System:    result.System,
		Quantity:  result.Quantity,
		Timestamp: time.Now(),
		Steps:     result.Steps,
		Samples:   len(result.Samples),
		Skipped:   result.Skipped,
		Labels:    result.Labels,
		Metrics:   summarize(result),
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "samples.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	header := []string{"step", "input"}
	for _, label := range result.Labels {
		for _, f := range fields {
			header = append(header, label+"_"+f)
		}
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, sample := range result.Samples {
		row := []string{strconv.Itoa(sample.Step), format(sample.Input)}
		for _, snap := range sample.Springs {
			row = append(row,
				format(snap.AppliedForce),
				format(snap.SpringConstant),
				format(snap.Displacement),
				format(snap.Length),
				format(snap.SpringForce),
				format(snap.PotentialEnergy),
			)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	s.logger.Debug("run saved", "id", runID, "dir", runDir, "samples", len(result.Samples))
	return runID, nil
}

func format(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

// summarize records the metrics of the primary spring.
func summarize(result *sweep.Result) map[string]float64 {
	snaps := make([]physics.Snapshot, len(result.Samples))
	for i, sample := range result.Samples {
		snaps[i] = sample.Springs[0]
	}
	return metrics.Summarize(snaps, metrics.Default()...)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.logger.Debug("skipping run", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSamples(runID string) (*Samples, error) {
	csvPath := filepath.Join(s.baseDir, runID, "samples.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
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
	if len(records) == 0 {
		return &Samples{}, nil
	}

	table := &Samples{Header: records[0], Rows: make([][]float64, 0, len(records)-1)}
	for _, record := range records[1:] {
		row := make([]float64, 0, len(record))
		for _, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("samples.csv: %w", err)
			}
			row = append(row, val)
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
