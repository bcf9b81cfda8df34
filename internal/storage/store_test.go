package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/hookeslaw/internal/physics"
	"github.com/san-kum/hookeslaw/internal/sweep"
)

func testResult() *sweep.Result {
	return &sweep.Result{
		Scene:    "intro",
		System:   physics.KindSingle,
		Quantity: sweep.Force,
		Steps:    2,
		Labels:   []string{"spring"},
		Samples: []sweep.Sample{
			{Step: 0, Input: -50, Springs: []physics.Snapshot{
				{AppliedForce: -50, SpringConstant: 200, Displacement: -0.25, Length: 1.25, SpringForce: 50, PotentialEnergy: 6.25},
			}},
			{Step: 1, Input: 50, Springs: []physics.Snapshot{
				{AppliedForce: 50, SpringConstant: 200, Displacement: 0.25, Length: 1.75, SpringForce: -50, PotentialEnergy: 6.25},
			}},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir, nil)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !strings.HasPrefix(runID, "intro_") {
		t.Errorf("expected run id prefixed with scene, got %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Scene != "intro" || meta.Quantity != sweep.Force {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Samples != 2 {
		t.Errorf("expected 2 samples, got %d", meta.Samples)
	}
	if meta.Metrics["max_force"] != 50 || meta.Metrics["min_displacement"] != -0.25 {
		t.Errorf("unexpected metrics %v", meta.Metrics)
	}
	if _, ok := meta.Metrics["hooke_residual"]; !ok {
		t.Error("expected hooke_residual in metrics")
	}

	table, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}

	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if len(table.Header) != 2+len(fields) {
		t.Errorf("expected %d columns, got %v", 2+len(fields), table.Header)
	}

	x, ok := table.Column("spring_displacement")
	if !ok {
		t.Fatal("spring_displacement column missing")
	}
	if x[0] != -0.25 || x[1] != 0.25 {
		t.Errorf("unexpected displacements %v", x)
	}
	if _, ok := table.Column("top_displacement"); ok {
		t.Error("unexpected top column for a single spring")
	}
}

func TestStoreRunIDsAreUnique(t *testing.T) {
	st := New(t.TempDir(), nil)

	a, _ := st.Save(testResult())
	b, _ := st.Save(testResult())
	if a == b {
		t.Errorf("expected distinct run ids, got %q twice", a)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir, nil)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(testResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "not-a-run"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"), nil)

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir(), nil)

	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadSamples("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir, nil)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	metaPath := filepath.Join(runDir, "metadata.json")
	csvPath := filepath.Join(runDir, "samples.csv")

	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}

	if _, err := os.Stat(csvPath); os.IsNotExist(err) {
		t.Error("samples.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir, nil)

	runID, err := st.Save(testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out := filepath.Join(tmpDir, "run.json")
	if err := st.ExportJSON(runID, out); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Run.ID != runID || len(data.Rows) != 2 {
		t.Errorf("unexpected export %+v", data.Run)
	}
}
