package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/pdspring/internal/curve"
	"github.com/san-kum/pdspring/internal/dynamo"
	"github.com/san-kum/pdspring/spring"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string                `json:"id"`
	Name      string                `json:"name,omitempty"`
	Engine    string                `json:"engine"`
	Timestamp time.Time             `json:"timestamp"`
	Params    curve.Params          `json:"params"`
	Physical  spring.PhysicalParams `json:"physical"`
	Dt        float64               `json:"dt"`
	Span      float64               `json:"span"`
	Samples   int                   `json:"samples"`
	Metrics   map[string]float64    `json:"metrics"`
}

// Save writes a sampled run and returns its id. Non-finite metrics (a curve
// that never settles) are left out of the metadata since JSON cannot hold them.
func (s *Store) Save(name string, p curve.Params, cfg dynamo.Config, result *dynamo.Result) (string, error) {
	now := time.Now()
	engine := result.Engine
	if engine == "" {
		engine = curve.DefaultEngine
	}
	runID := fmt.Sprintf("%s_%d", engine, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Engine:    engine,
		Timestamp: now,
		Params:    p,
		Physical:  spring.Translate(p.Duration, p.Bounce),
		Dt:        cfg.Dt,
		Span:      cfg.Span,
		Samples:   len(result.Values),
		Metrics:   result.FiniteMetrics(),
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), result); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, result *dynamo.Result) (err error) {
	if len(result.Times) != len(result.Values) {
		return fmt.Errorf("result has %d times for %d values", len(result.Times), len(result.Values))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "value"}); err != nil {
		return err
	}
	for i := range result.Values {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Values[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns stored runs oldest first. Unreadable runs are skipped.
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
			log.Printf("[storage] skipping %s: %v", entry.Name(), err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadSamples reads back the sampled curve of a run.
func (s *Store) LoadSamples(runID string) (*dynamo.Result, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 2

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	result := &dynamo.Result{Metrics: make(map[string]float64)}
	if len(records) < 2 {
		return result, nil
	}

	result.Times = make([]float64, 0, len(records)-1)
	result.Values = make([]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("run %s row %d: %w", runID, i+1, err)
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("run %s row %d: %w", runID, i+1, err)
		}
		result.Times = append(result.Times, t)
		result.Values = append(result.Values, v)
	}

	return result, nil
}
