package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/matrixrain/internal/metrics"
	"github.com/san-kum/matrixrain/internal/record"
	"github.com/san-kum/matrixrain/internal/registry"
)

// Store keeps benchmark runs, one directory per run holding metadata.json
// and samples.csv.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunConfig is the setup a benchmark ran with.
type RunConfig struct {
	Seed            int64  `json:"seed"`
	Quality         string `json:"quality"`
	Theme           string `json:"theme"`
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	SpeedMs         int    `json:"speed_ms"`
	VsyncMs         int    `json:"vsync_ms"`
	LoadPerColumnUs int    `json:"load_per_column_us"`
}

type Transition struct {
	AtMs int64  `json:"at_ms"`
	FPS  int    `json:"fps"`
	From string `json:"from"`
	To   string `json:"to"`
}

type RunMetadata struct {
	ID          string       `json:"id"`
	Timestamp   time.Time    `json:"timestamp"`
	Config      RunConfig    `json:"config"`
	Frames      int          `json:"frames"`
	SimulatedMs int64        `json:"simulated_ms"`
	WallMs      int64        `json:"wall_ms"`
	MeanFPS     float64      `json:"mean_fps"`
	FinalActive string       `json:"final_active"`
	Transitions []Transition `json:"transitions"`
}

// NewRunMetadata summarises a benchmark result. ID and Timestamp are set by Save.
func NewRunMetadata(cfg RunConfig, res *record.BenchResult) RunMetadata {
	meta := RunMetadata{
		Config:      cfg,
		Frames:      res.Frames,
		SimulatedMs: res.Simulated.Milliseconds(),
		WallMs:      res.Wall.Milliseconds(),
		FinalActive: res.Final.Active.String(),
		MeanFPS:     res.MeanFPS(),
		Transitions: make([]Transition, 0, len(res.Adjustments)),
	}
	for _, a := range res.Adjustments {
		meta.Transitions = append(meta.Transitions, Transition{
			AtMs: a.At.Milliseconds(),
			FPS:  a.FPS,
			From: a.From.String(),
			To:   a.To.String(),
		})
	}
	return meta
}

// Save writes a run and returns its ID.
func (s *Store) Save(meta RunMetadata, samples []metrics.Sample) (string, error) {
	ts := s.now()
	meta.ID = fmt.Sprintf("bench_%d", ts.UnixMilli())
	meta.Timestamp = ts
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()
	if err := ExportJSON(metaFile, meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"at_ms", "fps", "active"}); err != nil {
		return "", err
	}
	for _, sample := range samples {
		row := []string{
			strconv.FormatInt(sample.At.Milliseconds(), 10),
			strconv.Itoa(sample.FPS),
			sample.Active.String(),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns every readable run, oldest first.
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
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples reads a run's FPS samples back. Malformed rows are skipped.
func (s *Store) LoadSamples(runID string) ([]metrics.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []metrics.Sample{}, nil
	}

	samples := make([]metrics.Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != 3 {
			continue
		}
		at, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			continue
		}
		fps, err := strconv.Atoi(rec[1])
		if err != nil {
			continue
		}
		active, err := registry.ParseLevel(rec[2])
		if err != nil {
			continue
		}
		samples = append(samples, metrics.Sample{At: time.Duration(at) * time.Millisecond, FPS: fps, Active: active})
	}
	return samples, nil
}

// ExportJSON writes meta as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
