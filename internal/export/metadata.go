package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/garyjia/docsynth/internal/models"
)

// MetadataFileName is written at the output root of every export
const MetadataFileName = "generation_metadata.json"

// BatchSummary is the per-class part of the metadata
type BatchSummary struct {
	BatchID   string                   `json:"batch_id"`
	Class     string                   `json:"class"`
	Requested int                      `json:"requested"`
	Succeeded int                      `json:"succeeded"`
	Failed    int                      `json:"failed"`
	Failures  []models.DocumentFailure `json:"failures,omitempty"`
	Seconds   float64                  `json:"seconds"`
}

// Metadata describes one generation run
type Metadata struct {
	Counts          map[string]int `json:"counts"`
	Failed          map[string]int `json:"failed"`
	OutputDirectory string         `json:"output_directory"`
	GenerationTime  float64        `json:"generation_time"`
	GeneratedAt     time.Time      `json:"generated_at"`
	Seed            uint64         `json:"seed,omitempty"`
	SplitInfo       Split          `json:"split_info"`
	Batches         []BatchSummary `json:"batches"`
}

// Total returns the number of generated documents
func (m *Metadata) Total() int {
	total := 0
	for _, n := range m.Counts {
		total += n
	}
	return total
}

// BuildMetadata summarizes reports generated under root
func BuildMetadata(reports []*models.BatchReport, root string, elapsed time.Duration, seed uint64, r Ratios) (*Metadata, error) {
	md := &Metadata{
		Counts:          make(map[string]int),
		Failed:          make(map[string]int),
		OutputDirectory: root,
		GenerationTime:  elapsed.Seconds(),
		GeneratedAt:     time.Now().UTC(),
		Seed:            seed,
	}

	for _, report := range reports {
		if report == nil {
			continue
		}
		class := string(report.Class)
		md.Counts[class] += report.Succeeded
		md.Failed[class] += report.Failed
		md.Batches = append(md.Batches, BatchSummary{
			BatchID:   report.BatchID,
			Class:     class,
			Requested: report.Requested,
			Succeeded: report.Succeeded,
			Failed:    report.Failed,
			Failures:  report.Failures,
			Seconds:   report.Duration().Seconds(),
		})
	}

	split, err := NewSplit(md.Total(), r)
	if err != nil {
		return nil, err
	}
	md.SplitInfo = split
	return md, nil
}

// SaveMetadata writes generation_metadata.json under dir
func SaveMetadata(dir string, md *Metadata) (string, error) {
	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, MetadataFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write metadata: %w", err)
	}
	return path, nil
}

// LoadMetadata reads generation_metadata.json from dir, returning empty
// metadata when the file does not exist
func LoadMetadata(dir string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return &Metadata{Counts: map[string]int{}, Failed: map[string]int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}
	var md Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	return &md, nil
}
