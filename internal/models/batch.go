package models

import "time"

// Pipeline stages a document can fail in
const (
	StageTemplate = "template"
	StageFields   = "fields"
	StageRender   = "render"
	StageDegrade  = "degrade"
	StageQuality  = "quality"
	StageSave     = "save"
)

// Batch status constants
const (
	BatchStatusQueued    = "QUEUED"
	BatchStatusRunning   = "RUNNING"
	BatchStatusCompleted = "COMPLETED"
	BatchStatusFailed    = "FAILED"
)

// DocumentRecord is the ground truth of one generated document
type DocumentRecord struct {
	Index    int             `json:"index"`
	FileName string          `json:"file_name"`
	Path     string          `json:"path"`
	Template string          `json:"template"`
	Subtype  DocumentSubtype `json:"subtype,omitempty"`
	Fields   *FieldMapping   `json:"fields"`
}

// DocumentFailure describes one document that could not be generated
type DocumentFailure struct {
	Index int    `json:"index"`
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// BatchReport summarizes one generation batch
type BatchReport struct {
	BatchID    string            `json:"batch_id"`
	Class      DocumentClass     `json:"class"`
	OutputDir  string            `json:"output_dir"`
	Requested  int               `json:"requested"`
	Succeeded  int               `json:"succeeded"`
	Failed     int               `json:"failed"`
	Failures   []DocumentFailure `json:"failures,omitempty"`
	Documents  []DocumentRecord  `json:"-"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
}

// Duration returns how long the batch ran
func (r *BatchReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// BatchJob is a queued or finished batch submitted through the API
type BatchJob struct {
	ID         string         `json:"id"`
	Status     string         `json:"status"`
	Selector   string         `json:"selector"`
	Counts     map[string]int `json:"counts"`
	OutputRoot string         `json:"output_root"`
	Seed       uint64         `json:"seed,omitempty"`
	Reports    []*BatchReport `json:"reports,omitempty"`
	Error      string         `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
