package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/garyjia/docsynth/internal/models"
	"go.uber.org/zap"
)

// Config selects where batch summaries are posted
type Config struct {
	Enabled       bool
	ReceiveIDType string
	ReceiveID     string
}

// BatchNotifier posts a summary message when a job finishes
type BatchNotifier struct {
	sender MessageSender
	cfg    Config
	logger *zap.Logger
}

// NewBatchNotifier creates a notifier; a nil sender or disabled config makes
// every call a no-op
func NewBatchNotifier(sender MessageSender, cfg Config, logger *zap.Logger) *BatchNotifier {
	if cfg.ReceiveIDType == "" {
		cfg.ReceiveIDType = "chat_id"
	}
	return &BatchNotifier{
		sender: sender,
		cfg:    cfg,
		logger: logger,
	}
}

// Enabled reports whether messages will be sent
func (n *BatchNotifier) Enabled() bool {
	return n != nil && n.cfg.Enabled && n.sender != nil && n.cfg.ReceiveID != ""
}

// NotifyJob sends the summary of a finished job
func (n *BatchNotifier) NotifyJob(ctx context.Context, jobID string, reports []*models.BatchReport) error {
	if !n.Enabled() {
		return nil
	}

	content, err := json.Marshal(map[string]string{"text": Summarize(jobID, reports)})
	if err != nil {
		return fmt.Errorf("failed to marshal message content: %w", err)
	}

	messageID, err := n.sender.SendMessage(ctx, n.cfg.ReceiveIDType, n.cfg.ReceiveID, "text", string(content))
	if err != nil {
		return fmt.Errorf("failed to notify job %s: %w", jobID, err)
	}

	n.logger.Info("Batch summary sent",
		zap.String("job_id", jobID),
		zap.String("message_id", messageID))
	return nil
}

// Summarize renders a plain-text summary of the reports of one job
func Summarize(jobID string, reports []*models.BatchReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Document generation finished: %s\n", jobID)

	var succeeded, failed int
	for _, r := range reports {
		if r == nil {
			continue
		}
		succeeded += r.Succeeded
		failed += r.Failed
		fmt.Fprintf(&b, "- %s: %d/%d generated", r.Class, r.Succeeded, r.Requested)
		if r.Failed > 0 {
			fmt.Fprintf(&b, ", %d failed", r.Failed)
		}
		fmt.Fprintf(&b, " in %.1fs\n", r.Duration().Seconds())
	}
	fmt.Fprintf(&b, "Total: %d generated, %d failed", succeeded, failed)
	return b.String()
}
