package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/garyjia/docsynth/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	calls   int
	idType  string
	id      string
	msgType string
	content string
	err     error
}

func (f *fakeSender) SendMessage(_ context.Context, receiveIDType, receiveID, msgType, content string) (string, error) {
	f.calls++
	f.idType, f.id, f.msgType, f.content = receiveIDType, receiveID, msgType, content
	if f.err != nil {
		return "", f.err
	}
	return "om_123", nil
}

func reports() []*models.BatchReport {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return []*models.BatchReport{
		{Class: models.ClassTaxForm, Requested: 5, Succeeded: 4, Failed: 1, StartedAt: start, FinishedAt: start.Add(2 * time.Second)},
		{Class: models.ClassPayStatement, Requested: 2, Succeeded: 2, StartedAt: start, FinishedAt: start.Add(time.Second)},
	}
}

func TestSummarize(t *testing.T) {
	text := Summarize("job-1", reports())

	assert.Contains(t, text, "job-1")
	assert.Contains(t, text, "- tax-form: 4/5 generated, 1 failed in 2.0s")
	assert.Contains(t, text, "- pay-statement: 2/2 generated in 1.0s")
	assert.Contains(t, text, "Total: 6 generated, 1 failed")
}

func TestBatchNotifier_NotifyJob(t *testing.T) {
	t.Run("sends text message to configured chat", func(t *testing.T) {
		sender := &fakeSender{}
		n := NewBatchNotifier(sender, Config{Enabled: true, ReceiveID: "oc_abc"}, zap.NewNop())

		require.NoError(t, n.NotifyJob(context.Background(), "job-1", reports()))

		assert.Equal(t, 1, sender.calls)
		assert.Equal(t, "chat_id", sender.idType)
		assert.Equal(t, "oc_abc", sender.id)
		assert.Equal(t, "text", sender.msgType)

		var body map[string]string
		require.NoError(t, json.Unmarshal([]byte(sender.content), &body))
		assert.Contains(t, body["text"], "Total: 6 generated")
	})

	t.Run("disabled notifier is a no-op", func(t *testing.T) {
		sender := &fakeSender{}
		n := NewBatchNotifier(sender, Config{Enabled: false, ReceiveID: "oc_abc"}, zap.NewNop())

		require.NoError(t, n.NotifyJob(context.Background(), "job-1", reports()))
		assert.Equal(t, 0, sender.calls)
	})

	t.Run("nil notifier is a no-op", func(t *testing.T) {
		var n *BatchNotifier
		assert.NoError(t, n.NotifyJob(context.Background(), "job-1", reports()))
	})

	t.Run("sender error is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		n := NewBatchNotifier(&fakeSender{err: boom}, Config{Enabled: true, ReceiveID: "oc_abc"}, zap.NewNop())

		err := n.NotifyJob(context.Background(), "job-1", reports())
		assert.ErrorIs(t, err, boom)
	})
}
