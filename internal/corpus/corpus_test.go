package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	for _, topic := range Topics {
		paras, err := c.Topic(topic)
		require.NoError(t, err)
		assert.NotEmpty(t, paras)
	}

	t.Run("returns independent copies", func(t *testing.T) {
		a := Default()
		a.Paragraphs[TopicLetter][0] = "changed"
		assert.NotEqual(t, "changed", Default().Paragraphs[TopicLetter][0])
	})
}

func TestLoad(t *testing.T) {
	t.Run("empty path is the built-in corpus", func(t *testing.T) {
		c, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, len(bookParagraphs), c.Stats()[TopicBook])
	})

	t.Run("merges a file over the built-in corpus", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corpus.json")
		content := `{"paragraphs":{"book":["A new page.",""]},"diagnoses":["Sinusitis"]}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, len(bookParagraphs)+1, c.Stats()[TopicBook])
		assert.Contains(t, c.Diagnoses, "Sinusitis")
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corpus.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		_, err := Load(path)
		assert.True(t, errors.Is(err, ErrInvalidCorpus))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("save then load round trip keeps counts", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		extra := &Corpus{Paragraphs: map[Topic][]string{TopicMedical: {"Rest advised."}}}
		require.NoError(t, extra.Save(path))

		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, len(medicalParagraphs)+1, c.Stats()[TopicMedical])
	})
}

func TestCorpus_Topic(t *testing.T) {
	c := &Corpus{Paragraphs: map[Topic][]string{TopicBook: {}}}

	_, err := c.Topic("poetry")
	assert.ErrorIs(t, err, ErrUnknownTopic)

	_, err = c.Topic(TopicBook)
	assert.ErrorIs(t, err, ErrEmptyTopic)
}

type fakeChat struct {
	content string
	err     error
	calls   int
}

func (f *fakeChat) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.content}},
		},
	}, nil
}

func TestBuilder(t *testing.T) {
	logger := zap.NewNop()

	t.Run("parses fenced json arrays", func(t *testing.T) {
		chat := &fakeChat{content: "```json\n[\"First paragraph.\", \"  \", \"Second paragraph.\"]\n```"}
		b := NewBuilderWithClient(chat, "", 0.7, logger)

		paras, err := b.Generate(context.Background(), TopicLetter, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"First paragraph.", "Second paragraph."}, paras)
	})

	t.Run("build covers every topic", func(t *testing.T) {
		chat := &fakeChat{content: `["One."]`}
		b := NewBuilderWithClient(chat, "gpt-4o-mini", 0.7, logger)

		c, err := b.Build(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, len(Topics), chat.calls)
		for _, topic := range Topics {
			assert.Equal(t, []string{"One."}, c.Paragraphs[topic])
		}
	})

	t.Run("api errors propagate", func(t *testing.T) {
		chat := &fakeChat{err: errors.New("rate limited")}
		b := NewBuilderWithClient(chat, "", 0.7, logger)

		_, err := b.Generate(context.Background(), TopicBook, 1)
		assert.ErrorContains(t, err, "rate limited")
	})

	t.Run("non-array response is rejected", func(t *testing.T) {
		chat := &fakeChat{content: "Sorry, I cannot help with that."}
		b := NewBuilderWithClient(chat, "", 0.7, logger)

		_, err := b.Generate(context.Background(), TopicBook, 1)
		assert.ErrorIs(t, err, ErrInvalidCorpus)
	})

	t.Run("unknown topic", func(t *testing.T) {
		b := NewBuilderWithClient(&fakeChat{}, "", 0.7, logger)

		_, err := b.Generate(context.Background(), "poetry", 1)
		assert.ErrorIs(t, err, ErrUnknownTopic)
	})
}
