package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

var ErrNoCompletion = errors.New("no response from OpenAI")

// ChatClient is the part of the OpenAI client the builder needs
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Builder asks a chat model for fresh paragraphs to extend the corpus
type Builder struct {
	client ChatClient
	model  string
	temp   float32
	logger *zap.Logger
}

// NewBuilder creates a corpus builder backed by the OpenAI API
func NewBuilder(apiKey, model string, temperature float32, logger *zap.Logger) *Builder {
	return NewBuilderWithClient(openai.NewClient(apiKey), model, temperature, logger)
}

// NewBuilderWithClient creates a builder around an existing chat client
func NewBuilderWithClient(client ChatClient, model string, temperature float32, logger *zap.Logger) *Builder {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Builder{
		client: client,
		model:  model,
		temp:   temperature,
		logger: logger,
	}
}

var topicBriefs = map[Topic]string{
	TopicLetter:  "the body of a formal business or personal letter",
	TopicBook:    "a page of literary fiction in the past tense",
	TopicMedical: "a doctor's note or brief clinical visit summary without real patient data",
	TopicGeneric: "a public notice, bulletin or informational flyer",
}

// Build requests perTopic paragraphs for every topic and returns them as a corpus
func (b *Builder) Build(ctx context.Context, perTopic int) (*Corpus, error) {
	out := &Corpus{Paragraphs: make(map[Topic][]string, len(Topics))}

	for _, topic := range Topics {
		paras, err := b.Generate(ctx, topic, perTopic)
		if err != nil {
			return nil, fmt.Errorf("failed to build topic %s: %w", topic, err)
		}
		out.Paragraphs[topic] = paras
	}
	return out, nil
}

// Generate requests count paragraphs for one topic
func (b *Builder) Generate(ctx context.Context, topic Topic, count int) ([]string, error) {
	brief, ok := topicBriefs[topic]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}

	b.logger.Debug("Requesting corpus paragraphs",
		zap.String("topic", string(topic)),
		zap.Int("count", count),
		zap.String("model", b.model))

	req := openai.ChatCompletionRequest{
		Model:       b.model,
		Temperature: b.temp,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You write short, realistic filler text for synthetic document images. Never include real names, addresses or identifiers. Always respond with a JSON array of strings.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Write %d distinct paragraphs of 40 to 80 words, each suitable as %s. Respond with ONLY a JSON array of strings.", count, brief),
			},
		},
	}

	resp, err := b.client.CreateChatCompletion(ctx, req)
	if err != nil {
		b.logger.Error("OpenAI API call failed", zap.Error(err))
		return nil, fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoCompletion
	}

	paras, err := parseParagraphs(resp.Choices[0].Message.Content)
	if err != nil {
		b.logger.Warn("Failed to parse corpus response",
			zap.String("topic", string(topic)),
			zap.Error(err))
		return nil, err
	}

	b.logger.Info("Corpus paragraphs generated",
		zap.String("topic", string(topic)),
		zap.Int("count", len(paras)))
	return paras, nil
}

// parseParagraphs accepts a bare JSON array or one wrapped in a markdown fence
func parseParagraphs(content string) ([]string, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON array in response", ErrInvalidCorpus)
	}

	var raw []string
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCorpus, err)
	}

	var out []string
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty paragraph list", ErrInvalidCorpus)
	}
	return out, nil
}
