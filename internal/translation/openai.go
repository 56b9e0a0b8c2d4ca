package translation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/mrlokans/wortschatz/internal/entities"
)

const DefaultOpenAIModel = openai.GPT4oMini

const openAISystemPrompt = `You translate English vocabulary for German learners.
Reply with a JSON object with the keys "german_word", "english_sentence" and "german_sentence".
"german_word" is the German translation; include the article for nouns (der, die, das).
"english_sentence" is a short everyday sentence using the English word and "german_sentence" is its German translation.
If the input is not an English word you can translate, reply with {"german_word": ""}.`

// OpenAIClient implements Client using the OpenAI chat completions API.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	timeout     time.Duration
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		select {
		case <-time.After(r.interval - since):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.lastCall = time.Now()
	return nil
}

// NewOpenAIClient creates a translator backed by the given API key.
// An empty model selects DefaultOpenAIModel.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return newOpenAIClient(openai.DefaultConfig(apiKey), model)
}

func newOpenAIClient(cfg openai.ClientConfig, model string) *OpenAIClient {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIClient{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		timeout:     30 * time.Second,
		rateLimiter: newRateLimiter(200 * time.Millisecond),
	}
}

func (c *OpenAIClient) Name() string {
	return "openai"
}

// Translate asks the model for the German word and a pair of example sentences.
func (c *OpenAIClient) Translate(ctx context.Context, englishWord string) (*entities.Translation, error) {
	word := Normalize(englishWord)
	if word == "" {
		return nil, ErrEmptyWord
	}

	if err := c.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openAISystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: word},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
		MaxTokens:   200,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: openai status %d: %s", ErrUpstream, apiErr.HTTPStatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("translate %q: %w", word, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty response from openai", ErrUpstream)
	}

	return parseOpenAIReply(word, resp.Choices[0].Message.Content)
}

type openAIReply struct {
	GermanWord      string `json:"german_word"`
	EnglishSentence string `json:"english_sentence"`
	GermanSentence  string `json:"german_sentence"`
}

func parseOpenAIReply(word, content string) (*entities.Translation, error) {
	var reply openAIReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return nil, fmt.Errorf("%w: decode reply: %v", ErrUpstream, err)
	}

	german := strings.TrimSpace(reply.GermanWord)
	if german == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, word)
	}

	return &entities.Translation{
		EnglishWord:     word,
		GermanWord:      german,
		EnglishSentence: strings.TrimSpace(reply.EnglishSentence),
		GermanSentence:  strings.TrimSpace(reply.GermanSentence),
	}, nil
}
