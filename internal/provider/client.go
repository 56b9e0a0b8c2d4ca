// Package provider is the player's view of the vocabulary server: it lists
// records, checks and downloads cue audio, persists learned marks and looks
// up translations over the JSON API.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mrlokans/wortschatz/internal/entities"
	"github.com/mrlokans/wortschatz/internal/translation"
)

// ErrUnavailable is returned when the vocabulary cannot be loaded.
var ErrUnavailable = errors.New("vocabulary service unavailable")

// maxAudioSize caps a single cue download.
const maxAudioSize = 32 << 20

// StatusError is a non-success reply from the server.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

// Client talks to the vocabulary HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client for the server at baseURL, e.g. "http://localhost:8000".
func NewClient(baseURL string) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{
		Timeout: 30 * time.Second,
	})
}

// NewClientWithHTTP creates a client using the given http.Client.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListVocabulary returns the complete records in sheet order.
func (c *Client) ListVocabulary(ctx context.Context) ([]entities.VocabularyRecord, error) {
	var records []entities.VocabularyRecord
	if err := c.getJSON(ctx, "/api/vocabulary", "list vocabulary", &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return records, nil
}

// ListExcluded returns the indexes marked as learned.
func (c *Client) ListExcluded(ctx context.Context) ([]int, error) {
	var response struct {
		Excluded []int `json:"excluded"`
	}
	if err := c.getJSON(ctx, "/api/excluded", "list excluded", &response); err != nil {
		return nil, err
	}
	return response.Excluded, nil
}

// AudioExists checks a cue with a HEAD request. A 404 means absent and is
// not an error.
func (c *Client) AudioExists(ctx context.Context, index int, cue entities.CueType) (bool, error) {
	resp, err := c.do(ctx, http.MethodHead, audioPath(index, cue), nil)
	if err != nil {
		return false, fmt.Errorf("check audio %d/%s: %w", index, cue, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, &StatusError{Op: fmt.Sprintf("check audio %d/%s", index, cue), StatusCode: resp.StatusCode}
	}
}

// FetchAudio downloads the encoded clip of a cue.
func (c *Client) FetchAudio(ctx context.Context, index int, cue entities.CueType) ([]byte, error) {
	op := fmt.Sprintf("fetch audio %d/%s", index, cue)

	resp, err := c.do(ctx, http.MethodGet, audioPath(index, cue), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(op, resp)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioSize))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: empty body", op)
	}
	return data, nil
}

// AddExcluded marks a record as learned.
func (c *Client) AddExcluded(ctx context.Context, index int) error {
	return c.mutateExcluded(ctx, http.MethodPost, index)
}

// RemoveExcluded clears the learned mark of a record.
func (c *Client) RemoveExcluded(ctx context.Context, index int) error {
	return c.mutateExcluded(ctx, http.MethodDelete, index)
}

func (c *Client) mutateExcluded(ctx context.Context, method string, index int) error {
	op := fmt.Sprintf("%s excluded %d", strings.ToLower(method), index)

	resp, err := c.do(ctx, method, fmt.Sprintf("/api/excluded/%d", index), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusError(op, resp)
	}
	return nil
}

// Translate looks up an English word on the server. Failures wrap the
// translation sentinels so translation.Classify can categorize them.
func (c *Client) Translate(ctx context.Context, englishWord string) (*entities.Translation, error) {
	word := strings.TrimSpace(englishWord)
	if word == "" {
		return nil, translation.ErrEmptyWord
	}

	body, err := json.Marshal(map[string]string{"english_word": word})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/api/translate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("translate %q: %w", word, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %w", translation.ErrEmptyWord, statusError("translate", resp))
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %w", translation.ErrNotFound, statusError("translate", resp))
	default:
		return nil, fmt.Errorf("%w: %w", translation.ErrUpstream, statusError("translate", resp))
	}

	var result entities.Translation
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", translation.ErrUpstream, err)
	}
	if result.EnglishWord == "" {
		result.EnglishWord = word
	}
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, path, op string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(op, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpClient.Do(req)
}

func audioPath(index int, cue entities.CueType) string {
	return fmt.Sprintf("/api/audio/%d/%s", index, url.PathEscape(string(cue)))
}

// statusError reads the {"error": ...} body of a failed reply.
func statusError(op string, resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(data, &payload) != nil {
		payload.Error = strings.TrimSpace(string(data))
	}
	return &StatusError{Op: op, StatusCode: resp.StatusCode, Message: payload.Error}
}
