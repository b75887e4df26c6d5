package wordsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultEndpoint is the Wordnik random words endpoint.
const DefaultEndpoint = "https://api.wordnik.com/v4/words.json/randomWords"

// Filter narrows the dictionary words a remote source asks for.
type Filter struct {
	MinCorpusCount int
	MinLength      int
	MaxLength      int
}

// Remote requests words from a dictionary HTTP service.
type Remote struct {
	Client   *http.Client
	Endpoint string
	APIKey   string
	Filter   Filter
}

type remoteWord struct {
	Word string `json:"word"`
}

// Words implements Source.
func (r *Remote) Words(ctx context.Context, count int) ([]string, error) {
	if strings.TrimSpace(r.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	reqURL, err := r.requestURL(count)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build dictionary request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictionary request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected dictionary status: %s", resp.Status)
	}

	var payload []remoteWord
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary response: %w", err)
	}
	if len(payload) < count {
		return nil, fmt.Errorf("got %d of %d words: %w", len(payload), count, ErrShortBatch)
	}
	words := make([]string, 0, count)
	for _, item := range payload[:count] {
		word := strings.ToLower(strings.TrimSpace(item.Word))
		if word == "" || strings.ContainsAny(word, " \t\n") {
			return nil, fmt.Errorf("malformed dictionary word %q", item.Word)
		}
		words = append(words, word)
	}
	return words, nil
}

func (r *Remote) requestURL(count int) (string, error) {
	endpoint := r.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid dictionary endpoint: %w", err)
	}
	q := u.Query()
	q.Set("hasDictionaryDef", "true")
	q.Set("minCorpusCount", strconv.Itoa(r.Filter.MinCorpusCount))
	q.Set("minLength", strconv.Itoa(r.Filter.MinLength))
	q.Set("maxLength", strconv.Itoa(r.Filter.MaxLength))
	q.Set("limit", strconv.Itoa(count))
	q.Set("api_key", r.APIKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
