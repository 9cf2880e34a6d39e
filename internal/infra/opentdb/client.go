// Package opentdb fetches questions from the Open Trivia Database HTTP API.
package opentdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"trivia-duel/internal/domain"
)

// DefaultBaseURL is the public Open Trivia DB endpoint.
const DefaultBaseURL = "https://opentdb.com/api.php"

// MaxAmount is the largest batch the API serves per request.
const MaxAmount = 50

var (
	ErrNoResults        = errors.New("opentdb: not enough questions for the query")
	ErrInvalidParameter = errors.New("opentdb: invalid parameter")
	ErrToken            = errors.New("opentdb: session token not found or exhausted")
	ErrRateLimited      = errors.New("opentdb: rate limited")
)

type response struct {
	ResponseCode int                  `json:"response_code"`
	Results      []domain.RawQuestion `json:"results"`
}

// Client is a question source backed by the Open Trivia DB.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  log.Default(),
	}
}

// Fetch requests req.Amount questions. Category must be the numeric Open Trivia
// DB category id; other values are ignored.
func (c *Client) Fetch(ctx context.Context, req domain.FetchRequest) ([]domain.RawQuestion, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	amount := req.Amount
	if amount > MaxAmount {
		c.logger.Printf("opentdb serves at most %d questions per request, asked for %d", MaxAmount, amount)
		amount = MaxAmount
	}
	q := u.Query()
	q.Set("amount", strconv.Itoa(amount))
	if req.Category != "" {
		if _, err := strconv.Atoi(req.Category); err == nil {
			q.Set("category", req.Category)
		} else {
			c.logger.Printf("ignoring non-numeric opentdb category %q", req.Category)
		}
	}
	if req.Difficulty != "" {
		q.Set("difficulty", string(req.Difficulty))
	}
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request questions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("opentdb: HTTP %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	switch body.ResponseCode {
	case 0:
		return body.Results, nil
	case 1:
		return nil, ErrNoResults
	case 2:
		return nil, ErrInvalidParameter
	case 3, 4:
		return nil, ErrToken
	case 5:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("opentdb: unexpected response code %d", body.ResponseCode)
	}
}
