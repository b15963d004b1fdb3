package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/scythe504/partyroom-backend/internal"
	"github.com/scythe504/partyroom-backend/internal/random"
)

// Provider is the remote question bank.
type Provider interface {
	Fetch(ctx context.Context, category int, count int) ([]internal.Question, error)
}

// ProviderError reports a failed fetch for one category.
type ProviderError struct {
	Category int
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("fetching trivia category %d: %v", e.Category, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Categories are the Open Trivia DB categories offered to hosts.
var Categories = []internal.Category{
	{Id: "9", Name: "General Knowledge"},
	{Id: "10", Name: "Books"},
	{Id: "11", Name: "Film"},
	{Id: "12", Name: "Music"},
	{Id: "15", Name: "Video Games"},
	{Id: "17", Name: "Science & Nature"},
	{Id: "18", Name: "Computers"},
	{Id: "21", Name: "Sports"},
	{Id: "22", Name: "Geography"},
	{Id: "23", Name: "History"},
}

const DefaultOpenTDBURL = "https://opentdb.com"

// OpenTDB fetches multiple-choice questions from an Open Trivia DB compatible API.
type OpenTDB struct {
	baseURL string
	client  *http.Client
	rnd     random.Source
}

func NewOpenTDB(baseURL string, timeout time.Duration, rnd random.Source) *OpenTDB {
	if baseURL == "" {
		baseURL = DefaultOpenTDBURL
	}
	return &OpenTDB{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		rnd:     rnd,
	}
}

type openTDBResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

func (o *OpenTDB) Fetch(ctx context.Context, category int, count int) ([]internal.Question, error) {
	q := url.Values{}
	q.Set("amount", strconv.Itoa(count))
	q.Set("category", strconv.Itoa(category))
	q.Set("type", "multiple")
	q.Set("encode", "url3986")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api.php?"+q.Encode(), nil)
	if err != nil {
		return nil, &ProviderError{Category: category, Err: err}
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Category: category, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &ProviderError{Category: category, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var body openTDBResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &ProviderError{Category: category, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if body.ResponseCode != 0 {
		return nil, &ProviderError{Category: category, Err: fmt.Errorf("response code %d", body.ResponseCode)}
	}

	questions := make([]internal.Question, 0, len(body.Results))
	for _, r := range body.Results {
		text, err := url.PathUnescape(r.Question)
		if err != nil {
			continue
		}
		correct, err := url.PathUnescape(r.CorrectAnswer)
		if err != nil {
			continue
		}
		options := make([]string, 0, len(r.IncorrectAnswers)+1)
		for _, a := range r.IncorrectAnswers {
			if dec, err := url.PathUnescape(a); err == nil {
				options = append(options, dec)
			}
		}
		options = append(options, correct)
		if len(options) < 2 {
			continue
		}
		random.Shuffle(o.rnd, options)

		correctIndex := 0
		for i, opt := range options {
			if opt == correct {
				correctIndex = i
				break
			}
		}
		questions = append(questions, internal.Question{
			Text:         text,
			Options:      options,
			CorrectIndex: correctIndex,
		})
	}
	return questions, nil
}
