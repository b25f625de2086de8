// Package isbndb is a client for the ISBNdb REST API.
package isbndb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api2.isbndb.com"

// ErrIncompleteRecord wraps responses missing a required field.
var ErrIncompleteRecord = errors.New("incomplete book record")

// Record is a complete bibliographic record for one ISBN.
type Record struct {
	Publisher     string
	Language      string
	ImageURL      string
	TitleLong     string
	Edition       string
	Dimensions    string
	Pages         int
	DatePublished string
	Authors       []string
	Title         string
	ISBN13        string
	MSRP          float64
	Binding       string
	ISBN          string
	ISBN10        string
	Subjects      []string
	Synopsis      string
}

// wireBook mirrors the response body. Required fields are pointers so
// absence can be told apart from a zero value.
type wireBook struct {
	Publisher     *string  `json:"publisher" validate:"required"`
	Language      *string  `json:"language" validate:"required"`
	Image         *string  `json:"image" validate:"required"`
	TitleLong     *string  `json:"title_long" validate:"required"`
	Edition       *string  `json:"edition" validate:"required"`
	Dimensions    *string  `json:"dimensions" validate:"required"`
	Pages         *int     `json:"pages" validate:"required"`
	DatePublished *string  `json:"date_published" validate:"required"`
	Authors       []string `json:"authors" validate:"required,min=1"`
	Title         *string  `json:"title" validate:"required"`
	ISBN13        *string  `json:"isbn13" validate:"required"`
	MSRP          *float64 `json:"msrp" validate:"required"`
	Binding       *string  `json:"binding" validate:"required"`
	ISBN          *string  `json:"isbn" validate:"required"`
	ISBN10        *string  `json:"isbn10" validate:"required"`
	Subjects      []string `json:"subjects"`
	Synopsis      string   `json:"synopsis"`
}

type wireResponse struct {
	Book *wireBook `json:"book" validate:"required"`
}

// Client talks to the ISBNdb API. Requests are throttled to the API's
// one-request-per-second allowance and retried on 429 and 5xx.
type Client struct {
	httpClient *http.Client
	baseURL    string
	key        string
	limiter    *rate.Limiter
	maxRetries int
	validate   *validator.Validate
}

func NewClient(baseURL, key string) *Client {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:    baseURL,
		key:        key,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		maxRetries: 3,
		validate:   v,
	}
}

// GetBookByISBN fetches the bibliographic record for one ISBN. A
// response missing any required field is an error, not a default.
func (c *Client) GetBookByISBN(ctx context.Context, isbn string) (Record, error) {
	u := fmt.Sprintf("%s/book/%s", c.baseURL, url.PathEscape(isbn))

	var res wireResponse
	if err := c.get(ctx, u, &res); err != nil {
		return Record{}, err
	}

	if err := c.validate.Struct(res); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Record{}, fmt.Errorf("%w for ISBN %s: missing %s", ErrIncompleteRecord, isbn, verrs[0].Field())
		}
		return Record{}, err
	}

	b := res.Book
	return Record{
		Publisher:     *b.Publisher,
		Language:      *b.Language,
		ImageURL:      *b.Image,
		TitleLong:     *b.TitleLong,
		Edition:       *b.Edition,
		Dimensions:    *b.Dimensions,
		Pages:         *b.Pages,
		DatePublished: *b.DatePublished,
		Authors:       b.Authors,
		Title:         *b.Title,
		ISBN13:        *b.ISBN13,
		MSRP:          *b.MSRP,
		Binding:       *b.Binding,
		ISBN:          *b.ISBN,
		ISBN10:        *b.ISBN10,
		Subjects:      b.Subjects,
		Synopsis:      b.Synopsis,
	}, nil
}

func (c *Client) get(ctx context.Context, url string, target any) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("Authorization", c.key)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
				continue
			}
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		err = json.NewDecoder(resp.Body).Decode(target)
		_ = resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}
