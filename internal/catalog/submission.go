package catalog

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/shopspring/decimal"
)

// ErrEmptyImage is returned when an upload carries no bytes
var ErrEmptyImage = errors.New("image data is empty")

// Submitted prices are below 10^maxPriceDigits with at most maxPriceScale
// decimal places
const (
	maxPriceScale  = 8
	maxPriceDigits = 9
)

var maxPrice = decimal.New(1, maxPriceDigits)

// octetStream is used when the detected media type cannot be parsed
const octetStream = "application/octet-stream"

// FieldIssue describes one rejected submission field
type FieldIssue struct {
	Field string
	Issue string
}

// ValidationError lists every field that blocked a submission
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Issue)
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}

// Submission is the seller form as entered by the user
type Submission struct {
	Title       string `json:"title"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Validate checks the submission and returns the new item without an id.
// A *ValidationError is returned when any field is missing or out of range.
func (s Submission) Validate() (Item, error) {
	var issues []FieldIssue

	title := strings.TrimSpace(s.Title)
	if title == "" {
		issues = append(issues, FieldIssue{Field: "title", Issue: "is required"})
	}

	price, issue := parsePrice(s.Price)
	if issue != "" {
		issues = append(issues, FieldIssue{Field: "price", Issue: issue})
	}

	category := DefaultCategory
	if strings.TrimSpace(s.Category) != "" {
		parsed, err := ParseCategory(s.Category)
		if err != nil {
			issues = append(issues, FieldIssue{Field: "category", Issue: "is not a known category"})
		} else {
			category = parsed
		}
	}

	if strings.TrimSpace(s.Image) == "" {
		issues = append(issues, FieldIssue{Field: "image", Issue: "is required"})
	}

	if len(issues) > 0 {
		return Item{}, &ValidationError{Issues: issues}
	}

	return Item{
		Title:       title,
		Price:       price,
		Description: s.Description,
		Category:    category,
		Image:       s.Image,
		Rating:      Rating{Rate: 0, Count: 0},
	}, nil
}

// Build validates the submission and returns the new item with the given id
func (s Submission) Build(id int64) (Item, error) {
	item, err := s.Validate()
	if err != nil {
		return Item{}, err
	}
	item.ID = id
	return item, nil
}

// parsePrice returns the price or the issue that rejects it. The exponent
// is checked before any comparison so "1e400000" is never expanded.
func parsePrice(raw string) (decimal.Decimal, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, "is required"
	}

	price, err := decimal.NewFromString(raw)
	switch {
	case err != nil:
		return decimal.Zero, "must be a number"
	case price.IsNegative():
		return decimal.Zero, "cannot be negative"
	case price.IsZero():
		return decimal.Zero, ""
	case price.Exponent() < -maxPriceScale:
		return decimal.Zero, fmt.Sprintf("cannot have more than %d decimal places", maxPriceScale)
	case price.Exponent() >= maxPriceDigits || price.GreaterThanOrEqual(maxPrice):
		return decimal.Zero, "must be less than " + maxPrice.String()
	}
	return price, ""
}

// EncodeImage turns uploaded bytes into an inline data URI
func EncodeImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	mediaType, _, err := mime.ParseMediaType(mimetype.Detect(data).String())
	if err != nil {
		mediaType = octetStream
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// IDSource hands out item ids from the wall clock, strictly increasing
// within a session even when two submissions land in the same millisecond.
type IDSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDSource creates a generator that never returns an id <= floor
func NewIDSource(floor int64) *IDSource {
	return &IDSource{last: floor, now: time.Now}
}

// Next returns the next id
func (g *IDSource) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
