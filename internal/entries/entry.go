package entries

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"income-tax-tracker/internal/calculator"
	"income-tax-tracker/internal/models"
)

var ErrInvalidEntry = errors.New("invalid entry")

var validate = validator.New()

// IDGenerator hands out millisecond timestamps, bumped past the previous id
// so two entries created in the same millisecond still get distinct ids.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// NewEntry builds a validated entry. Any failure wraps ErrInvalidEntry.
func NewEntry(id int64, category models.Category, description string, amount float64, createdAt time.Time) (models.Entry, error) {
	e := models.Entry{
		ID:          id,
		Category:    category,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		CreatedAt:   createdAt,
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return models.Entry{}, fmt.Errorf("%w: amount is not a finite number", ErrInvalidEntry)
	}
	if err := validate.Struct(e); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return models.Entry{}, fmt.Errorf("%w: %s failed on %s", ErrInvalidEntry,
				strings.ToLower(validationErrors[0].Field()), validationErrors[0].Tag())
		}
		return models.Entry{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	return e, nil
}

// ParseEntry is NewEntry for raw form input; the amount goes through calculator.Evaluate.
func ParseEntry(id int64, category, description, amount string, createdAt time.Time) (models.Entry, error) {
	if strings.TrimSpace(description) == "" || strings.TrimSpace(amount) == "" {
		return models.Entry{}, fmt.Errorf("%w: description and amount are required", ErrInvalidEntry)
	}
	value, err := calculator.Evaluate(amount)
	if err != nil {
		return models.Entry{}, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	return NewEntry(id, models.Category(category), description, value, createdAt)
}
