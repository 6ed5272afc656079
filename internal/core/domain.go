package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar date carried as YYYY-MM-DD.
	Date struct {
		time.Time
	}

	// Expense is one recorded spending event. ID is assigned by storage
	// and immutable afterwards; rows are only ever inserted or deleted.
	Expense struct {
		ID       int64
		Date     Date
		Category string
		Amount   float64
		Note     string
		Payment  string
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return Date{Time: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ISO returns the date formatted as YYYY-MM-DD.
func (d Date) ISO() string {
	return d.Format(dateLayout)
}

// YearMonth returns the date formatted as YYYY-MM.
func (d Date) YearMonth() string {
	return d.Format("2006-01")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Validate checks the insert-time invariants: a well-formed date, a
// non-empty category, and a strictly positive amount. Note and payment
// method are optional free text.
func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
