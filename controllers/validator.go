package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/horizonstores/backend/services"
)

const dateOnlyLayout = "2006-01-02"

// RequestValidator handles input validation for the admin surfaces.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
	}
}

// ValidateProductCreate checks the structural rules on a product payload.
func (rv *RequestValidator) ValidateProductCreate(req *services.ProductCreateRequest) error {
	if err := rv.validate.Struct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// ParseDateRange reads start/end query parameters for reporting. Values are
// either RFC3339 timestamps or bare dates; a bare end date extends to the
// last instant of that day so the interval stays inclusive.
func (rv *RequestValidator) ParseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, errors.New("start and end query parameters are required")
	}

	start, _, err := parseDateParam(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, bareDate, err := parseDateParam(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", err)
	}
	if bareDate {
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	return start, end, nil
}

func parseDateParam(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
