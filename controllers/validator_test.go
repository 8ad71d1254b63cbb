package controllers_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonstores/backend/controllers"
	"github.com/horizonstores/backend/services"
)

func rangeContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/admin/reports/orders?"+query, nil)
	return c
}

func TestParseDateRange_RFC3339(t *testing.T) {
	rv := controllers.NewRequestValidator()

	c := rangeContext(t, "start=2025-03-01T00:00:00Z&end=2025-03-02T12:30:00Z")
	start, end, err := rv.ParseDateRange(c)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 2, 12, 30, 0, 0, time.UTC), end)
}

func TestParseDateRange_BareEndDateCoversWholeDay(t *testing.T) {
	rv := controllers.NewRequestValidator()

	c := rangeContext(t, "start=2025-03-01&end=2025-03-02")
	start, end, err := rv.ParseDateRange(c)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), start)

	// An order placed at 23:59 on the end date belongs to the report.
	lastMoment := time.Date(2025, 3, 2, 23, 59, 59, 0, time.UTC)
	assert.False(t, end.Before(lastMoment))
	assert.True(t, end.Before(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)))
}

func TestParseDateRange_Errors(t *testing.T) {
	rv := controllers.NewRequestValidator()

	for name, query := range map[string]string{
		"missing both":  "",
		"missing end":   "start=2025-03-01",
		"garbage start": "start=yesterday&end=2025-03-02",
		"garbage end":   "start=2025-03-01&end=soon",
	} {
		c := rangeContext(t, query)
		_, _, err := rv.ParseDateRange(c)
		assert.Error(t, err, name)
	}
}

func TestValidateProductCreate(t *testing.T) {
	rv := controllers.NewRequestValidator()

	valid := services.ProductCreateRequest{Name: "Mug", MRP: 500, Price: 400}
	assert.NoError(t, rv.ValidateProductCreate(&valid))

	invalid := services.ProductCreateRequest{MRP: 500, Price: 400}
	assert.Error(t, rv.ValidateProductCreate(&invalid))
}
