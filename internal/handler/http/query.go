package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/validator"
)

// queryParams reads optional query parameters and collects every
// malformed number, so a handler reports them together.
type queryParams struct {
	r    *http.Request
	errs validator.ValidationErrors
}

func newQueryParams(r *http.Request) *queryParams {
	return &queryParams{r: r}
}

// String returns nil when key is absent.
func (q *queryParams) String(key string) *string {
	values, ok := q.r.URL.Query()[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

// Int returns nil when key is absent or empty.
func (q *queryParams) Int(key string) *int {
	s := q.String(key)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil {
		q.errs = append(q.errs, validator.ValidationError{
			Field:   key,
			Message: key + " must be a number",
		})
		return nil
	}
	return &n
}

// PageSize is Int that also accepts "all", meaning every row on one page.
func (q *queryParams) PageSize(key string) *int {
	s := q.String(key)
	if s != nil && strings.EqualFold(strings.TrimSpace(*s), "all") {
		all := 0
		return &all
	}
	return q.Int(key)
}

func (q *queryParams) Err() error {
	if len(q.errs) > 0 {
		return q.errs
	}
	return nil
}
