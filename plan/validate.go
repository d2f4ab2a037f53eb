package plan

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var dayDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidationError reports a malformed inbound request or a plan that breaks
// the itinerary invariants. It maps to an HTTP 400 payload.
type ValidationError struct {
	Title  string   `json:"title"`
	Errors []string `json:"errors"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, strings.Join(e.Errors, "; "))
}

// Validate checks the request fields the pipelines rely on: a destination of
// at least two runes and date strings of at least ten characters whose first
// ten characters parse as a calendar date.
func (r TripRequest) Validate() error {
	var errs []string
	if len([]rune(strings.TrimSpace(r.Location))) < 2 {
		errs = append(errs, "location must be at least 2 characters")
	}
	for _, field := range []struct{ name, value string }{
		{"startDate", r.StartDate},
		{"endDate", r.EndDate},
	} {
		name, value := field.name, field.value
		if len(value) < 10 {
			errs = append(errs, name+" must be a date string of at least 10 characters")
			continue
		}
		if _, err := time.Parse(dateLayout, value[:10]); err != nil {
			errs = append(errs, name+" is not a valid YYYY-MM-DD date")
		}
	}
	if len(errs) == 0 {
		start, end, err := r.DateRange()
		if err == nil && end.Before(start) {
			errs = append(errs, "endDate must not be before startDate")
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Title: "invalid travel plan request", Errors: errs}
	}
	return nil
}

// DateRange parses the request's start and end dates.
func (r TripRequest) DateRange() (start, end time.Time, err error) {
	if len(r.StartDate) < 10 || len(r.EndDate) < 10 {
		return start, end, fmt.Errorf("date strings too short: %q, %q", r.StartDate, r.EndDate)
	}
	start, err = time.Parse(dateLayout, r.StartDate[:10])
	if err != nil {
		return start, end, fmt.Errorf("parse start date: %w", err)
	}
	end, err = time.Parse(dateLayout, r.EndDate[:10])
	if err != nil {
		return start, end, fmt.Errorf("parse end date: %w", err)
	}
	return start, end, nil
}

// Validate checks the update request carries the fields the revision
// pipeline needs.
func (r UpdateRequest) Validate() error {
	var errs []string
	if strings.TrimSpace(r.PlanID) == "" {
		errs = append(errs, "planId is required")
	}
	if strings.TrimSpace(r.Feedback) == "" {
		errs = append(errs, "feedback is required")
	}
	if err := r.TravelRequest.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			errs = append(errs, verr.Errors...)
		} else {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Title: "invalid plan update request", Errors: errs}
	}
	return nil
}

// Validate checks the itinerary invariants against the originating request:
// a non-empty title, at least one day, every day's date a well-formed
// calendar date inside the request range, and well-formed reference URLs.
func (p *TravelPlan) Validate(req TripRequest) error {
	var errs []string
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, "plan title is empty")
	}
	if len(p.Days) == 0 {
		errs = append(errs, "plan has no days")
	}
	start, end, rangeErr := req.DateRange()
	for i, day := range p.Days {
		if !dayDatePattern.MatchString(day.Date) {
			errs = append(errs, fmt.Sprintf("days[%d].date %q is not YYYY-MM-DD", i, day.Date))
			continue
		}
		d, err := time.Parse(dateLayout, day.Date)
		if err != nil {
			errs = append(errs, fmt.Sprintf("days[%d].date %q is not a valid calendar date", i, day.Date))
			continue
		}
		if rangeErr == nil && (d.Before(start) || d.After(end)) {
			errs = append(errs, fmt.Sprintf("days[%d].date %q is outside the requested range", i, day.Date))
		}
	}
	for i, ref := range p.References {
		u, err := url.Parse(ref.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("references[%d].url %q is not a well-formed URL", i, ref.URL))
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Title: "generated plan violates the itinerary contract", Errors: errs}
	}
	return nil
}
