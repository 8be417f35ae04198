package types

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

var validate = validator.New(validator.WithRequiredStructEnabled())

// TripRequest carries the form fields sent by the client.
type TripRequest struct {
	City          string `json:"city" validate:"required,max=300"`
	StartDate     string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"endDate" validate:"required,datetime=2006-01-02"`
	Preferences   string `json:"preferences,omitempty" validate:"max=2000"`
	TripPurpose   string `json:"tripPurpose,omitempty" validate:"max=200"`
	Pace          string `json:"pace,omitempty" validate:"max=200"`
	Companions    string `json:"companions,omitempty" validate:"max=200"`
	Budget        string `json:"budget,omitempty" validate:"max=200"`
	ArrivalTime   string `json:"arrivalTime,omitempty" validate:"max=100"`
	DepartureTime string `json:"departureTime,omitempty" validate:"max=100"`
}

// CityCheckRequest is the body of the destination check.
type CityCheckRequest struct {
	City string `json:"city"`
}

type CityCheckResponse struct {
	IsValid bool `json:"isValid"`
}

// Normalize trims every field.
func (r *TripRequest) Normalize() {
	r.City = strings.TrimSpace(r.City)
	r.StartDate = strings.TrimSpace(r.StartDate)
	r.EndDate = strings.TrimSpace(r.EndDate)
	r.Preferences = strings.TrimSpace(r.Preferences)
	r.TripPurpose = strings.TrimSpace(r.TripPurpose)
	r.Pace = strings.TrimSpace(r.Pace)
	r.Companions = strings.TrimSpace(r.Companions)
	r.Budget = strings.TrimSpace(r.Budget)
	r.ArrivalTime = strings.TrimSpace(r.ArrivalTime)
	r.DepartureTime = strings.TrimSpace(r.DepartureTime)
}

// FollowStartDate moves the end date to the start date when it is empty or earlier,
// the way the form keeps the range ordered while the user picks the start date.
func (r *TripRequest) FollowStartDate() {
	if r.StartDate == "" {
		return
	}
	if r.EndDate == "" || r.EndDate < r.StartDate {
		r.EndDate = r.StartDate
	}
}

// Validate applies the form rules. A zero today skips the "not in the past" rule.
func (r TripRequest) Validate(today time.Time) error {
	if r.City == "" || r.StartDate == "" || r.EndDate == "" {
		return ErrMissingFields
	}
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return fmt.Errorf("invalid trip request: %w", err)
		}
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return ErrMissingFields
		case "datetime":
			return fmt.Errorf("%w: %s", ErrInvalidDate, fe.Field())
		case "max":
			return fmt.Errorf("%w: %s (max %s)", ErrFieldTooLong, fe.Field(), fe.Param())
		default:
			return fmt.Errorf("invalid trip request: %s failed %s", fe.Field(), fe.Tag())
		}
	}

	start, end, err := r.Dates()
	if err != nil {
		return err
	}
	if start.After(end) {
		return ErrInvalidDateRange
	}
	if !today.IsZero() {
		y, m, d := today.Date()
		if start.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) {
			return ErrStartDateInPast
		}
	}
	return nil
}

// Dates parses the start and end dates as UTC calendar days.
func (r TripRequest) Dates() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: startDate", ErrInvalidDate)
	}
	end, err := time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endDate", ErrInvalidDate)
	}
	return start, end, nil
}

// Days returns the inclusive number of calendar days, or 0 when the dates are unusable.
func (r TripRequest) Days() int {
	start, end, err := r.Dates()
	if err != nil || end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
