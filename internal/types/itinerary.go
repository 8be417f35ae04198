package types

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Activity is a single entry of a day plan, e.g. "早上 9:00 - 12:00 / [東京] 參觀淺草寺".
type Activity struct {
	Time        string `json:"time" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// DayPlan groups the activities of one calendar day.
type DayPlan struct {
	Date       string     `json:"date" validate:"required"`
	Day        string     `json:"day" validate:"required"`
	Activities []Activity `json:"activities" validate:"dive"`
}

// Itinerary is the plan returned by the model. All fields are free text.
type Itinerary struct {
	TripTitle  string    `json:"tripTitle" validate:"required"`
	DailyPlans []DayPlan `json:"dailyPlans" validate:"required,min=1,dive"`
}

// ItinerarySession is a generated itinerary kept in memory so it can be edited.
type ItinerarySession struct {
	ID        uuid.UUID   `json:"id"`
	Itinerary Itinerary   `json:"itinerary"`
	Request   TripRequest `json:"request"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Clone returns a deep copy; the nested slices are not shared.
func (it Itinerary) Clone() Itinerary {
	out := Itinerary{TripTitle: it.TripTitle}
	if it.DailyPlans == nil {
		return out
	}
	out.DailyPlans = make([]DayPlan, len(it.DailyPlans))
	for i, day := range it.DailyPlans {
		out.DailyPlans[i] = DayPlan{Date: day.Date, Day: day.Day}
		if day.Activities != nil {
			out.DailyPlans[i].Activities = make([]Activity, len(day.Activities))
			copy(out.DailyPlans[i].Activities, day.Activities)
		}
	}
	return out
}

// Normalize replaces nil activity lists with empty ones so clients always get arrays.
func (it *Itinerary) Normalize() {
	for i := range it.DailyPlans {
		if it.DailyPlans[i].Activities == nil {
			it.DailyPlans[i].Activities = []Activity{}
		}
	}
}

// Validate checks that the model filled in every required field.
func (it Itinerary) Validate() error {
	if err := validate.Struct(it); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalidItinerary, verrs[0].Namespace())
		}
		return fmt.Errorf("%w: %v", ErrInvalidItinerary, err)
	}
	return nil
}

// Validate applies the same field rules as model output, so edits cannot leave a
// stored itinerary that would fail Itinerary.Validate.
func (a Activity) Validate() error {
	if err := validate.Struct(a); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalidActivity, strings.ToLower(verrs[0].Field()))
		}
		return fmt.Errorf("%w: %v", ErrInvalidActivity, err)
	}
	return nil
}

// ActivityCount returns the total number of activities across all days.
func (it Itinerary) ActivityCount() int {
	n := 0
	for _, day := range it.DailyPlans {
		n += len(day.Activities)
	}
	return n
}
