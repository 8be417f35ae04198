package types

import "fmt"

// DefaultActivity is appended when the user adds a blank activity to a day.
var DefaultActivity = Activity{
	Time:        "12:00 - 13:00",
	Title:       "新活動",
	Description: "請填寫此處的活動細節。",
}

// The edit helpers never mutate their input: each returns a fresh copy with the change applied.

func AddActivity(it Itinerary, dayIndex int) (Itinerary, error) {
	if err := checkDay(it, dayIndex); err != nil {
		return Itinerary{}, err
	}
	out := it.Clone()
	out.DailyPlans[dayIndex].Activities = append(out.DailyPlans[dayIndex].Activities, DefaultActivity)
	return out, nil
}

func UpdateActivity(it Itinerary, dayIndex, activityIndex int, activity Activity) (Itinerary, error) {
	if err := checkActivity(it, dayIndex, activityIndex); err != nil {
		return Itinerary{}, err
	}
	if err := activity.Validate(); err != nil {
		return Itinerary{}, err
	}
	out := it.Clone()
	out.DailyPlans[dayIndex].Activities[activityIndex] = activity
	return out, nil
}

func DeleteActivity(it Itinerary, dayIndex, activityIndex int) (Itinerary, error) {
	if err := checkActivity(it, dayIndex, activityIndex); err != nil {
		return Itinerary{}, err
	}
	out := it.Clone()
	acts := out.DailyPlans[dayIndex].Activities
	out.DailyPlans[dayIndex].Activities = append(acts[:activityIndex], acts[activityIndex+1:]...)
	return out, nil
}

func checkDay(it Itinerary, dayIndex int) error {
	if dayIndex < 0 || dayIndex >= len(it.DailyPlans) {
		return fmt.Errorf("%w: index %d of %d", ErrDayNotFound, dayIndex, len(it.DailyPlans))
	}
	return nil
}

func checkActivity(it Itinerary, dayIndex, activityIndex int) error {
	if err := checkDay(it, dayIndex); err != nil {
		return err
	}
	acts := it.DailyPlans[dayIndex].Activities
	if activityIndex < 0 || activityIndex >= len(acts) {
		return fmt.Errorf("%w: index %d of %d", ErrActivityNotFound, activityIndex, len(acts))
	}
	return nil
}
