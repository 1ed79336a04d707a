package sar

import (
	"fmt"
	"time"

	"sar_tracker_go/models"
)

// Response windows in calendar days. FOIA is observed as calendar days, not working days.
const (
	FOIAResponseDays      = 20
	StatutoryResponseDays = 28
)

// StatutoryDeadline computes the deadline fixed at case creation
func StatutoryDeadline(submission time.Time, requestType models.RequestType) time.Time {
	if requestType == models.RequestTypeFOIA {
		return AddDays(submission, FOIAResponseDays)
	}
	return AddDays(submission, StatutoryResponseDays)
}

// EffectiveDeadline resolves the operative deadline: custom, then extended, then statutory
func EffectiveDeadline(c *models.SARCase) (time.Time, models.DeadlineSource, error) {
	switch {
	case c.CustomDeadline != nil:
		return DateOf(*c.CustomDeadline), models.DeadlineSourceCustom, nil
	case c.ExtendedDeadline != nil:
		return DateOf(*c.ExtendedDeadline), models.DeadlineSourceExtended, nil
	case !c.StatutoryDeadline.IsZero():
		return DateOf(c.StatutoryDeadline), models.DeadlineSourceStatutory, nil
	}
	return time.Time{}, "", fmt.Errorf("case %q: %w", c.CaseReference, ErrConfiguration)
}

// deadlineFields lists every deadline the case carries, for checks that look at any of them
func deadlineFields(c *models.SARCase) []time.Time {
	deadlines := make([]time.Time, 0, 3)
	if !c.StatutoryDeadline.IsZero() {
		deadlines = append(deadlines, DateOf(c.StatutoryDeadline))
	}
	if c.ExtendedDeadline != nil {
		deadlines = append(deadlines, DateOf(*c.ExtendedDeadline))
	}
	if c.CustomDeadline != nil {
		deadlines = append(deadlines, DateOf(*c.CustomDeadline))
	}
	return deadlines
}
