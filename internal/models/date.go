package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// dateLayout is the wire format of HTML date inputs.
const dateLayout = "2006-01-02"

// NewDate truncates t to a calendar date in UTC.
func NewDate(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a yyyy-mm-dd form value into a calendar date.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return datatypes.Date(t), nil
}

// FormatDate renders a calendar date back into yyyy-mm-dd.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(dateLayout)
}
