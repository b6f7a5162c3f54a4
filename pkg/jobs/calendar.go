package jobs

import "time"

// Calendar holds the calendar features of a submission instant, in UTC.
type Calendar struct {
	Year    int `yaml:"sub_year"`
	Quarter int `yaml:"sub_quarter"`
	Month   int `yaml:"sub_month"`
	Day     int `yaml:"sub_day"`
	Hour    int `yaml:"sub_hour"`
	// DayOfYear is 1-based.
	DayOfYear int `yaml:"sub_day_of_year"`
	// DayOfWeek counts from Monday = 0 to Sunday = 6.
	DayOfWeek int `yaml:"sub_day_of_week"`
}

// DeriveCalendar decomposes a Unix timestamp into calendar features.
func DeriveCalendar(unixSeconds int64) Calendar {
	t := time.Unix(unixSeconds, 0).UTC()
	month := int(t.Month())
	return Calendar{
		Year:      t.Year(),
		Quarter:   (month-1)/3 + 1,
		Month:     month,
		Day:       t.Day(),
		Hour:      t.Hour(),
		DayOfYear: t.YearDay(),
		DayOfWeek: (int(t.Weekday()) + 6) % 7,
	}
}
