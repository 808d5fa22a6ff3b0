package utils

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestAgeFromDOB(t *testing.T) {
	tests := []struct {
		name string
		dob  string
		now  time.Time
		want int
	}{
		{
			name: "exact anniversary",
			dob:  "1995-03-10",
			now:  date(2024, time.March, 10),
			want: 29,
		},
		{
			name: "day before anniversary",
			dob:  "1995-03-10",
			now:  date(2024, time.March, 9),
			want: 28,
		},
		{
			name: "day after anniversary",
			dob:  "1995-03-10",
			now:  date(2024, time.March, 11),
			want: 29,
		},
		{
			name: "birthday later in year",
			dob:  "1990-12-25",
			now:  date(2024, time.June, 1),
			want: 33,
		},
		{
			name: "birthday earlier in year",
			dob:  "1990-01-02",
			now:  date(2024, time.June, 1),
			want: 34,
		},
		{
			name: "same month, earlier day",
			dob:  "2000-06-15",
			now:  date(2024, time.June, 14),
			want: 23,
		},
		{
			name: "empty dob yields sentinel",
			dob:  "",
			now:  date(2024, time.June, 1),
			want: 0,
		},
		{
			name: "unparseable dob yields sentinel",
			dob:  "10/03/1995",
			now:  date(2024, time.June, 1),
			want: 0,
		},
		{
			name: "future dob yields sentinel",
			dob:  "2030-01-01",
			now:  date(2024, time.June, 1),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeFromDOB(tt.dob, tt.now); got != tt.want {
				t.Errorf("AgeFromDOB(%q, %v) = %d, want %d", tt.dob, tt.now, got, tt.want)
			}
		})
	}
}
