package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeAt(t *testing.T) {
	at := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{name: "birthday today", dob: time.Date(2005, time.June, 15, 0, 0, 0, 0, time.UTC), want: 20},
		{name: "birthday tomorrow", dob: time.Date(2005, time.June, 16, 0, 0, 0, 0, time.UTC), want: 19},
		{name: "birthday yesterday", dob: time.Date(2005, time.June, 14, 0, 0, 0, 0, time.UTC), want: 20},
		{name: "birthday later this year", dob: time.Date(2005, time.December, 1, 0, 0, 0, 0, time.UTC), want: 19},
		{name: "birthday earlier this year", dob: time.Date(2005, time.January, 1, 0, 0, 0, 0, time.UTC), want: 20},
		{name: "born this year", dob: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeAt(tt.dob, at))
		})
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("not-a-duration", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}
