package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"innkeep/internal/domains/booking/model"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return t
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.Status
		wantErr bool
	}{
		{name: "lowercase", input: "reserved", want: model.StatusReserved},
		{name: "mixed case", input: "CheckedIn", wantErr: true},
		{name: "uppercase", input: "CANCELLED", want: model.StatusCancelled},
		{name: "snake case upper", input: "CHECKED_IN", want: model.StatusCheckedIn},
		{name: "padded", input: "  checked_out ", want: model.StatusCheckedOut},
		{name: "unknown", input: "pending", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseStatus(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStatus_IsActive(t *testing.T) {
	assert.True(t, model.StatusReserved.IsActive())
	assert.True(t, model.StatusCheckedIn.IsActive())
	assert.False(t, model.StatusCheckedOut.IsActive())
	assert.False(t, model.StatusCancelled.IsActive())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, model.StatusReserved.IsTerminal())
	assert.False(t, model.StatusCheckedIn.IsTerminal())
	assert.True(t, model.StatusCheckedOut.IsTerminal())
	assert.True(t, model.StatusCancelled.IsTerminal())
}

func TestBooking_Nights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{name: "two nights", checkIn: "2025-01-10", checkOut: "2025-01-12", want: 2},
		{name: "one night", checkIn: "2025-01-10", checkOut: "2025-01-11", want: 1},
		{name: "week", checkIn: "2025-01-01", checkOut: "2025-01-08", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := model.Booking{CheckInDate: day(tt.checkIn), CheckOutDate: day(tt.checkOut)}

			assert.Equal(t, tt.want, b.Nights())
		})
	}
}

func TestBooking_Overlaps(t *testing.T) {
	stay := model.Booking{CheckInDate: day("2025-01-10"), CheckOutDate: day("2025-01-12")}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{name: "identical range", start: "2025-01-10", end: "2025-01-12", want: true},
		{name: "overlapping tail", start: "2025-01-11", end: "2025-01-13", want: true},
		{name: "overlapping head", start: "2025-01-09", end: "2025-01-11", want: true},
		{name: "containing", start: "2025-01-09", end: "2025-01-13", want: true},
		{name: "contained", start: "2025-01-10", end: "2025-01-11", want: true},
		{name: "same-day turnover", start: "2025-01-12", end: "2025-01-14", want: false},
		{name: "turnover before", start: "2025-01-08", end: "2025-01-10", want: false},
		{name: "disjoint after", start: "2025-02-01", end: "2025-02-03", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stay.Overlaps(day(tt.start), day(tt.end)))
		})
	}
}

func TestBooking_Covers(t *testing.T) {
	stay := model.Booking{CheckInDate: day("2025-01-10"), CheckOutDate: day("2025-01-12")}

	assert.True(t, stay.Covers(day("2025-01-10")))
	assert.True(t, stay.Covers(day("2025-01-11")))
	assert.False(t, stay.Covers(day("2025-01-12")), "checkout day is not occupied")
	assert.False(t, stay.Covers(day("2025-01-09")))
}
