package cmd

import (
	"testing"
	"time"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"2022", 2022, false},
		{"2022-05", 2022, false},
		{"22", 0, true},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		got, err := parseYear(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseYear(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseYear(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in        string
		endOfYear bool
		want      time.Time
	}{
		{"", false, time.Time{}},
		{"2021-03", false, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2021", false, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2021", true, time.Date(2021, 12, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := parseMonth(tt.in, tt.endOfYear)
		if err != nil {
			t.Errorf("parseMonth(%q, %v) err = %v", tt.in, tt.endOfYear, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseMonth(%q, %v) = %v, want %v", tt.in, tt.endOfYear, got, tt.want)
		}
	}
}

func TestYearWindowRejectsInvertedRange(t *testing.T) {
	flagFrom, flagTo = "2023", "2020"
	defer func() { flagFrom, flagTo = "", "" }()

	if _, _, err := yearWindow(); err == nil {
		t.Error("inverted --from/--to should error")
	}
}

func TestMonthWindowExpandsBareYears(t *testing.T) {
	flagFrom, flagTo = "2021", "2022"
	defer func() { flagFrom, flagTo = "", "" }()

	from, to, err := monthWindow()
	if err != nil {
		t.Fatalf("monthWindow() err = %v", err)
	}
	if from.Month() != time.January || from.Year() != 2021 {
		t.Errorf("from = %v, want 2021-01", from)
	}
	if to.Month() != time.December || to.Year() != 2022 {
		t.Errorf("to = %v, want 2022-12", to)
	}
}
