package importer

import (
	"testing"
	"time"
)

func TestParseAmountCents(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"19.99", 1999, false},
		{"0", 0, false},
		{"100", 10000, false},
		{"0.5", 50, false},
		{"12.345", 1235, false}, // sub-cent precision rounds half away from zero
		{"12.341", 1234, false},
		{"-5", 0, true},
		{"twenty", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseAmountCents(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAmountCents(%q): want error, got %d", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmountCents(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAmountCents(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseDonationDate(t *testing.T) {
	tests := []struct {
		in   string
		want *time.Time
	}{
		{"2026-03-15", timePtr(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))},
		{"03/15/2026", timePtr(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))},
		{"not a date", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := parseDonationDate(tt.in)
		if tt.want == nil {
			if got != nil {
				t.Errorf("parseDonationDate(%q) = %v, want nil", tt.in, got)
			}
			continue
		}
		if got == nil || !got.Equal(*tt.want) {
			t.Errorf("parseDonationDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func timePtr(t time.Time) *time.Time { return &t }
