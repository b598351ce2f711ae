package graph

import "testing"

func TestDecodeDate(t *testing.T) {
	cases := []struct {
		encoded uint32
		want    Date
		wantErr bool
	}{
		{encoded: 240101, want: Date{Year: 2024, Month: 1, Day: 1}},
		{encoded: 1271231, want: Date{Year: 2127, Month: 12, Day: 31}},
		{encoded: 240230, wantErr: true}, // February 30th does not exist
		{encoded: 241301, wantErr: true}, // month 13
	}
	for _, c := range cases {
		got, err := DecodeDate(c.encoded)
		if c.wantErr {
			if err == nil {
				t.Errorf("DecodeDate(%d): want error, got %v", c.encoded, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("DecodeDate(%d): %v", c.encoded, err)
			continue
		}
		if got != c.want {
			t.Errorf("DecodeDate(%d) = %v, want %v", c.encoded, got, c.want)
		}
	}
}

func TestDateDaysSince(t *testing.T) {
	a := Date{Year: 2024, Month: 1, Day: 1}
	b := Date{Year: 2024, Month: 1, Day: 10}
	if got := b.DaysSince(a); got != 9 {
		t.Errorf("DaysSince = %d, want 9", got)
	}
	if got := a.DaysSince(b); got != -9 {
		t.Errorf("DaysSince (reverse) = %d, want -9", got)
	}
	if got := a.DaysSince(a); got != 0 {
		t.Errorf("DaysSince (self) = %d, want 0", got)
	}
}
