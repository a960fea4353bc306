package caldate

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFromTimeIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 3, 10, 0, 1, 0, 0, time.UTC)
	night := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)

	if FromTime(morning) != FromTime(night) {
		t.Fatalf("expected same day, got %v and %v", FromTime(morning), FromTime(night))
	}
}

func TestSubCountsCalendarDays(t *testing.T) {
	a := FromTime(time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC))
	b := FromTime(time.Date(2024, 3, 11, 1, 0, 0, 0, time.UTC))

	if got := b.Sub(a); got != 1 {
		t.Fatalf("expected day difference 1, got %d", got)
	}
}

func TestParse(t *testing.T) {
	d, ok := Parse("2024-03-10")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if d.String() != "2024-03-10" {
		t.Fatalf("round trip mismatch: %s", d.String())
	}

	if _, ok := Parse("not a date"); ok {
		t.Fatal("expected parse failure")
	}
}

func TestParseLegacyLayout(t *testing.T) {
	d, ok := ParseLegacy("Sun Mar 10 2024")
	if !ok {
		t.Fatal("expected legacy layout to parse")
	}
	if d.String() != "2024-03-10" {
		t.Fatalf("expected 2024-03-10, got %s", d.String())
	}

	// Current layout still accepted.
	if _, ok := ParseLegacy("2024-03-10"); !ok {
		t.Fatal("expected ISO layout to parse")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d, _ := Parse("2024-03-10")

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"2024-03-10"` {
		t.Fatalf("unexpected encoding: %s", data)
	}

	var back Day
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back != d {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}
}

func TestUnmarshalGarbageFallsBackToToday(t *testing.T) {
	var d Day
	if err := json.Unmarshal([]byte(`"???"`), &d); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if d != Today() {
		t.Fatalf("expected fallback to today, got %v", d)
	}
}
