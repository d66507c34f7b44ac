package prayer

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/smokyabdulrahman/praytimes/praytimes"
)

// makeTime returns hour:min on the sample date in UTC.
func makeTime(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, 2, 28, hour, min, 0, 0, time.UTC)
}

// hm converts hours and minutes to fractional hours.
func hm(h, m float64) float64 { return h + m/60 }

// sampleTimes is a winter day at about 51.5N in UTC.
func sampleTimes() praytimes.Times {
	return praytimes.Times{
		Imsak:    hm(5, 7),
		Fajr:     hm(5, 17),
		Sunrise:  hm(6, 48),
		Dhuhr:    hm(12, 13),
		Asr:      hm(15, 2),
		Sunset:   hm(17, 39),
		Maghrib:  hm(17, 39),
		Isha:     hm(19, 10),
		Midnight: hm(0, 14),
	}
}

var sampleDate = time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

// ---------------------------------------------------------------------------
// FromTimes
// ---------------------------------------------------------------------------

func TestFromTimes_Selection(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		want     []string
		wantErr  bool
	}{
		{"defaults", DefaultPrayerNames, DefaultPrayerNames, false},
		{"subset keeps order", []string{"Fajr", "Maghrib", "Isha"}, []string{"Fajr", "Maghrib", "Isha"}, false},
		{"unknown name", []string{"Tahajjud"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prayers, err := FromTimes(sampleTimes(), sampleDate, time.UTC, tt.selected)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromTimes() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(prayers) != len(tt.want) {
				t.Fatalf("got %d prayers, want %d", len(prayers), len(tt.want))
			}
			for i, name := range tt.want {
				if prayers[i].Name != name {
					t.Errorf("prayers[%d] = %s, want %s", i, prayers[i].Name, name)
				}
			}
		})
	}

	prayers, _ := FromTimes(sampleTimes(), sampleDate, time.UTC, []string{"Maghrib"})
	if got := prayers[0].Time.Format("15:04"); got != "17:39" {
		t.Errorf("Maghrib = %s, want 17:39", got)
	}
}

func TestFromTimes_Rounding(t *testing.T) {
	times := sampleTimes()
	times.Fajr = hm(5, 17.49)
	times.Asr = hm(15, 2.6)
	times.Isha = hm(23, 59.6)

	prayers, err := FromTimes(times, sampleDate, time.UTC, []string{"Fajr", "Asr", "Isha"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2026-02-28 05:17", "2026-02-28 15:03", "2026-03-01 00:00"}
	for i, w := range want {
		if got := prayers[i].Time.Format("2006-01-02 15:04"); got != w {
			t.Errorf("%s = %s, want %s", prayers[i].Name, got, w)
		}
	}
}

func TestFromTimes_MidnightNextDay(t *testing.T) {
	prayers, err := FromTimes(sampleTimes(), sampleDate, time.UTC, AllPrayerNames)
	if err != nil {
		t.Fatal(err)
	}
	last := prayers[len(prayers)-1]
	if last.Name != "Midnight" {
		t.Fatalf("last event = %s, want Midnight", last.Name)
	}
	if got := last.Time.Format("2006-01-02 15:04"); got != "2026-03-01 00:14" {
		t.Errorf("Midnight = %s, want 2026-03-01 00:14", got)
	}
}

func TestFromTimes_MidnightSameDay(t *testing.T) {
	times := sampleTimes()
	times.Midnight = hm(23, 40)
	prayers, err := FromTimes(times, sampleDate, time.UTC, []string{"Midnight"})
	if err != nil {
		t.Fatal(err)
	}
	if prayers[0].Time.Day() != 28 {
		t.Errorf("Midnight before 24:00 should stay on the same day, got %v", prayers[0].Time)
	}
}

func TestFromTimes_SkipsNaN(t *testing.T) {
	times := sampleTimes()
	times.Fajr = math.NaN()
	times.Isha = math.NaN()

	prayers, err := FromTimes(times, sampleDate, time.UTC, DefaultPrayerNames)
	if err != nil {
		t.Fatal(err)
	}
	if len(prayers) != 4 {
		t.Fatalf("expected 4 prayers with Fajr and Isha missing, got %d", len(prayers))
	}
	for _, p := range prayers {
		if p.Name == "Fajr" || p.Name == "Isha" {
			t.Errorf("%s should have been skipped", p.Name)
		}
	}
}

func TestFromTimes_Location(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, loc)

	prayers, err := FromTimes(sampleTimes(), date, loc, []string{"Dhuhr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prayers[0].Time.Location() != loc {
		t.Errorf("expected location %v, got %v", loc, prayers[0].Time.Location())
	}
}

// ---------------------------------------------------------------------------
// ParseNames / ByName
// ---------------------------------------------------------------------------

func TestParseNames(t *testing.T) {
	names, err := ParseNames("")
	if err != nil || len(names) != len(DefaultPrayerNames) {
		t.Errorf("ParseNames(\"\") = %v, %v; want defaults", names, err)
	}

	names, err = ParseNames("Fajr, Isha ,Midnight")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 3 || names[1] != "Isha" || names[2] != "Midnight" {
		t.Errorf("ParseNames = %v", names)
	}

	names, err = ParseNames("maghrib,ISHA")
	if err != nil || names[0] != "Maghrib" || names[1] != "Isha" {
		t.Errorf("ParseNames should canonicalize case, got %v, %v", names, err)
	}

	if _, err := ParseNames("Fajr,Firstthird"); err == nil {
		t.Error("ParseNames should reject names the calculator does not produce")
	}
}

func TestByName_AllPrayers(t *testing.T) {
	times := sampleTimes()
	for _, name := range AllPrayerNames {
		if _, err := ByName(times, name); err != nil {
			t.Errorf("ByName(%q) error: %v", name, err)
		}
	}
	if got, _ := ByName(times, "Asr"); got != times.Asr {
		t.Errorf("ByName(Asr) = %v, want %v", got, times.Asr)
	}
}

// ---------------------------------------------------------------------------
// FormatClock
// ---------------------------------------------------------------------------

func TestFormatClock(t *testing.T) {
	tests := []struct {
		h    float64
		want string
	}{
		{hm(5, 17), "05:17"},
		{hm(13, 19.4), "13:19"},
		{hm(13, 19.6), "13:20"},
		{0, "00:00"},
		{hm(23, 59.7), "00:00"},
		{math.NaN(), "--:--"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.h); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.h, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// NextPrayer
// ---------------------------------------------------------------------------

func defaultPrayers(t *testing.T) []Prayer {
	t.Helper()
	prayers, err := FromTimes(sampleTimes(), sampleDate, time.UTC, DefaultPrayerNames)
	if err != nil {
		t.Fatal(err)
	}
	return prayers
}

func TestNextPrayer(t *testing.T) {
	prayers := defaultPrayers(t)

	tests := []struct {
		name    string
		prayers []Prayer
		now     time.Time
		want    string // "" means none left today
	}{
		{"before fajr", prayers, makeTime(t, 3, 0), "Fajr"},
		{"between dhuhr and asr", prayers, makeTime(t, 13, 0), "Asr"},
		{"exactly at dhuhr", prayers, makeTime(t, 12, 13), "Asr"},
		{"after isha", prayers, makeTime(t, 22, 0), ""},
		{"empty list", nil, makeTime(t, 12, 0), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextPrayer(tt.prayers, tt.now)
			switch {
			case tt.want == "" && got != nil:
				t.Errorf("NextPrayer() = %s, want none", got.Name)
			case tt.want != "" && (got == nil || got.Name != tt.want):
				t.Errorf("NextPrayer() = %v, want %s", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// CurrentPrayer
// ---------------------------------------------------------------------------

func TestCurrentPrayer(t *testing.T) {
	prayers := defaultPrayers(t)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"before fajr", makeTime(t, 3, 0), ""},
		{"at fajr", makeTime(t, 5, 17), "Fajr"},
		{"afternoon", makeTime(t, 16, 0), "Asr"},
		{"late night", makeTime(t, 23, 0), "Isha"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentPrayer(prayers, tt.now)
			if tt.want == "" {
				if got != nil {
					t.Errorf("expected nil, got %s", got.Name)
				}
				return
			}
			if got == nil || got.Name != tt.want {
				t.Errorf("CurrentPrayer = %v, want %s", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TimeRemaining
// ---------------------------------------------------------------------------

func TestTimeRemaining(t *testing.T) {
	asr := Prayer{Name: "Asr", Time: makeTime(t, 15, 2)}
	if got := TimeRemaining(asr, makeTime(t, 13, 0)); got != 2*time.Hour+2*time.Minute {
		t.Errorf("TimeRemaining() = %v, want 2h2m", got)
	}
	if got := TimeRemaining(asr, makeTime(t, 16, 0)); got >= 0 {
		t.Errorf("TimeRemaining() after the prayer = %v, want negative", got)
	}
}

// ---------------------------------------------------------------------------
// FormatRemaining
// ---------------------------------------------------------------------------

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"hours and minutes", 2*time.Hour + 15*time.Minute, "2h 15m"},
		{"only minutes", 45 * time.Minute, "45m"},
		{"exactly one hour", 1 * time.Hour, "1h 0m"},
		{"zero", 0, "0m"},
		{"negative", -30 * time.Minute, "0m"},
		{"large", 10*time.Hour + 59*time.Minute, "10h 59m"},
		{"just over an hour", 1*time.Hour + 1*time.Minute, "1h 1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRemaining(tt.duration)
			if got != tt.want {
				t.Errorf("FormatRemaining(%v) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// FindNext
// ---------------------------------------------------------------------------

// fixedDays returns the sample schedule for every day except the ones listed
// in skip, which have no prayers at all.
func fixedDays(skip map[int]bool) DayFunc {
	return func(date time.Time) ([]Prayer, error) {
		if skip[date.Day()] {
			return nil, nil
		}
		return FromTimes(sampleTimes(), date, time.UTC, []string{"Fajr", "Isha", "Midnight"})
	}
}

func TestFindNext(t *testing.T) {
	tests := []struct {
		name       string
		now        time.Time
		skip       map[int]bool
		wantName   string
		wantDay    int
		wantOffset int
	}{
		{"later today", time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC), nil, "Isha", 28, 0},
		{"yesterday's midnight", time.Date(2026, 2, 28, 0, 5, 0, 0, time.UTC), nil, "Midnight", 28, -1},
		{"tomorrow", time.Date(2026, 2, 28, 23, 0, 0, 0, time.UTC), map[int]bool{}, "Midnight", 1, 0},
		{"skips empty days", time.Date(2026, 2, 27, 23, 0, 0, 0, time.UTC), map[int]bool{27: true, 28: true, 1: true}, "Fajr", 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, offset, err := FindNext(fixedDays(tt.skip), tt.now, 10)
			if err != nil {
				t.Fatal(err)
			}
			if next.Name != tt.wantName || next.Time.Day() != tt.wantDay {
				t.Errorf("FindNext() = %s on %v, want %s on day %d", next.Name, next.Time, tt.wantName, tt.wantDay)
			}
			if offset != tt.wantOffset {
				t.Errorf("offset = %d, want %d", offset, tt.wantOffset)
			}
		})
	}
}

func TestFindNext_GivesUp(t *testing.T) {
	none := func(time.Time) ([]Prayer, error) { return nil, nil }
	if _, _, err := FindNext(none, sampleDate, 3); err == nil {
		t.Error("expected error when no prayer occurs")
	}
}

func TestFindNext_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	failing := func(time.Time) ([]Prayer, error) { return nil, boom }
	if _, _, err := FindNext(failing, sampleDate, 3); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

// ---------------------------------------------------------------------------
// ShortNames
// ---------------------------------------------------------------------------

func TestShortNames_AllPrayers(t *testing.T) {
	for _, name := range AllPrayerNames {
		if _, ok := ShortNames[name]; !ok {
			t.Errorf("ShortNames missing entry for prayer %q", name)
		}
	}
	if len(ShortNames) != len(AllPrayerNames) {
		t.Errorf("ShortNames has %d entries, want %d", len(ShortNames), len(AllPrayerNames))
	}
}
