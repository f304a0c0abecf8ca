package importer

import (
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func newTestManager(t *testing.T, store Store, opts Options) *Manager {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	m, err := NewManager(store, nil, log, opts)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestKeepDateAppliesSummerPenalty(t *testing.T) {
	january := time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)
	august := time.Date(2024, time.August, 4, 0, 0, 0, 0, time.UTC)

	// Outside the summer window the full percentage applies.
	if !keepDate(99, 100, january) {
		t.Fatalf("draw 99 at 100%% should keep a January date")
	}
	// Inside it the threshold drops by the penalty: 100 becomes 70.
	if !keepDate(70, 100, august) {
		t.Fatalf("draw 70 at 100%% should keep an August date")
	}
	if keepDate(75, 100, august) {
		t.Fatalf("draw 75 at 100%% should skip an August date")
	}
	if keepDate(40, 50, august) {
		t.Fatalf("draw 40 at 50%% should skip an August date")
	}
}

func TestSeasonalPenaltyWindow(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		date := time.Date(2024, month, 15, 0, 0, 0, 0, time.UTC)
		want := 0
		if month >= time.July && month <= time.September {
			want = summerPenaltyPercent
		}
		if got := seasonalPenalty(date); got != want {
			t.Fatalf("month %s: penalty %d, want %d", month, got, want)
		}
	}
}

func TestFindClassroomMatchesFirstBand(t *testing.T) {
	rooms := []classroom{
		{name: "Elementary", minAge: 4.5, maxAge: 10, groupId: 3},
		{name: "Nursery", minAge: 0, maxAge: 1.5, groupId: 1},
		{name: "Preschool", minAge: 1, maxAge: 5, groupId: 2},
	}
	sortClassrooms(rooms)

	cases := []struct {
		age  float64
		want string
	}{
		{0.5, "Nursery"},
		{1.2, "Nursery"},  // overlap resolves to the band with the lower minAge
		{4.8, "Preschool"}, // same again for the preschool/elementary overlap
		{8, "Elementary"},
	}
	for _, c := range cases {
		room := findClassroom(rooms, c.age)
		if room == nil {
			t.Fatalf("age %.1f: no classroom matched", c.age)
		}
		if room.name != c.want {
			t.Fatalf("age %.1f: matched %s, want %s", c.age, room.name, c.want)
		}
	}

	if room := findClassroom(rooms, 15); room != nil {
		t.Fatalf("age 15 matched %s, want no match", room.name)
	}
}

func TestAttendanceCodeAlphabet(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		code := newAttendanceCode(rng)
		if len(code) != attendanceCodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), attendanceCodeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(attendanceCodeAlphabet, r) {
				t.Fatalf("code %q contains %q, outside the allowed alphabet", code, r)
			}
		}
	}
}

func TestJitteredCheckinTimeStaysNearScheduleStart(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	date := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		got, err := jitteredCheckinTime(rng, date, "10:30")
		if err != nil {
			t.Fatalf("jitteredCheckinTime: %v", err)
		}
		base := time.Date(2024, time.March, 3, 10, 30, 0, 0, time.UTC)
		diff := got.Sub(base)
		if diff < -16*time.Minute || diff > 16*time.Minute {
			t.Fatalf("check-in %s is %s from the schedule start", got, diff)
		}
	}

	if _, err := jitteredCheckinTime(rng, date, "not-a-time"); err == nil {
		t.Fatalf("expected an error for an unparseable start time")
	}
}

func TestPreciseAgeUsesFractionalYears(t *testing.T) {
	birth := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	at := birth.AddDate(0, 0, 365)
	age := preciseAge(birth, at)
	if age < 0.99 || age > 1.01 {
		t.Fatalf("one year later gives age %f, want about 1.0", age)
	}
}
