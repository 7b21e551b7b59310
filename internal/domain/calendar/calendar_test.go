package calendar_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/extracker/internal/domain/calendar"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	want := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   string
	}{
		{"date only", "2023-06-15"},
		{"padded", "  2023-06-15 "},
		{"rfc3339 utc", "2023-06-15T18:30:00Z"},
		{"rfc3339 offset keeps local day", "2023-06-15T23:30:00-05:00"},
		{"rfc3339 nano", "2023-06-15T01:02:03.123456Z"},
		{"no zone", "2023-06-15T08:00:00"},
		{"display form", "Thu Jun 15 2023"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := calendar.Parse(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(want) {
				t.Errorf("expected %v, got %v", want, got)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"", "   ", "yesterday", "2023-13-01", "2023/06/15", "15-06-2023"} {
		if _, err := calendar.Parse(in); !errors.Is(err, calendar.ErrInvalidDate) {
			t.Errorf("Parse(%q): expected ErrInvalidDate, got %v", in, err)
		}
	}
}

func TestCalendar(t *testing.T) {
	Convey("Given the calendar helpers", t, func() {
		Convey("When formatting a day", func() {
			day := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

			Convey("Then it renders weekday month day year", func() {
				So(calendar.Format(day), ShouldEqual, "Sun Jan 01 2023")
			})

			Convey("And the rendered form parses back to the same day", func() {
				back, err := calendar.Parse(calendar.Format(day))
				So(err, ShouldBeNil)
				So(back.Equal(day), ShouldBeTrue)
			})
		})

		Convey("When asking for today with a fixed clock", func() {
			loc := time.FixedZone("UTC+9", 9*60*60)
			clock := func() time.Time { return time.Date(2024, time.February, 29, 3, 0, 0, 0, loc) }

			Convey("Then the local calendar day is kept", func() {
				So(calendar.Today(clock), ShouldEqual, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC))
			})
		})

		Convey("When parsing an optional value", func() {
			Convey("Then blank input means absent", func() {
				got, err := calendar.ParseOptional(" ")
				So(err, ShouldBeNil)
				So(got, ShouldBeNil)
			})

			Convey("Then a valid value is returned by pointer", func() {
				got, err := calendar.ParseOptional("2023-12-31")
				So(err, ShouldBeNil)
				So(got, ShouldNotBeNil)
				So(calendar.Format(*got), ShouldEqual, "Sun Dec 31 2023")
			})

			Convey("Then garbage is an error", func() {
				got, err := calendar.ParseOptional("not-a-date")
				So(err, ShouldNotBeNil)
				So(got, ShouldBeNil)
			})
		})
	})
}
