package smoke

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/extracker/internal/adapters/http/api"
	service "github.com/okian/extracker/internal/app"
	"github.com/okian/extracker/internal/domain/logquery"
	"github.com/okian/extracker/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newTrackerServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	svc := service.New()
	if err := svc.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Stop)
	srv := httptest.NewServer(api.NewServer(svc, svc).Router(ctx))
	t.Cleanup(srv.Close)
	return srv
}

func TestBuildPlan(t *testing.T) {
	Convey("Given a plan of 2 users with 4 exercises each", t, func() {
		plan := BuildPlan("abc", 2, 4)

		So(plan, ShouldHaveLength, 2)
		So(plan[1].Username, ShouldEqual, "smoke-abc-1")
		So(plan[0].Exercises, ShouldHaveLength, 4)

		Convey("Then dates descend in submission order", func() {
			So(plan[0].Exercises[0].Date, ShouldEqual, "2024-01-04")
			So(plan[0].Exercises[3].Date, ShouldEqual, "2024-01-01")
		})

		Convey("Then the window drops both ends and caps at two", func() {
			w := WindowFor(plan[0])
			So(w.Params.Get("from"), ShouldEqual, "2024-01-02")
			So(w.Params.Get("to"), ShouldEqual, "2024-01-03")
			So(w.Params.Get("limit"), ShouldEqual, "2")

			log, count, err := Expected(plan[0], w.Query)
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 2)
			So(log, ShouldResemble, []LogEntry{
				{Description: "session 2", Duration: 20, Date: "Wed Jan 03 2024"},
				{Description: "session 3", Duration: 30, Date: "Tue Jan 02 2024"},
			})
		})
	})
}

func TestVerifyLog(t *testing.T) {
	Convey("Given a planned user", t, func() {
		u := BuildPlan("x", 1, 3)[0]
		u.ID = "u1"
		want, count, err := Expected(u, logquery.Query{})
		So(err, ShouldBeNil)

		Convey("A matching log passes", func() {
			got := Log{ID: "u1", Username: u.Username, Count: count, Log: want}
			So(VerifyLog(u, logquery.Query{}, got), ShouldBeNil)
		})

		Convey("A reordered log is a mismatch", func() {
			swapped := []LogEntry{want[1], want[0], want[2]}
			got := Log{ID: "u1", Username: u.Username, Count: count, Log: swapped}
			So(errors.Is(VerifyLog(u, logquery.Query{}, got), ErrMismatch), ShouldBeTrue)
		})

		Convey("A wrong count is a mismatch", func() {
			got := Log{ID: "u1", Username: u.Username, Count: 1, Log: want}
			So(errors.Is(VerifyLog(u, logquery.Query{}, got), ErrMismatch), ShouldBeTrue)
		})
	})
}

func TestForEach(t *testing.T) {
	Convey("forEach visits every index and reports failures", t, func() {
		seen := make([]bool, 20)
		failed, err := forEach(context.Background(), 4, 20, func(_ context.Context, i int) error {
			seen[i] = true
			if i%5 == 0 {
				return errors.New("boom")
			}
			return nil
		})
		So(failed, ShouldEqual, 4)
		So(err, ShouldNotBeNil)
		for _, ok := range seen {
			So(ok, ShouldBeTrue)
		}
	})

	Convey("forEach stops feeding work after cancellation", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := forEach(ctx, 2, 100, func(context.Context, int) error { return nil })
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})
}

func TestRunAgainstTracker(t *testing.T) {
	Convey("Given a live tracker", t, func() {
		srv := newTrackerServer(t)
		out := filepath.Join(t.TempDir(), "out", "workload.json")

		stats, err := Run(context.Background(), &Config{
			BaseURL:    srv.URL,
			NumUsers:   6,
			Exercises:  5,
			Workers:    3,
			Timeout:    5 * time.Second,
			OutputFile: out,
		})

		Convey("Then every check passes", func() {
			So(err, ShouldBeNil)
			So(stats.UsersCreated, ShouldEqual, 6)
			So(stats.ExercisesLogged, ShouldEqual, 30)
			So(stats.ExercisesFailed, ShouldEqual, 0)
			So(stats.LogsVerified, ShouldEqual, 6)
			So(stats.WindowsVerified, ShouldEqual, 6)
		})

		Convey("Then the workload is written with assigned ids", func() {
			data, err := os.ReadFile(out)
			So(err, ShouldBeNil)
			var plan []PlannedUser
			So(json.Unmarshal(data, &plan), ShouldBeNil)
			So(plan, ShouldHaveLength, 6)
			So(plan[0].ID, ShouldNotBeEmpty)
		})
	})
}

func TestRunDetectsBrokenServer(t *testing.T) {
	Convey("Given a server whose logs always come back empty", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
		mux.HandleFunc("POST /api/users", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(User{ID: "fixed-" + r.FormValue("username"), Username: r.FormValue("username")})
		})
		mux.HandleFunc("POST /api/users/{id}/exercises", func(w http.ResponseWriter, r *http.Request) {
			var in PlannedExercise
			_ = json.NewDecoder(r.Body).Decode(&in)
			_ = json.NewEncoder(w).Encode(Exercise{ID: r.PathValue("id"), Username: r.PathValue("id")[len("fixed-"):],
				Description: in.Description, Duration: in.Duration, Date: "Mon Jan 01 2024"})
		})
		mux.HandleFunc("GET /api/users/{id}/logs", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(Log{ID: r.PathValue("id"), Username: r.PathValue("id")[len("fixed-"):], Log: []LogEntry{}})
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		_, err := Run(context.Background(), &Config{
			BaseURL: srv.URL, NumUsers: 2, Exercises: 1, Workers: 2, Timeout: time.Second,
		})

		So(errors.Is(err, ErrMismatch), ShouldBeTrue)
	})
}

func TestClientStatusError(t *testing.T) {
	Convey("A non-200 answer surfaces as a StatusError", t, func() {
		srv := newTrackerServer(t)
		c := NewClient(srv.URL, time.Second)

		_, err := c.GetLog(context.Background(), "missing", nil)

		var se *StatusError
		So(errors.As(err, &se), ShouldBeTrue)
		So(se.Status, ShouldEqual, http.StatusNotFound)
	})
}
