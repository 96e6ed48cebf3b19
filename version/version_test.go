package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Given two versions", t, func() {
		Convey("Then newer majors, minors and patches win", func() {
			for _, tc := range []struct {
				a, b string
				want int
			}{
				{"1.0.0", "0.9.9", 1},
				{"0.3.1", "0.3.1", 0},
				{"v0.3.2", "0.3.10", -1},
				{"0.4.0", "v0.3.9", 1},
			} {
				got, err := Compare(tc.a, tc.b)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, tc.want)
			}
		})

		Convey("Then malformed versions are rejected", func() {
			_, err := Compare("latest", "0.1.0")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestFetchLatest(t *testing.T) {
	Convey("Given a release endpoint", t, func() {
		status := http.StatusOK
		body := `{"tag_name": "v1.2.3"}`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
		Reset(srv.Close)

		Convey("When it returns a tag", func() {
			version, err := fetchLatest(context.Background(), srv.Client(), srv.URL)

			Convey("Then the v prefix is stripped", func() {
				So(err, ShouldBeNil)
				So(version, ShouldEqual, "1.2.3")
			})
		})

		Convey("When it is rate limited", func() {
			status = http.StatusForbidden
			_, err := fetchLatest(context.Background(), srv.Client(), srv.URL)

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the tag is empty", func() {
			body = `{}`
			_, err := fetchLatest(context.Background(), srv.Client(), srv.URL)

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
