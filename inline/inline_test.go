package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/ytbridge/ytbridge/session"
)

func openSession(ctx context.Context) *session.Session {
	s, err := session.Open(ctx, session.Options{Host: session.HostGoja, TimeInterval: 50 * time.Millisecond})
	if err != nil {
		panic(err)
	}
	return s
}

func TestProbe(t *testing.T) {
	Convey("Given a session on the embedded host", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s := openSession(ctx)
		Reset(func() {
			_ = s.Close()
			cancel()
		})

		Convey("Probing a video should answer every query", func() {
			report, err := Probe(ctx, s, session.Target{VideoID: "M7lc1UVf-VE"})
			So(err, ShouldBeNil)
			So(report.Failures, ShouldBeNil)
			So(report.Target, ShouldEqual, "M7lc1UVf-VE")
			So(report.Binding, ShouldNotBeEmpty)
			So(report.State, ShouldEqual, "cued")
			So(report.Duration, ShouldBeGreaterThan, 0)
			So(report.AvailablePlaybackRates, ShouldContain, float32(1))
			So(report.PlaybackRate, ShouldEqual, float32(1))
			So(report.VideoURL, ShouldContainSubstring, "M7lc1UVf-VE")
			So(report.EmbedCode, ShouldContainSubstring, "<iframe")
			So(report.Errors, ShouldBeEmpty)
		})

		Convey("Probing a restricted video should report the error", func() {
			report, err := Probe(ctx, s, session.Target{VideoID: "1501abcdefg"})
			So(err, ShouldBeNil)
			So(report.Errors, ShouldContain, "not_embeddable")
		})

		Convey("Probing a list of videos should report the playlist", func() {
			report, err := Probe(ctx, s, session.Target{Videos: []string{"M7lc1UVf-VE", "9bZkp7q19f0"}, Index: 1})
			So(err, ShouldBeNil)
			So(report.Playlist, ShouldResemble, []string{"M7lc1UVf-VE", "9bZkp7q19f0"})
			So(report.PlaylistIndex, ShouldEqual, 1)
		})
	})
}

func TestWatch(t *testing.T) {
	Convey("Given a playing video", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s := openSession(ctx)
		Reset(func() {
			_ = s.Close()
			cancel()
		})

		So(s.Load(ctx, session.Target{VideoID: "M7lc1UVf-VE", Autoplay: true}), ShouldBeNil)

		Convey("Watching should print events and track the position", func() {
			watchCtx, stop := context.WithTimeout(ctx, 600*time.Millisecond)
			defer stop()

			var out bytes.Buffer
			progress, err := Watch(watchCtx, s, &out, WatchOptions{})
			So(err, ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "time ")
			So(progress.VideoID, ShouldEqual, "M7lc1UVf-VE")
			So(progress.Position, ShouldBeGreaterThan, 0)
			So(progress.Duration, ShouldBeGreaterThan, 0)
		})

		Convey("Watching as JSON should print one event per line", func() {
			watchCtx, stop := context.WithTimeout(ctx, 300*time.Millisecond)
			defer stop()

			var out bytes.Buffer
			_, err := Watch(watchCtx, s, &out, WatchOptions{JSON: true})
			So(err, ShouldBeNil)

			line, err := out.ReadBytes('\n')
			So(err, ShouldBeNil)

			var e Event
			So(json.Unmarshal(line, &e), ShouldBeNil)
			So(e.Type, ShouldBeIn, []string{"state", "quality", "time"})
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("Schemas should describe the report and the events", t, func() {
		report, err := json.Marshal(Schema(false))
		So(err, ShouldBeNil)
		So(string(report), ShouldContainSubstring, "available_playback_rates")

		events, err := json.Marshal(Schema(true))
		So(err, ShouldBeNil)
		So(string(events), ShouldContainSubstring, `"quality"`)
	})
}
