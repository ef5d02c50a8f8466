package player

import (
	"errors"
	"net/url"
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/ytbridge/ytbridge/codec"
	"github.com/ytbridge/ytbridge/correlator"
	"github.com/ytbridge/ytbridge/document"
	"github.com/ytbridge/ytbridge/event"
	"github.com/ytbridge/ytbridge/transport"
)

func TestLoad(t *testing.T) {
	Convey("Given a controller", t, func() {
		host := &fakeHost{}
		c := New(host.factory, syncDispatch, Options{Vars: document.Params{"playsinline": 1}})

		Convey("It should start unbound", func() {
			So(c.State(), ShouldEqual, event.StateUnstarted)
			So(c.Quality(), ShouldEqual, event.QualityUnknown)
			So(c.Ready(), ShouldBeFalse)
			So(c.BindingID(), ShouldBeEmpty)
			So(c.PlayVideo(), ShouldBeFalse)
		})

		Convey("Malformed identifiers should be rejected synchronously", func() {
			So(c.LoadWithVideoID("", nil), ShouldBeFalse)
			So(c.LoadWithVideoID("M7lc1UVf-VE\"); evil(", nil), ShouldBeFalse)
			So(c.LoadWithPlaylistID("PL 1", nil), ShouldBeFalse)
			So(c.LoadWithParams(document.Params{"list": []string{"a"}}), ShouldBeFalse)
			So(host.channels, ShouldBeEmpty)
		})

		Convey("A failing host should reject the load", func() {
			host.fail = errors.New("no browser")
			So(c.LoadWithVideoID("M7lc1UVf-VE", nil), ShouldBeFalse)
			So(c.BindingID(), ShouldBeEmpty)
		})

		Convey("When a video is loaded", func() {
			So(c.LoadWithVideoID("M7lc1UVf-VE", document.Params{"controls": 0}), ShouldBeTrue)
			ch := host.current()

			Convey("The document should carry the video and merged vars", func() {
				So(ch.doc.VideoID, ShouldEqual, "M7lc1UVf-VE")
				So(ch.doc.Vars, ShouldResemble, document.Params{"playsinline": 1, "controls": 0})
				So(ch.doc.Origin, ShouldEqual, "https://www.youtube.com")
				So(ch.doc.Background, ShouldEqual, document.DefaultBackground)
				So(c.BindingID(), ShouldNotBeEmpty)
			})

			Convey("Commands should be refused until ready", func() {
				So(c.PlayVideo(), ShouldBeFalse)
				So(ch.commands, ShouldBeEmpty)
			})

			Convey("Queries before ready should fail with ErrNotReady", func() {
				var got error
				c.CurrentTime(func(_ float32, err error) { got = err })
				So(got, ShouldEqual, ErrNotReady)
				So(c.Pending(), ShouldEqual, 0)
			})

			Convey("Ready should dismiss the placeholder and enable commands", func() {
				ch.emit(transport.ActionReady, nil)
				So(c.Ready(), ShouldBeTrue)
				So(ch.commands, ShouldResemble, []string{"ytbridge.hidePlaceholder();"})

				So(c.PlayVideo(), ShouldBeTrue)
				So(ch.last(), ShouldEqual, "ytbridge.playVideo();")
			})
		})

		Convey("Loading a playlist should pass it as player vars", func() {
			So(c.LoadWithPlaylistID("PLbpi6ZahtOH6Ar_3GPy3workdqgFoS3p", nil), ShouldBeTrue)
			doc := host.current().doc
			So(doc.VideoID, ShouldBeEmpty)
			So(doc.Vars["list"], ShouldEqual, "PLbpi6ZahtOH6Ar_3GPy3workdqgFoS3p")
			So(doc.Vars["listType"], ShouldEqual, "playlist")
		})

		Convey("Observer providers should shape the document", func() {
			c.Observe(&Funcs{Background: "#000000", PlaceholderHTML: mo.Some("<p>Loading</p>")})
			So(c.LoadWithParams(nil), ShouldBeTrue)

			doc := host.current().doc
			So(doc.Background, ShouldEqual, "#000000")
			So(doc.Placeholder.MustGet(), ShouldEqual, "<p>Loading</p>")
		})
	})
}

func TestReload(t *testing.T) {
	Convey("Given a ready controller with an outstanding playerState query", t, func() {
		c, host, rec := newReadyController()
		old := host.current()

		var outcomes []error
		var states []event.State
		c.PlayerState(func(state event.State, err error) {
			states = append(states, state)
			outcomes = append(outcomes, err)
		})
		So(c.Pending(), ShouldEqual, 1)
		So(old.last(), ShouldEqual, `ytbridge.query(1, "getPlayerState");`)

		Convey("When the channel is rebound before the reply arrives", func() {
			old.notify(transport.ActionStateChange, "1")
			So(c.LoadWithVideoID("9bZkp7q19f0", nil), ShouldBeTrue)

			Convey("Then the query fails with ErrTeardown exactly once", func() {
				So(outcomes, ShouldHaveLength, 1)
				So(errors.Is(outcomes[0], correlator.ErrTeardown), ShouldBeTrue)
				So(states[0], ShouldEqual, event.StateUnstarted)
				So(c.Pending(), ShouldEqual, 0)
			})

			Convey("Then the old channel is closed and the state machine is reset", func() {
				So(old.closed, ShouldBeTrue)
				So(host.channels, ShouldHaveLength, 2)
				So(c.State(), ShouldEqual, event.StateUnstarted)
				So(c.Ready(), ShouldBeFalse)
			})

			Convey("Then late messages from the old binding are dropped", func() {
				current := host.current()
				current.emit(transport.ActionReady, nil)

				var got []event.State
				c.PlayerState(func(state event.State, err error) {
					So(err, ShouldBeNil)
					got = append(got, state)
				})

				old.reply(1, "2")
				old.reply(2, "2")
				old.notify(transport.ActionStateChange, "0")

				So(got, ShouldBeEmpty)
				So(outcomes, ShouldHaveLength, 1)
				So(c.State(), ShouldEqual, event.StateUnstarted)
				So(rec.states, ShouldResemble, []event.State{event.StatePlaying})

				current.reply(2, "1")
				So(got, ShouldResemble, []event.State{event.StatePlaying})
			})
		})

		Convey("When the controller is closed", func() {
			So(c.Close(), ShouldBeNil)

			So(outcomes, ShouldHaveLength, 1)
			So(errors.Is(outcomes[0], correlator.ErrTeardown), ShouldBeTrue)
			So(old.closed, ShouldBeTrue)
			So(c.BindingID(), ShouldBeEmpty)
			So(c.PauseVideo(), ShouldBeFalse)
		})

		Convey("A completion that queries again during teardown should see ErrNotReady", func() {
			var second error
			c.Duration(func(_ float64, err error) {
				c.CurrentTime(func(_ float32, err error) { second = err })
			})
			So(c.Close(), ShouldBeNil)
			So(second, ShouldEqual, ErrNotReady)
			So(c.Pending(), ShouldEqual, 0)
		})
	})
}

func TestNotifications(t *testing.T) {
	Convey("Given a ready controller", t, func() {
		c, host, rec := newReadyController()
		ch := host.current()

		Convey("Ready should be reported once per binding", func() {
			ch.emit(transport.ActionReady, nil)
			So(rec.ready, ShouldEqual, 1)
			So(ch.commands, ShouldHaveLength, 1)
		})

		Convey("Buffering then Playing should report Playing once", func() {
			ch.notify(transport.ActionStateChange, "3")
			So(c.State(), ShouldEqual, event.StateBuffering)

			ch.notify(transport.ActionStateChange, "1")
			So(c.State(), ShouldEqual, event.StatePlaying)
			So(rec.states, ShouldResemble, []event.State{event.StateBuffering, event.StatePlaying})

			Convey("And a repeated notification should be applied silently", func() {
				ch.notify(transport.ActionStateChange, "1")
				So(rec.states, ShouldHaveLength, 2)
			})
		})

		Convey("The first report should be delivered even when it equals the default", func() {
			ch.notify(transport.ActionStateChange, "-1")
			So(rec.states, ShouldResemble, []event.State{event.StateUnstarted})
		})

		Convey("Repeated ended notifications should be idempotent", func() {
			ch.notify(transport.ActionStateChange, "0")
			ch.notify(transport.ActionStateChange, "0")
			So(rec.states, ShouldResemble, []event.State{event.StateEnded})
		})

		Convey("Malformed state codes should degrade to Unknown and recover", func() {
			ch.notify(transport.ActionStateChange, "42")
			So(c.State(), ShouldEqual, event.StateUnknown)

			ch.notify(transport.ActionStateChange, "2")
			So(c.State(), ShouldEqual, event.StatePaused)
		})

		Convey("Quality changes should be normalized", func() {
			ch.notify(transport.ActionQualityChange, "hd1080")
			ch.notify(transport.ActionQualityChange, "hd1080")
			ch.notify(transport.ActionQualityChange, "hd2160")
			So(rec.qualities, ShouldResemble, []event.Quality{event.QualityHD1080, event.QualityUnknown})
			So(c.Quality(), ShouldEqual, event.QualityUnknown)
		})

		Convey("A legacy not-embeddable code should be reported once", func() {
			var pending []error
			c.CurrentTime(func(_ float32, err error) { pending = append(pending, err) })

			ch.notify(transport.ActionError, "150")
			So(rec.errors, ShouldResemble, []event.ErrorKind{event.ErrorNotEmbeddable})

			Convey("And it should neither fail queries nor change the state", func() {
				So(pending, ShouldBeEmpty)
				So(c.Pending(), ShouldEqual, 1)
				So(c.State(), ShouldEqual, event.StateUnstarted)
			})
		})

		Convey("Play time should be forwarded without correlation", func() {
			ch.notify(transport.ActionPlayTime, "12.5")
			ch.notify(transport.ActionPlayTime, "garbage")
			So(rec.times, ShouldResemble, []float32{12.5, 0})
			So(c.Pending(), ShouldEqual, 0)
		})

		Convey("A failed iframe api should dismiss the placeholder and report an error", func() {
			ch.emit(transport.ActionIframeAPIFailed, nil)
			So(rec.errors, ShouldResemble, []event.ErrorKind{event.ErrorUnknown})
			So(ch.last(), ShouldEqual, "ytbridge.hidePlaceholder();")
		})

		Convey("Unknown and foreign messages should be ignored", func() {
			ch.emit("onApiChange", nil)
			ch.dispatch(func() { ch.handler("https://www.youtube.com/embed/M7lc1UVf-VE") })
			So(rec.states, ShouldBeEmpty)
			So(rec.errors, ShouldBeEmpty)
		})

		Convey("Cancelling the observer should stop delivery", func() {
			other := &recorder{}
			cancel := c.Observe(other)
			cancel()

			ch.notify(transport.ActionStateChange, "1")
			So(other.states, ShouldBeEmpty)
			So(rec.states, ShouldBeEmpty)
			So(c.State(), ShouldEqual, event.StatePlaying)

			Convey("And a stale cancel should not remove a newer observer", func() {
				first := c.Observe(rec)
				c.Observe(other)
				first()

				ch.notify(transport.ActionStateChange, "2")
				So(other.states, ShouldResemble, []event.State{event.StatePaused})
			})
		})
	})
}

func TestCommands(t *testing.T) {
	Convey("Given a ready controller", t, func() {
		c, host, _ := newReadyController()
		ch := host.current()

		Convey("Transport controls should be encoded", func() {
			So(c.PlayVideo(), ShouldBeTrue)
			So(c.PauseVideo(), ShouldBeTrue)
			So(c.StopVideo(), ShouldBeTrue)
			So(c.SeekTo(42.5, true), ShouldBeTrue)
			So(ch.commands[1:], ShouldResemble, []string{
				"ytbridge.playVideo();",
				"ytbridge.pauseVideo();",
				"ytbridge.stopVideo();",
				"ytbridge.seekTo(42.5, true);",
			})
		})

		Convey("Issuing commands should not change the state", func() {
			So(c.PlayVideo(), ShouldBeTrue)
			So(c.State(), ShouldEqual, event.StateUnstarted)
		})

		Convey("Cue and load variants should be encoded", func() {
			So(c.CueVideoByID("9bZkp7q19f0", 10, mo.None[float32]()), ShouldBeTrue)
			So(ch.last(), ShouldEqual, `ytbridge.cueVideoById("9bZkp7q19f0", 10);`)

			So(c.LoadVideoByID("9bZkp7q19f0", 0, mo.Some[float32](30)), ShouldBeTrue)
			So(ch.last(), ShouldEqual, `ytbridge.loadVideoById("9bZkp7q19f0", 0, 30);`)

			So(c.CueVideoByURL("https://www.youtube.com/v/9bZkp7q19f0", 0, mo.None[float32]()), ShouldBeTrue)
			So(ch.last(), ShouldEqual, `ytbridge.cueVideoByUrl("https://www.youtube.com/v/9bZkp7q19f0", 0);`)

			So(c.LoadVideoByURL("https://www.youtube.com/v/9bZkp7q19f0", 5, mo.Some[float32](6)), ShouldBeTrue)
			So(ch.last(), ShouldEqual, `ytbridge.loadVideoByUrl("https://www.youtube.com/v/9bZkp7q19f0", 5, 6);`)
		})

		Convey("Malformed cue arguments should be refused locally", func() {
			count := len(ch.commands)
			So(c.CueVideoByID("", 0, mo.None[float32]()), ShouldBeFalse)
			So(c.CueVideoByID("9bZkp7q19f0", -1, mo.None[float32]()), ShouldBeFalse)
			So(c.LoadVideoByID("9bZkp7q19f0", 10, mo.Some[float32](5)), ShouldBeFalse)
			So(c.CueVideoByURL("javascript:alert(1)", 0, mo.None[float32]()), ShouldBeFalse)
			So(c.SeekTo(-3, false), ShouldBeFalse)
			So(c.SetPlaybackRate(0), ShouldBeFalse)
			So(c.PlayVideoAt(-1), ShouldBeFalse)
			So(ch.commands, ShouldHaveLength, count)
		})

		Convey("Playlists should be encoded", func() {
			So(c.CuePlaylist(Playlist{ID: "PLbpi6ZahtOH6Ar", Index: 2, Start: 5}), ShouldBeTrue)
			So(ch.last(), ShouldEqual, `ytbridge.cuePlaylist("PLbpi6ZahtOH6Ar", 2, 5);`)

			So(c.LoadPlaylist(Playlist{Videos: []string{"M7lc1UVf-VE", "9bZkp7q19f0"}}), ShouldBeTrue)
			So(ch.last(), ShouldEqual, `ytbridge.loadPlaylist(["M7lc1UVf-VE", "9bZkp7q19f0"], 0, 0);`)

			So(c.CuePlaylist(Playlist{}), ShouldBeFalse)
			So(c.CuePlaylist(Playlist{ID: "PL", Videos: []string{"a"}}), ShouldBeFalse)
			So(c.CuePlaylist(Playlist{Videos: []string{"a"}, Index: 1}), ShouldBeFalse)
		})

		Convey("Navigation, rate and toggles should be encoded", func() {
			So(c.NextVideo(), ShouldBeTrue)
			So(c.PreviousVideo(), ShouldBeTrue)
			So(c.PlayVideoAt(3), ShouldBeTrue)
			So(c.SetPlaybackRate(1.5), ShouldBeTrue)
			So(c.SetLoop(true), ShouldBeTrue)
			So(c.SetShuffle(false), ShouldBeTrue)
			So(ch.commands[1:], ShouldResemble, []string{
				"ytbridge.nextVideo();",
				"ytbridge.previousVideo();",
				"ytbridge.playVideoAt(3);",
				"ytbridge.setPlaybackRate(1.5);",
				"ytbridge.setLoop(true);",
				"ytbridge.setShuffle(false);",
			})
		})

		Convey("A refused evaluation should return false", func() {
			ch.refuse = true
			So(c.PlayVideo(), ShouldBeFalse)
		})
	})
}

func TestQueries(t *testing.T) {
	Convey("Given a ready controller", t, func() {
		c, host, _ := newReadyController()
		ch := host.current()

		Convey("currentTime should resolve with the echoed id", func() {
			var seconds []float32
			var errs []error
			c.CurrentTime(func(s float32, err error) {
				seconds = append(seconds, s)
				errs = append(errs, err)
			})
			So(ch.last(), ShouldEqual, `ytbridge.query(1, "getCurrentTime");`)

			ch.reply(1, "12.5")
			So(seconds, ShouldResemble, []float32{12.5})
			So(errs, ShouldResemble, []error{nil})

			ch.reply(1, "13")
			So(seconds, ShouldHaveLength, 1)
		})

		Convey("The query with id 7 should complete with 12.5", func() {
			for i := 0; i < 6; i++ {
				c.VideoLoadedFraction(func(float32, error) {})
			}

			var got float32
			var gotErr error
			calls := 0
			c.CurrentTime(func(s float32, err error) {
				calls++
				got, gotErr = s, err
			})
			So(ch.last(), ShouldEqual, `ytbridge.query(7, "getCurrentTime");`)

			ch.reply(7, "12.5")
			So(calls, ShouldEqual, 1)
			So(got, ShouldEqual, float32(12.5))
			So(gotErr, ShouldBeNil)
			So(c.Pending(), ShouldEqual, 6)
		})

		Convey("Every getter should decode its reply kind", func() {
			var (
				rate     float32
				rates    []float32
				fraction float32
				state    event.State
				duration float64
				videoURL *url.URL
				embed    string
				playlist []string
				index    int
			)
			c.PlaybackRate(func(v float32, err error) { So(err, ShouldBeNil); rate = v })
			c.AvailablePlaybackRates(func(v []float32, err error) { So(err, ShouldBeNil); rates = v })
			c.VideoLoadedFraction(func(v float32, err error) { So(err, ShouldBeNil); fraction = v })
			c.PlayerState(func(v event.State, err error) { So(err, ShouldBeNil); state = v })
			c.Duration(func(v float64, err error) { So(err, ShouldBeNil); duration = v })
			c.VideoURL(func(v *url.URL, err error) { So(err, ShouldBeNil); videoURL = v })
			c.VideoEmbedCode(func(v string, err error) { So(err, ShouldBeNil); embed = v })
			c.Playlist(func(v []string, err error) { So(err, ShouldBeNil); playlist = v })
			c.PlaylistIndex(func(v int, err error) { So(err, ShouldBeNil); index = v })

			So(c.Pending(), ShouldEqual, 9)

			ch.reply(1, "1.5")
			ch.reply(2, "[0.25,0.5,1,1.5,2]")
			ch.reply(3, "0.75")
			ch.reply(4, "5")
			ch.reply(5, "213.5")
			ch.reply(6, "https://www.youtube.com/watch?v=M7lc1UVf-VE")
			ch.reply(7, `<iframe src="https://www.youtube.com/embed/M7lc1UVf-VE"></iframe>`)
			ch.reply(8, `["M7lc1UVf-VE","9bZkp7q19f0"]`)
			ch.reply(9, "1")

			So(rate, ShouldEqual, float32(1.5))
			So(rates, ShouldResemble, []float32{0.25, 0.5, 1, 1.5, 2})
			So(fraction, ShouldEqual, float32(0.75))
			So(state, ShouldEqual, event.StateCued)
			So(duration, ShouldEqual, 213.5)
			So(videoURL.String(), ShouldEqual, "https://www.youtube.com/watch?v=M7lc1UVf-VE")
			So(embed, ShouldStartWith, "<iframe")
			So(playlist, ShouldResemble, []string{"M7lc1UVf-VE", "9bZkp7q19f0"})
			So(index, ShouldEqual, 1)
			So(c.Pending(), ShouldEqual, 0)
		})

		Convey("A malformed reply should fail only its own query", func() {
			var first, second error
			c.Duration(func(_ float64, err error) { first = err })
			c.Duration(func(_ float64, err error) { second = err })

			ch.reply(1, "not-a-number")
			var decErr *codec.DecodingError
			So(errors.As(first, &decErr), ShouldBeTrue)
			So(c.Pending(), ShouldEqual, 1)

			ch.reply(2, "10")
			So(second, ShouldBeNil)
		})

		Convey("A remote getter failure should fail the query", func() {
			var got error
			c.VideoURL(func(_ *url.URL, err error) { got = err })
			ch.emit(transport.ActionReply, url.Values{"id": {"1"}, "error": {"player.getVideoUrl is not a function"}})
			So(errors.Is(got, correlator.ErrRemote), ShouldBeTrue)
		})

		Convey("A refused evaluation should fail the query with a transport error", func() {
			ch.refuse = true
			var got error
			c.Playlist(func(_ []string, err error) { got = err })
			So(errors.Is(got, transport.ErrUnreachable), ShouldBeTrue)
			So(c.Pending(), ShouldEqual, 0)
		})

		Convey("Replies with malformed ids should be ignored", func() {
			c.PlaylistIndex(func(int, error) {})
			ch.emit(transport.ActionReply, url.Values{"id": {"seven"}, "data": {"1"}})
			So(c.Pending(), ShouldEqual, 1)
		})

		Convey("A nil completion should not issue a query", func() {
			count := len(ch.commands)
			c.CurrentTime(nil)
			c.Playlist(nil)
			So(ch.commands, ShouldHaveLength, count)
			So(c.Pending(), ShouldEqual, 0)
		})
	})
}
