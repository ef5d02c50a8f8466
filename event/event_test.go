package event

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalizeState(t *testing.T) {
	Convey("NormalizeState", t, func() {
		Convey("Should map every wire code", func() {
			So(NormalizeState("-1"), ShouldEqual, StateUnstarted)
			So(NormalizeState("0"), ShouldEqual, StateEnded)
			So(NormalizeState("1"), ShouldEqual, StatePlaying)
			So(NormalizeState("2"), ShouldEqual, StatePaused)
			So(NormalizeState("3"), ShouldEqual, StateBuffering)
			So(NormalizeState("5"), ShouldEqual, StateCued)
		})

		Convey("Should map out-of-range codes to unknown", func() {
			for _, code := range []string{"4", "6", "-2", "", "playing", "1.0"} {
				So(NormalizeState(code), ShouldEqual, StateUnknown)
			}
		})

		Convey("Code should round-trip known states", func() {
			for _, s := range []State{StateUnstarted, StateEnded, StatePlaying, StatePaused, StateBuffering, StateCued} {
				So(NormalizeState(s.Code()), ShouldEqual, s)
			}
			So(StateUnknown.Code(), ShouldBeEmpty)
		})
	})
}

func TestNormalizeQuality(t *testing.T) {
	Convey("NormalizeQuality", t, func() {
		So(NormalizeQuality("small"), ShouldEqual, QualitySmall)
		So(NormalizeQuality("hd720"), ShouldEqual, QualityHD720)
		So(NormalizeQuality("HD1080"), ShouldEqual, QualityHD1080)
		So(NormalizeQuality("highres"), ShouldEqual, QualityHighRes)
		So(NormalizeQuality("auto"), ShouldEqual, QualityAuto)
		So(NormalizeQuality("default"), ShouldEqual, QualityDefault)

		Convey("Should map unknown tokens to unknown", func() {
			So(NormalizeQuality("hd2160"), ShouldEqual, QualityUnknown)
			So(NormalizeQuality("unknown"), ShouldEqual, QualityUnknown)
			So(NormalizeQuality(""), ShouldEqual, QualityUnknown)
		})
	})
}

func TestNormalizeError(t *testing.T) {
	Convey("NormalizeError", t, func() {
		Convey("Should collapse legacy codes", func() {
			So(NormalizeError("100"), ShouldEqual, ErrorVideoNotFound)
			So(NormalizeError("105"), ShouldEqual, ErrorVideoNotFound)
			So(NormalizeError("101"), ShouldEqual, ErrorNotEmbeddable)
			So(NormalizeError("150"), ShouldEqual, ErrorNotEmbeddable)
		})

		Convey("Should be stable across calls", func() {
			for _, code := range []string{"2", "5", "100", "101", "105", "150", "999"} {
				So(NormalizeError(code), ShouldEqual, NormalizeError(code))
			}
		})

		Convey("Should map the remaining codes", func() {
			So(NormalizeError("2"), ShouldEqual, ErrorInvalidParam)
			So(NormalizeError("5"), ShouldEqual, ErrorHTML5)
			So(NormalizeError("999"), ShouldEqual, ErrorUnknown)
			So(NormalizeError(""), ShouldEqual, ErrorUnknown)
		})
	})
}

func TestNormalizeTime(t *testing.T) {
	Convey("NormalizeTime", t, func() {
		So(NormalizeTime("12.5"), ShouldEqual, float32(12.5))
		So(NormalizeTime(" 3 "), ShouldEqual, float32(3))

		Convey("Should report malformed values as zero", func() {
			So(NormalizeTime(""), ShouldEqual, 0)
			So(NormalizeTime("abc"), ShouldEqual, 0)
			So(NormalizeTime("NaN"), ShouldEqual, 0)
			So(NormalizeTime("-4"), ShouldEqual, 0)
		})
	})
}

func TestMarshalJSON(t *testing.T) {
	Convey("Enumerations marshal as names", t, func() {
		out, err := json.Marshal(struct {
			S State
			Q Quality
			E ErrorKind
		}{StatePaused, QualityHD720, ErrorNotEmbeddable})
		So(err, ShouldBeNil)
		So(string(out), ShouldEqual, `{"S":"paused","Q":"hd720","E":"not_embeddable"}`)
	})
}
