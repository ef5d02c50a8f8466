package document

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/ytbridge/ytbridge/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func bootConfig(script string) map[string]any {
	raw := strings.TrimSuffix(strings.TrimPrefix(script, "ytbridge.boot("), ");")
	var config map[string]any
	So(json.Unmarshal([]byte(raw), &config), ShouldBeNil)
	return config
}

func TestDocument(t *testing.T) {
	Convey("Given a document for a single video", t, func() {
		doc := &Document{
			Origin:  "https://www.youtube.com",
			VideoID: "M7lc1UVf-VE",
			Vars:    Params{"playsinline": 1, "controls": 0},
		}

		Convey("Bootstrap should forward the video and its vars", func() {
			script, err := doc.Bootstrap()
			So(err, ShouldBeNil)
			So(script, ShouldStartWith, "ytbridge.boot(")

			config := bootConfig(script)
			So(config["videoId"], ShouldEqual, "M7lc1UVf-VE")
			So(config["interval"], ShouldEqual, float64(500))

			vars := config["playerVars"].(map[string]any)
			So(vars["playsinline"], ShouldEqual, float64(1))
			So(vars["controls"], ShouldEqual, float64(0))
			So(vars["origin"], ShouldEqual, "https://www.youtube.com")
		})

		Convey("Bootstrap should keep an explicit origin var", func() {
			doc.Vars["origin"] = "https://example.com"
			config := bootConfig(must(doc.Bootstrap()))
			So(config["playerVars"].(map[string]any)["origin"], ShouldEqual, "https://example.com")
		})

		Convey("HTML should embed the bridge and bootstrap", func() {
			html, err := doc.HTML()
			So(err, ShouldBeNil)
			So(html, ShouldContainSubstring, "root.ytbridge = {")
			So(html, ShouldContainSubstring, `"videoId":"M7lc1UVf-VE"`)
			So(html, ShouldContainSubstring, "https://www.youtube.com/iframe_api")
			So(html, ShouldContainSubstring, "background-color: #ffffff")
			So(html, ShouldNotContainSubstring, "ytbridge-placeholder\">")
		})

		Convey("HTML should render the placeholder and background", func() {
			doc.Background = "#000"
			doc.Placeholder = mo.Some("<p>Loading</p>")

			html, err := doc.HTML()
			So(err, ShouldBeNil)
			So(html, ShouldContainSubstring, `<div id="ytbridge-placeholder"><p>Loading</p></div>`)
			So(html, ShouldContainSubstring, "background-color: #000")
		})

		Convey("Values should not break out of the script element", func() {
			doc.Vars["title"] = "</script><script>alert(1)</script>"
			script, err := doc.Bootstrap()
			So(err, ShouldBeNil)
			So(script, ShouldNotContainSubstring, "</script>")
		})

		Convey("The interval should follow the document", func() {
			doc.TimeInterval = 250 * time.Millisecond
			So(bootConfig(must(doc.Bootstrap()))["interval"], ShouldEqual, float64(250))
		})

		Convey("Scripts should bring up the simulator first", func() {
			scripts, err := doc.Scripts()
			So(err, ShouldBeNil)
			So(scripts, ShouldHaveLength, 3)
			So(scripts[0], ShouldContainSubstring, "root.YT = {")
			So(scripts[2], ShouldStartWith, "ytbridge.boot(")
		})

		Convey("URL should point at the origin root", func() {
			So(doc.URL(), ShouldEqual, "https://www.youtube.com/")
		})
	})

	Convey("Invalid documents should be rejected", t, func() {
		for _, doc := range []*Document{
			{Origin: ""},
			{Origin: "file:///tmp/player.html"},
			{Origin: "https://www.youtube.com", Background: "red; content: 'x'"},
			{Origin: "https://www.youtube.com", Vars: Params{"playerVars": map[string]any{"a": 1}}},
			{Origin: "https://www.youtube.com", TimeInterval: -time.Second},
		} {
			_, err := doc.HTML()
			So(err, ShouldNotBeNil)
		}
	})
}

func must(s string, err error) string {
	So(err, ShouldBeNil)
	return s
}

func TestParams(t *testing.T) {
	Convey("Params", t, func() {
		Convey("Validate should reject nested values", func() {
			So(Params{"a": "x", "b": 1, "c": 1.5, "d": true}.Validate(), ShouldBeNil)
			So(Params{"a": []string{"x"}}.Validate(), ShouldNotBeNil)
			So(Params{"a": nil}.Validate(), ShouldNotBeNil)
			So(Params{"": 1}.Validate(), ShouldNotBeNil)
		})

		Convey("Merge should copy", func() {
			base := Params{"a": 1}
			merged := base.Merge(Params{"a": 2, "b": 3})
			So(merged, ShouldResemble, Params{"a": 2, "b": 3})
			So(base, ShouldResemble, Params{"a": 1})

			So(Params(nil).Merge(nil), ShouldNotBeNil)
		})

		Convey("ParseVars should convert scalars", func() {
			params, err := ParseVars([]string{"playsinline=1", "start=12.5", "fs=false", "hl=en", "cc_lang_pref = de "})
			So(err, ShouldBeNil)
			So(params, ShouldResemble, Params{
				"playsinline":  1,
				"start":        12.5,
				"fs":           false,
				"hl":           "en",
				"cc_lang_pref": "de",
			})

			_, err = ParseVars([]string{"autoplay"})
			So(err, ShouldNotBeNil)
		})

		Convey("LoadVars should read YAML through the filesystem", func() {
			So(filesystem.API().WriteFile("/vars.yaml", []byte("playsinline: 1\nrel: 0\nhl: en\n"), 0644), ShouldBeNil)

			params, err := LoadVars("/vars.yaml")
			So(err, ShouldBeNil)
			So(params, ShouldResemble, Params{"playsinline": 1, "rel": 0, "hl": "en"})

			So(filesystem.API().WriteFile("/nested.yaml", []byte("playerVars:\n  rel: 0\n"), 0644), ShouldBeNil)
			_, err = LoadVars("/nested.yaml")
			So(err, ShouldNotBeNil)

			_, err = LoadVars("/missing.yaml")
			So(err, ShouldNotBeNil)
		})
	})
}
