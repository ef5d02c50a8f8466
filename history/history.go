// Package history persists resume positions per video.
package history

import (
	"errors"
	"sort"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/ytbridge/ytbridge/filesystem"
	"github.com/ytbridge/ytbridge/where"
)

// finishedMargin is how close to the end a position counts as watched through.
const finishedMargin = 10

var cacher = gache.New[map[string]*Entry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var now = time.Now

// Get returns every saved entry keyed by video id.
func Get() (map[string]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Save records position for a video. The furthest position seen wins, so
// seeking back while re-watching does not lose progress.
func Save(entry Entry) error {
	if entry.VideoID == "" {
		return errors.New("history: empty video id")
	}

	saved, err := Get()
	if err != nil {
		return err
	}

	if existing, ok := saved[entry.VideoID]; ok {
		entry.Position = max(entry.Position, existing.Position)
		if entry.Duration <= 0 {
			entry.Duration = existing.Duration
		}
		if entry.Playlist == "" {
			entry.Playlist = existing.Playlist
		}
	}
	entry.Updated = now()

	saved[entry.VideoID] = &entry
	return cacher.Set(saved)
}

// Resume returns the position to start a video from, if there is one worth resuming.
func Resume(videoID string) (mo.Option[float64], error) {
	saved, err := Get()
	if err != nil {
		return mo.None[float64](), err
	}

	entry, ok := saved[videoID]
	if !ok || entry.Position <= 0 || entry.Finished() {
		return mo.None[float64](), nil
	}
	return mo.Some(entry.Position), nil
}

// Remove deletes the entry of a video.
func Remove(videoID string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, videoID)
	return cacher.Set(saved)
}

// Clear deletes every entry.
func Clear() error {
	return cacher.Set(make(map[string]*Entry))
}

// Recent returns entries, most recently updated first.
func Recent() ([]*Entry, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Updated.Equal(entries[j].Updated) {
			return entries[i].VideoID < entries[j].VideoID
		}
		return entries[i].Updated.After(entries[j].Updated)
	})
	return entries, nil
}

// Suggest returns saved video ids fuzzily matching prefix, most recent first.
func Suggest(prefix string) ([]string, error) {
	entries, err := Recent()
	if err != nil {
		return nil, err
	}

	ids := lo.Map(entries, func(e *Entry, _ int) string { return e.VideoID })
	if prefix == "" {
		return ids, nil
	}

	return lo.Filter(ids, func(id string, _ int) bool {
		return fuzzy.MatchFold(prefix, id)
	}), nil
}
