package journey

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playperu/ouruniverse/internal/content"
	"github.com/playperu/ouruniverse/internal/dom"
)

func newTimeline(t *testing.T, src content.Source) (*listLoader[content.TimelineEntry], *fakeScheduler, *dom.Document) {
	t.Helper()
	doc := testDoc(t)
	sched := &fakeScheduler{}
	logger, _ := testLogger()
	return &listLoader[content.TimelineEntry]{
		view: timelineView, doc: doc, sched: sched, src: src, logger: logger, ctx: context.Background(),
	}, sched, doc
}

func newMoodboard(t *testing.T, src content.Source) (*listLoader[content.MoodboardItem], *fakeScheduler, *dom.Document) {
	t.Helper()
	doc := testDoc(t)
	sched := &fakeScheduler{}
	logger, _ := testLogger()
	return &listLoader[content.MoodboardItem]{
		view: moodboardView, doc: doc, sched: sched, src: src, logger: logger, ctx: context.Background(),
	}, sched, doc
}

func staticSource(payload string) content.Source {
	return content.SourceFunc(func(context.Context, string) ([]byte, error) {
		return []byte(payload), nil
	})
}

func TestTimeline_LoadingThenCards(t *testing.T) {
	l, sched, doc := newTimeline(t, staticSource(`[
		{"title":"First date","date":"2023-02-14","description":"Coffee."},
		{}
	]`))

	l.Load()
	container := doc.ByID("timeline-container")
	assert.Equal(t, "Loading our little universe...", dom.Text(container))

	sched.drain()
	cards := dom.ByClass(container, "timeline-card")
	require.Len(t, cards, 2)

	assert.Equal(t, "First date", dom.Text(dom.ByTag(cards[0], "h3")[0]))
	assert.Equal(t, "2023-02-14", dom.Text(dom.FirstByClass(cards[0], "timeline-date")))
	assert.Equal(t, "Coffee.", dom.Text(dom.FirstByClass(cards[0], "timeline-description")))

	assert.Equal(t, "A Moment in Our Universe", dom.Text(dom.ByTag(cards[1], "h3")[0]))
	assert.Equal(t, "Date to be written", dom.Text(dom.FirstByClass(cards[1], "timeline-date")))
	assert.Equal(t, "I’ll write this memory in later, my love.", dom.Text(dom.FirstByClass(cards[1], "timeline-description")))
}

func TestTimeline_EmptyStates(t *testing.T) {
	for name, payload := range map[string]string{
		"empty array": `[]`,
		"object":      `{"entries":[]}`,
		"null":        `null`,
	} {
		t.Run(name, func(t *testing.T) {
			l, sched, doc := newTimeline(t, staticSource(payload))
			l.Load()
			sched.drain()

			container := doc.ByID("timeline-container")
			empty := dom.ByClass(container, "timeline-empty")
			require.Len(t, empty, 1)
			assert.Equal(t, "Our story is still being written… I’ll fill this with our moments soon.", dom.Text(empty[0]))
			assert.Empty(t, dom.ByClass(container, "timeline-card"))
		})
	}
}

func TestTimeline_Errors(t *testing.T) {
	for name, src := range map[string]content.Source{
		"network": content.SourceFunc(func(context.Context, string) ([]byte, error) { return nil, errNetwork }),
		"invalid": staticSource(`[{"title":`),
	} {
		t.Run(name, func(t *testing.T) {
			l, sched, doc := newTimeline(t, src)
			l.Load()
			sched.drain()

			container := doc.ByID("timeline-container")
			errs := dom.ByClass(container, "timeline-error")
			require.Len(t, errs, 1)
			assert.True(t, strings.HasPrefix(dom.Text(errs[0]), "Couldn’t load our story right now"))
			assert.Empty(t, dom.ByClass(container, "timeline-card"))
		})
	}
}

func TestTimeline_MissingAnchorSkipsFetch(t *testing.T) {
	src := newFakeContent()
	sched := &fakeScheduler{}
	logger, _ := testLogger()
	l := &listLoader[content.TimelineEntry]{
		view: timelineView, doc: parseDoc(t, `<p>nothing here</p>`), sched: sched, src: src, logger: logger, ctx: context.Background(),
	}

	l.Load()
	sched.drain()
	assert.Zero(t, src.count(content.Timeline))
}

func TestTimeline_ErrorIsLogged(t *testing.T) {
	doc := testDoc(t)
	sched := &fakeScheduler{}
	logger, logs := testLogger()
	l := &listLoader[content.TimelineEntry]{
		view: timelineView, doc: doc, sched: sched,
		src:    content.SourceFunc(func(context.Context, string) ([]byte, error) { return nil, errNetwork }),
		logger: logger, ctx: context.Background(),
	}

	l.Load()
	sched.drain()
	assert.Contains(t, logs.String(), "loading content failed")
	assert.Contains(t, logs.String(), "network down")
}

func TestMoodboard_OptionalFields(t *testing.T) {
	l, sched, doc := newMoodboard(t, staticSource(`[{"title":"A"},{"image":"x.png"}]`))
	l.Load()
	sched.drain()

	container := doc.ByID("moodboard-container")
	assert.True(t, dom.HasClass(container, "moodboard-grid"))

	cards := dom.ByClass(container, "mood-card")
	require.Len(t, cards, 2)

	assert.Len(t, dom.ByTag(cards[0], "h3"), 1)
	assert.Empty(t, dom.ByTag(cards[0], "img"))
	assert.Empty(t, dom.ByTag(cards[0], "p"))

	imgs := dom.ByTag(cards[1], "img")
	require.Len(t, imgs, 1)
	assert.Empty(t, dom.ByTag(cards[1], "h3"))
	src, _ := dom.Attr(imgs[0], "src")
	alt, _ := dom.Attr(imgs[0], "alt")
	lazy, _ := dom.Attr(imgs[0], "loading")
	assert.Equal(t, "x.png", src)
	assert.Equal(t, "Moodboard image", alt)
	assert.Equal(t, "lazy", lazy)
}

func TestMoodboard_TitleIsAlt(t *testing.T) {
	l, sched, doc := newMoodboard(t, staticSource(`[{"title":"London","image":"l.png","description":"Lights"}]`))
	l.Load()
	sched.drain()

	card := dom.FirstByClass(doc.ByID("moodboard-container"), "mood-card")
	require.NotNil(t, card)
	alt, _ := dom.Attr(dom.ByTag(card, "img")[0], "alt")
	assert.Equal(t, "London", alt)
	assert.Equal(t, "Lights", dom.Text(dom.ByTag(card, "p")[0]))
}

func TestMoodboard_States(t *testing.T) {
	tests := []struct {
		name    string
		src     content.Source
		class   string
		noCards bool
	}{
		{"empty", staticSource(`[]`), "moodboard-empty", true},
		{"not an array", staticSource(`{"items":[]}`), "moodboard-error", true},
		{"invalid", staticSource(`nope`), "moodboard-error", true},
		{"network", content.SourceFunc(func(context.Context, string) ([]byte, error) { return nil, errors.New("503") }), "moodboard-error", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, sched, doc := newMoodboard(t, tt.src)
			l.Load()
			sched.drain()

			container := doc.ByID("moodboard-container")
			assert.Len(t, dom.ByClass(container, tt.class), 1)
			assert.Empty(t, dom.ByClass(container, "mood-card"))
		})
	}
}

func TestDecodeList_BadElementsFallBack(t *testing.T) {
	items, err := decodeList[content.TimelineEntry]([]byte(`[1, {"title":"ok"}]`), true)
	require.NoError(t, err)
	assert.Equal(t, []content.TimelineEntry{{}, {Title: "ok"}}, items)

	_, err = decodeList[content.MoodboardItem]([]byte(`"str"`), false)
	assert.ErrorIs(t, err, content.ErrMalformed)
}
