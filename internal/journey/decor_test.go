package journey

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playperu/ouruniverse/internal/dom"
)

func newTestDecor(t *testing.T, audio Audio) (*decor, *fakeScheduler, *dom.Document) {
	t.Helper()
	doc := testDoc(t)
	sched := &fakeScheduler{}
	return &decor{
		doc:    doc,
		sched:  sched,
		rnd:    fixedRand{f: 0.25, n: 2},
		pacing: DefaultPacing(),
		audio:  audio,
	}, sched, doc
}

func TestDecor_MusicStartsOnce(t *testing.T) {
	audio := &fakeAudio{}
	d, _, _ := newTestDecor(t, audio)

	d.StartMusic()
	d.StartMusic()
	assert.Equal(t, 1, audio.plays)
	assert.True(t, d.musicStarted)
}

func TestDecor_RefusedMusicIsRetried(t *testing.T) {
	audio := &fakeAudio{err: errors.New("autoplay blocked")}
	d, _, _ := newTestDecor(t, audio)

	d.StartMusic()
	assert.False(t, d.musicStarted)

	audio.err = nil
	d.StartMusic()
	d.StartMusic()
	assert.Equal(t, 2, audio.plays)
	assert.True(t, d.musicStarted)
}

func TestDecor_NoAudio(t *testing.T) {
	d, _, _ := newTestDecor(t, nil)
	d.StartMusic()
	assert.False(t, d.musicStarted)
}

func TestDecor_ConfettiBurst(t *testing.T) {
	d, sched, doc := newTestDecor(t, nil)
	confetti := doc.ByID("confetti")

	d.FireConfetti()
	pieces := dom.ByClass(confetti, "confetti-piece")
	require.Len(t, pieces, 80)
	assert.True(t, dom.HasClass(pieces[0], "color-3"))
	style, _ := dom.Attr(pieces[0], "style")
	assert.Equal(t, "left: 25.00vw; animation-delay: 0.20s; transform: translateY(-20px) rotateZ(90deg)", style)

	sched.advance(2999 * time.Millisecond)
	assert.Len(t, dom.ByClass(confetti, "confetti-piece"), 80)
	sched.advance(time.Millisecond)
	assert.Empty(t, dom.ByClass(confetti, "confetti-piece"))
}

func TestDecor_ConfettiWithoutContainer(t *testing.T) {
	d, sched, _ := newTestDecor(t, nil)
	d.doc = parseDoc(t, `<p>plain</p>`)

	d.FireConfetti()
	assert.Zero(t, sched.pending())
}

func TestDecor_ConfettiPiecesKeepUniqueIDs(t *testing.T) {
	d, _, doc := newTestDecor(t, nil)

	d.FireConfetti()
	first := dom.ByClass(doc.ByID("confetti"), "confetti-piece")[0]
	d.FireConfetti()

	ids := map[string]bool{}
	for _, p := range dom.ByClass(doc.ByID("confetti"), "confetti-piece") {
		id, ok := dom.Attr(p, "id")
		require.True(t, ok)
		ids[id] = true
	}
	assert.Len(t, ids, 160)

	id, _ := dom.Attr(first, "id")
	assert.Equal(t, "confetti-1", id)
}
