package journey

import (
	"cmp"

	"golang.org/x/net/html"

	"github.com/playperu/ouruniverse/internal/content"
	"github.com/playperu/ouruniverse/internal/dom"
)

var moodboardView = listView[content.MoodboardItem]{
	anchor:         "moodboard-container",
	resource:       content.Moodboard,
	containerClass: "moodboard-grid",
	emptyClass:     "moodboard-empty",
	emptyText:      "No moments here yet… I’ll fill this with our dreams very soon. 💙",
	errorClass:     "moodboard-error",
	errorText:      "Couldn’t load our moodboard right now — but all these moments are still in my heart. Try refreshing once more. ✨",
	card:           moodCard,
}

// moodCard renders only the parts the item actually has.
func moodCard(m content.MoodboardItem) *html.Node {
	card := dom.El("article", dom.Class("mood-card"))
	if m.Image != "" {
		card.AppendChild(dom.El("img",
			dom.Attribute("src", m.Image),
			dom.Attribute("alt", cmp.Or(m.Title, "Moodboard image")),
			dom.Attribute("loading", "lazy"),
		))
	}
	if m.Title != "" {
		card.AppendChild(dom.El("h3", dom.WithText(m.Title)))
	}
	if m.Description != "" {
		card.AppendChild(dom.El("p", dom.WithText(m.Description)))
	}
	return card
}
