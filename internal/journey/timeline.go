package journey

import (
	"cmp"

	"golang.org/x/net/html"

	"github.com/playperu/ouruniverse/internal/content"
	"github.com/playperu/ouruniverse/internal/dom"
)

var timelineView = listView[content.TimelineEntry]{
	anchor:        "timeline-container",
	resource:      content.Timeline,
	loadingText:   "Loading our little universe...",
	nonArrayEmpty: true,
	emptyClass:    "timeline-empty",
	emptyText:     "Our story is still being written… I’ll fill this with our moments soon.",
	errorClass:    "timeline-error",
	errorText:     "Couldn’t load our story right now… but it still lives in my heart. (I’ll fix this soon.)",
	card:          timelineCard,
}

func timelineCard(e content.TimelineEntry) *html.Node {
	return dom.El("article", dom.Class("timeline-card"), dom.Children(
		dom.El("h3", dom.WithText(cmp.Or(e.Title, "A Moment in Our Universe"))),
		dom.El("p", dom.Class("timeline-date"), dom.WithText(cmp.Or(e.Date, "Date to be written"))),
		dom.El("p", dom.Class("timeline-description"), dom.WithText(cmp.Or(e.Description, "I’ll write this memory in later, my love."))),
	))
}
