package journey

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/net/html"

	"github.com/playperu/ouruniverse/internal/content"
	"github.com/playperu/ouruniverse/internal/dom"
)

// listView describes how one content list is shown in its container.
type listView[T any] struct {
	anchor         string
	resource       string
	loadingText    string
	containerClass string
	// nonArrayEmpty treats a valid payload that is not a list as an empty
	// list instead of an error.
	nonArrayEmpty bool

	emptyClass, emptyText string
	errorClass, errorText string

	card func(T) *html.Node
}

// listLoader fetches a list resource off the loop and renders it into the
// anchor. A page without the anchor is left alone and nothing is fetched.
type listLoader[T any] struct {
	view   listView[T]
	doc    *dom.Document
	sched  Scheduler
	src    content.Source
	logger *slog.Logger
	ctx    context.Context
}

func (l *listLoader[T]) Load() {
	container := l.doc.ByID(l.view.anchor)
	if container == nil {
		return
	}

	dom.Clear(container)
	if l.view.containerClass != "" {
		dom.AddClass(container, l.view.containerClass)
	}
	if l.view.loadingText != "" {
		dom.SetText(container, l.view.loadingText)
	}

	l.sched.Spawn(func() func() {
		items, err := l.fetch()
		return func() {
			l.render(container, items, err)
		}
	})
}

func (l *listLoader[T]) fetch() ([]T, error) {
	data, err := l.src.Fetch(l.ctx, l.view.resource)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", l.view.resource, err)
	}
	return decodeList[T](data, l.view.nonArrayEmpty)
}

// decodeList decodes a JSON array. Elements that do not decode into T are
// kept as zero values so that their card shows its fallbacks.
func decodeList[T any](data []byte, nonArrayEmpty bool) ([]T, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: invalid JSON", content.ErrMalformed)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		if nonArrayEmpty {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: expected an array", content.ErrMalformed)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", content.ErrMalformed, err)
	}
	items := make([]T, len(raw))
	for i, r := range raw {
		_ = json.Unmarshal(r, &items[i])
	}
	return items, nil
}

func (l *listLoader[T]) render(container *html.Node, items []T, err error) {
	dom.Clear(container)
	switch {
	case err != nil:
		l.logger.Error("loading content failed", "resource", l.view.resource, "error", err)
		container.AppendChild(dom.El("p", dom.Class(l.view.errorClass), dom.WithText(l.view.errorText)))
	case len(items) == 0:
		container.AppendChild(dom.El("p", dom.Class(l.view.emptyClass), dom.WithText(l.view.emptyText)))
	default:
		for _, item := range items {
			container.AppendChild(l.view.card(item))
		}
	}
}
