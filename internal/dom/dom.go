// Package dom is the page model the journey renders into. It wraps
// golang.org/x/net/html nodes with the handful of operations the page logic
// needs. Lookups return nil for anchors that are not on the page.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Document struct {
	root *html.Node
}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &Document{root: root}, nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func (d *Document) Root() *html.Node { return d.root }

// ByID returns the first element with the given id.
func (d *Document) ByID(id string) *html.Node {
	return find(d.root, func(n *html.Node) bool {
		v, ok := Attr(n, "id")
		return ok && v == id
	})
}

// All returns every element in the document matching pred, in document order.
func (d *Document) All(pred func(*html.Node) bool) []*html.Node {
	return findAll(d.root, pred)
}

// ByClass returns the descendants of n carrying class.
func ByClass(n *html.Node, class string) []*html.Node {
	if n == nil {
		return nil
	}
	return findAll(n, func(c *html.Node) bool { return c != n && HasClass(c, class) })
}

// FirstByClass returns the first descendant of n carrying class, or nil.
func FirstByClass(n *html.Node, class string) *html.Node {
	if n == nil {
		return nil
	}
	return find(n, func(c *html.Node) bool { return c != n && HasClass(c, class) })
}

// ByTag returns the element descendants of n with the given tag name.
func ByTag(n *html.Node, tag string) []*html.Node {
	if n == nil {
		return nil
	}
	return findAll(n, func(c *html.Node) bool { return c != n && c.Data == tag })
}

func find(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := find(c, pred); m != nil {
			return m
		}
	}
	return nil
}

func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func RemoveAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

func classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

func HasClass(n *html.Node, class string) bool {
	for _, c := range classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

func AddClass(n *html.Node, class string) {
	if HasClass(n, class) {
		return
	}
	SetAttr(n, "class", strings.TrimSpace(strings.Join(append(classes(n), class), " ")))
}

func RemoveClass(n *html.Node, class string) {
	if !HasClass(n, class) {
		return
	}
	var keep []string
	for _, c := range classes(n) {
		if c != class {
			keep = append(keep, c)
		}
	}
	if len(keep) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(keep, " "))
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, text string) {
	Clear(n)
	n.AppendChild(TextNode(text))
}

func Clear(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

// Remove detaches n from its parent. Detached nodes are left alone.
func Remove(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Contains reports whether n is attached somewhere under parent.
func Contains(parent, n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == parent {
			return true
		}
	}
	return false
}

func Append(parent *html.Node, children ...*html.Node) {
	for _, c := range children {
		if c != nil {
			parent.AppendChild(c)
		}
	}
}

func TextNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Option configures an element built by El.
type Option func(*html.Node)

func Class(names ...string) Option {
	return func(n *html.Node) {
		for _, c := range names {
			AddClass(n, c)
		}
	}
}

func ID(id string) Option { return Attribute("id", id) }

func Attribute(key, val string) Option {
	return func(n *html.Node) { SetAttr(n, key, val) }
}

func Style(css string) Option { return Attribute("style", css) }

func WithText(s string) Option {
	return func(n *html.Node) { n.AppendChild(TextNode(s)) }
}

func Children(children ...*html.Node) Option {
	return func(n *html.Node) { Append(n, children...) }
}

// El builds a detached element.
func El(tag string, opts ...Option) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

func Render(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

func RenderString(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
