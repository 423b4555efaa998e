package note

import (
	"strings"

	"github.com/russross/blackfriday/v2"
)

// Heading is a section title in a note.
type Heading struct {
	Level int
	Title string
}

// Outline summarizes the structure of a note body.
type Outline struct {
	Headings []Heading
	Items    int
}

// Sections returns the titles of headings below the top level.
func (o Outline) Sections() []string {
	var titles []string
	for _, h := range o.Headings {
		if h.Level > 1 {
			titles = append(titles, h.Title)
		}
	}
	return titles
}

// ParseOutline lists the headings and counts the list items of a note.
// Front matter is ignored.
func ParseOutline(content string) Outline {
	root := blackfriday.New().Parse([]byte(StripFrontMatter(content)))

	var o Outline
	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering {
			return blackfriday.GoToNext
		}
		switch node.Type {
		case blackfriday.Heading:
			o.Headings = append(o.Headings, Heading{Level: node.Level, Title: literal(node)})
			return blackfriday.SkipChildren
		case blackfriday.Item:
			o.Items++
		}
		return blackfriday.GoToNext
	})

	return o
}

// literal joins the text under node
func literal(node *blackfriday.Node) string {
	var b strings.Builder
	node.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if entering && (n.Type == blackfriday.Text || n.Type == blackfriday.Code) {
			b.Write(n.Literal)
		}
		return blackfriday.GoToNext
	})
	return strings.TrimSpace(b.String())
}
