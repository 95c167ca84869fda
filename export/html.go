package export

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/pdflayout/model"
)

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func (e *Exporter) exportHTML(elems []model.Element, w io.Writer) error {
	doc, err := e.buildHTML(elems)
	if err != nil {
		return err
	}
	return html.Render(w, doc)
}

// buildHTML creates the document tree: one <p> per paragraph with lines
// separated by <br>, and one <figure> per image.
func (e *Exporter) buildHTML(elems []model.Element) (*html.Node, error) {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	if e.config.Title != "" {
		title := element(atom.Title)
		title.AppendChild(textNode(e.config.Title))
		head.AppendChild(title)
	}
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)

	images := 0
	for _, group := range paragraphs(elems) {
		if group[0].Type == model.ElementTypeImage {
			src, err := e.imageSource(images, group[0])
			if err != nil {
				return nil, err
			}
			images++

			fig := element(atom.Figure)
			fig.AppendChild(element(atom.Img,
				html.Attribute{Key: "src", Val: src},
				html.Attribute{Key: "alt", Val: group[0].AltText},
			))
			body.AppendChild(fig)
			continue
		}

		p := element(atom.P)
		for i, el := range group {
			if i > 0 {
				p.AppendChild(element(atom.Br))
			}
			p.AppendChild(textNode(strings.TrimSpace(el.Text())))
		}
		body.AppendChild(p)
	}

	return doc, nil
}
