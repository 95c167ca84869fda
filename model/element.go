package model

import (
	"encoding/json"
	"strings"
)

// ElementType represents the type of a document element
type ElementType int

const (
	ElementTypeText ElementType = iota
	ElementTypeImage
	ElementTypeParagraphBreak
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeText:
		return "text"
	case ElementTypeImage:
		return "image"
	case ElementTypeParagraphBreak:
		return "paragraphBreak"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (et ElementType) MarshalText() ([]byte, error) {
	return []byte(et.String()), nil
}

// Element is one entry of the assembled document. Its position in the
// surrounding slice is the only record of reading order.
//
// Which fields are set depends on Type:
//   - ElementTypeText: PageIndex, Items
//   - ElementTypeImage: PageIndex, Image, Format, AltText
//   - ElementTypeParagraphBreak: nothing
type Element struct {
	Type      ElementType `json:"type"`
	PageIndex int         `json:"pageIndex,omitempty"`
	Items     []TextItem  `json:"items,omitempty"`
	Image     []byte      `json:"imageBuffer,omitempty"`
	Format    string      `json:"format,omitempty"`
	AltText   string      `json:"altText,omitempty"`
}

// NewTextElement creates a text element.
func NewTextElement(pageIndex int, items []TextItem) Element {
	return Element{Type: ElementTypeText, PageIndex: pageIndex, Items: items}
}

// NewImageElement creates an image element.
func NewImageElement(pageIndex int, img ImageElement) Element {
	return Element{
		Type:      ElementTypeImage,
		PageIndex: pageIndex,
		Image:     img.Data,
		Format:    img.Format,
		AltText:   img.AltText,
	}
}

// ParagraphBreak creates a paragraph break marker.
func ParagraphBreak() Element {
	return Element{Type: ElementTypeParagraphBreak}
}

// IsText reports whether the element is a text element.
func (e Element) IsText() bool { return e.Type == ElementTypeText }

// Text joins the text of all items. It is empty for non-text elements.
func (e Element) Text() string {
	return joinItems(e.Items)
}

// String implements fmt.Stringer.
func (e Element) String() string {
	if e.IsText() {
		return e.Text()
	}
	return "[" + e.Type.String() + "]"
}

// MarshalElements encodes elements as an indented JSON array.
func MarshalElements(elems []Element) ([]byte, error) {
	return json.MarshalIndent(elems, "", "  ")
}

func joinItems(items []TextItem) string {
	var sb strings.Builder
	for _, it := range items {
		sb.WriteString(it.Text)
	}
	return sb.String()
}
