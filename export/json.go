package export

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/tsawler/pdflayout/model"
)

// ExportedElement represents an element prepared for JSON export
type ExportedElement struct {
	Type      string           `json:"type"`
	PageIndex int              `json:"pageIndex,omitempty"`
	Text      string           `json:"text,omitempty"`
	Items     []model.TextItem `json:"items,omitempty"`
	Src       string           `json:"src,omitempty"`
	Format    string           `json:"format,omitempty"`
	AltText   string           `json:"altText,omitempty"`
}

func (e *Exporter) exportJSON(elems []model.Element, w io.Writer) error {
	out := make([]ExportedElement, 0, len(elems))
	images := 0

	for _, el := range elems {
		ex := ExportedElement{
			Type:      el.Type.String(),
			PageIndex: el.PageIndex,
		}

		switch el.Type {
		case model.ElementTypeText:
			ex.Text = el.Text()
			ex.Items = el.Items
		case model.ElementTypeImage:
			src, err := e.imageSource(images, el)
			if err != nil {
				return err
			}
			images++
			ex.Src = src
			ex.Format = el.Format
			ex.AltText = el.AltText
		}

		out = append(out, ex)
	}

	enc := json.NewEncoder(w)
	if e.config.PrettyPrint {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func (e *Exporter) exportText(elems []model.Element, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, el := range elems {
		switch el.Type {
		case model.ElementTypeText:
			bw.WriteString(el.Text())
			bw.WriteString("\n")
		case model.ElementTypeParagraphBreak:
			bw.WriteString("\n")
		}
	}
	return bw.Flush()
}
