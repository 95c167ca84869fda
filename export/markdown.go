package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/tsawler/pdflayout/model"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
)

// escapeMarkdown escapes inline markup and a leading block marker.
func escapeMarkdown(s string) string {
	s = markdownEscaper.Replace(s)
	if s != "" && strings.ContainsRune("#>-+|", rune(s[0])) {
		s = `\` + s
	}
	return s
}

func (e *Exporter) exportMarkdown(elems []model.Element, w io.Writer) error {
	bw := bufio.NewWriter(w)
	images := 0

	for i, group := range paragraphs(elems) {
		if i > 0 {
			bw.WriteString("\n")
		}

		if group[0].Type == model.ElementTypeImage {
			src, err := e.imageSource(images, group[0])
			if err != nil {
				return err
			}
			images++
			bw.WriteString("![" + markdownEscaper.Replace(group[0].AltText) + "](" + src + ")\n")
			continue
		}

		for _, el := range group {
			bw.WriteString(escapeMarkdown(strings.TrimSpace(el.Text())))
			bw.WriteString("\n")
		}
	}

	return bw.Flush()
}
