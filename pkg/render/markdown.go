package render

import (
	"strings"

	"github.com/russross/blackfriday"
)

// Markdown renders assistant markdown to the HTML fragment the web client
// embeds next to the raw content.
func Markdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	return strings.TrimSpace(string(blackfriday.MarkdownCommon([]byte(md))))
}
