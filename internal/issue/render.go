// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// render is swappable in tests, where a terminal renderer is noise.
var render = glamour.Render

// Markdown returns the error as a small markdown card.
func (e *ActionableError) Markdown() string {
	var md strings.Builder

	md.WriteString("# " + strings.ToUpper(e.Operation[:1]) + e.Operation[1:] + " failed\n")
	if e.Resource != "" {
		md.WriteString("\n`" + e.Resource + "`\n")
	}
	if e.Cause != nil {
		md.WriteString("\n" + e.Cause.Error() + "\n")
	}
	if len(e.Suggestions) > 0 {
		md.WriteString("\n## Things you can try\n")
		for _, suggestion := range e.Suggestions {
			md.WriteString("- " + suggestion + "\n")
		}
	}
	return md.String()
}

// Render returns the markdown card styled for the terminal. It falls
// back to the plain Format output when rendering fails, so a broken
// style never hides the error itself.
func (e *ActionableError) Render(stylePath string) string {
	out, err := render(e.Markdown(), stylePath)
	if err != nil {
		return e.Format(false)
	}
	return out
}
