// Package views renders the server-side HTML pages. Components are
// hand-assembled on top of the templ runtime so handlers and tests deal with
// plain templ.Component values.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter keeps the first write error, so components can emit markup
// without checking every write.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

// text escapes s for element content and double-quoted attribute values.
func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) rawf(format string, args ...any) {
	if hw.err != nil {
		return
	}
	_, hw.err = fmt.Fprintf(hw.w, format, args...)
}

// attr writes a name="value" pair with the value escaped. The caller owns the
// leading space via the format it builds around it.
func (hw *htmlWriter) attr(name, value string) {
	hw.raw(" " + name + `="`)
	hw.text(value)
	hw.raw(`"`)
}

func component(render func(hw *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		render(hw)
		return hw.err
	})
}
