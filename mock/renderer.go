package mock

import (
	"io"

	"github.com/fwojciec/exegesis"
)

var _ exegesis.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of exegesis.Renderer.
type Renderer struct {
	RenderFn func(w io.Writer, docs []*exegesis.Document) error
}

func (r *Renderer) Render(w io.Writer, docs []*exegesis.Document) error {
	return r.RenderFn(w, docs)
}
