package exegesis

import (
	"encoding/json"
	"io"
)

// Renderer writes extracted documents in some output format.
type Renderer interface {
	Render(w io.Writer, docs []*Document) error
}

// JSONRenderer writes documents as a JSON array.
type JSONRenderer struct {
	Indent string
}

var _ Renderer = (*JSONRenderer)(nil)

func (r *JSONRenderer) Render(w io.Writer, docs []*Document) error {
	if docs == nil {
		docs = []*Document{}
	}
	enc := json.NewEncoder(w)
	if r.Indent != "" {
		enc.SetIndent("", r.Indent)
	}
	return enc.Encode(docs)
}
