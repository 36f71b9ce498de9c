package exegesis

import (
	"encoding/json"

	"cloud.google.com/go/civil"
)

// Parts are encoded as single-key objects naming the variant, for example
// {"Paragraph":[{"Text":"hi"}]} or {"Date":"2015-10-10"}.

func (p Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"Text": string(p)})
}

func (p Paragraph) MarshalJSON() ([]byte, error) { return marshalWrapped("Paragraph", p) }
func (p Header1) MarshalJSON() ([]byte, error)   { return marshalWrapped("Header1", p) }
func (p Header2) MarshalJSON() ([]byte, error)   { return marshalWrapped("Header2", p) }
func (p Header3) MarshalJSON() ([]byte, error)   { return marshalWrapped("Header3", p) }
func (p Emphasis) MarshalJSON() ([]byte, error)  { return marshalWrapped("Emphasis", p) }
func (p List) MarshalJSON() ([]byte, error)      { return marshalWrapped("List", p) }
func (p ListItem) MarshalJSON() ([]byte, error)  { return marshalWrapped("ListItem", p) }

func (p Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]linkJSON{"Link": {URL: p.URL, Content: nonNil(p.Content)}})
}

func (p Image) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]imageJSON{"Image": imageJSON(p)})
}

func (p Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]civil.Date{"Date": civil.Date(p)})
}

type linkJSON struct {
	URL     string `json:"url"`
	Content []Part `json:"content"`
}

type imageJSON struct {
	URL    string  `json:"url"`
	Width  *uint32 `json:"width"`
	Height *uint32 `json:"height"`
	Legend *string `json:"legend"`
}

func marshalWrapped(name string, children []Part) ([]byte, error) {
	return json.Marshal(map[string][]Part{name: nonNil(children)})
}

func nonNil(parts []Part) []Part {
	if parts == nil {
		return []Part{}
	}
	return parts
}

// MarshalJSON encodes the document, always emitting content as an array.
func (d Document) MarshalJSON() ([]byte, error) {
	type document Document
	v := document(d)
	v.Content = nonNil(v.Content)
	return json.Marshal(v)
}

// UnmarshalJSON decodes a document produced by MarshalJSON.
func (d *Document) UnmarshalJSON(data []byte) error {
	var v struct {
		Title           []json.RawMessage `json:"title"`
		PublicationDate *civil.Date       `json:"publication_date"`
		Content         []json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	title, err := unmarshalParts(v.Title)
	if err != nil {
		return err
	}
	content, err := unmarshalParts(v.Content)
	if err != nil {
		return err
	}

	*d = Document{Title: title, PublicationDate: v.PublicationDate, Content: content}
	return nil
}

// UnmarshalPart decodes a single part produced by one of the part encoders.
func UnmarshalPart(data []byte) (Part, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if len(obj) != 1 {
		return nil, Errorf(EINVALID, "part must have exactly one key, got %d", len(obj))
	}

	for name, raw := range obj {
		switch name {
		case "Text":
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return nil, err
			}
			return Text(s), nil
		case "Date":
			var date civil.Date
			if err := json.Unmarshal(raw, &date); err != nil {
				return nil, err
			}
			return Date(date), nil
		case "Image":
			var img imageJSON
			if err := json.Unmarshal(raw, &img); err != nil {
				return nil, err
			}
			return Image(img), nil
		case "Link":
			var link struct {
				URL     string            `json:"url"`
				Content []json.RawMessage `json:"content"`
			}
			if err := json.Unmarshal(raw, &link); err != nil {
				return nil, err
			}
			content, err := unmarshalParts(link.Content)
			if err != nil {
				return nil, err
			}
			return Link{URL: link.URL, Content: content}, nil
		}

		var raws []json.RawMessage
		if err := json.Unmarshal(raw, &raws); err != nil {
			return nil, err
		}
		children, err := unmarshalParts(raws)
		if err != nil {
			return nil, err
		}
		switch name {
		case "Paragraph":
			return Paragraph(children), nil
		case "Header1":
			return Header1(children), nil
		case "Header2":
			return Header2(children), nil
		case "Header3":
			return Header3(children), nil
		case "Emphasis":
			return Emphasis(children), nil
		case "List":
			return List(children), nil
		case "ListItem":
			return ListItem(children), nil
		}
		return nil, Errorf(EINVALID, "unknown part %q", name)
	}
	return nil, nil
}

func unmarshalParts(raws []json.RawMessage) ([]Part, error) {
	if raws == nil {
		return nil, nil
	}
	parts := make([]Part, 0, len(raws))
	for _, raw := range raws {
		p, err := UnmarshalPart(raw)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}
