package csvbind

import (
	"fmt"
	"io"
	"strings"

	gojson "github.com/goccy/go-json"
)

// Inspect writes a textual dump of a result container: the header joined
// by tabs, then one line per element via its display representation.
// Elements must implement fmt.Stringer, else CodeDisplayUnsupported.
func Inspect[E any](w io.Writer, header []string, items []E) error {
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return err
	}
	for _, item := range items {
		if err := writeDisplay(w, item); err != nil {
			return err
		}
	}
	return nil
}

// InspectMap is Inspect over an identity-keyed container; map iteration
// order carries through, so the line order is unspecified.
func InspectMap[K comparable, E any](w io.Writer, header []string, m map[K]E) error {
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return err
	}
	for _, item := range m {
		if err := writeDisplay(w, item); err != nil {
			return err
		}
	}
	return nil
}

func writeDisplay(w io.Writer, item any) error {
	s, ok := item.(fmt.Stringer)
	if !ok {
		return Issues{{
			Path:    "/",
			Code:    CodeDisplayUnsupported,
			Message: fmt.Sprintf("%T has no display representation", item),
		}}
	}
	_, err := fmt.Fprintln(w, s.String())
	return err
}

// Inspect dumps items against the parser's finalized header.
func (p *Parser[T]) Inspect(w io.Writer, items []T) error {
	return Inspect(w, p.Header(), items)
}

// InspectPtr dumps handle containers against the parser's finalized header.
func (p *Parser[T]) InspectPtr(w io.Writer, items []*T) error {
	return Inspect(w, p.Header(), items)
}

// inspectDoc is the JSON projection of a result container.
type inspectDoc struct {
	Header []string `json:"header"`
	Rows   any      `json:"rows"`
}

// InspectJSON renders the container as one JSON document with the header
// and the element values.
func InspectJSON[E any](w io.Writer, header []string, items []E) error {
	enc := gojson.NewEncoder(w)
	return enc.Encode(inspectDoc{Header: header, Rows: items})
}

// InspectJSON renders items as JSON against the parser's finalized header.
func (p *Parser[T]) InspectJSON(w io.Writer, items []T) error {
	return InspectJSON(w, p.Header(), items)
}
