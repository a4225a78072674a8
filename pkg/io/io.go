package io

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/geometry"
)

// Version is the document format version written by this package.
const Version = 1

// Document is the JSON interchange unit.
type Document struct {
	Version       int                  `json:"version"`
	ID            string               `json:"id,omitempty"`
	Family        string               `json:"family,omitempty"`
	Seed          uint64               `json:"seed,omitempty"`
	Canvas        *geometry.CanvasSize `json:"canvas,omitempty"`
	ScatterCanvas *geometry.CanvasSize `json:"scatterCanvas,omitempty"`
	Scattered     bool                 `json:"scattered,omitempty"`
	Shape         []geometry.Point     `json:"shape,omitempty"`
	Pieces        []geometry.Piece     `json:"pieces,omitempty"`
}

// Validate checks the document's structural invariants.
func (d *Document) Validate() error {
	if d.Version > Version {
		return errors.New(errors.ErrCodeInvalidInput, "document version %d is newer than supported version %d", d.Version, Version)
	}
	for _, c := range []*geometry.CanvasSize{d.Canvas, d.ScatterCanvas} {
		if c != nil {
			if err := errors.ValidateCanvas("document canvas", c.Width, c.Height); err != nil {
				return err
			}
		}
	}
	for i, p := range d.Pieces {
		if len(p.Points) != len(p.OriginalPoints) {
			return errors.New(errors.ErrCodeInvalidInput, "piece %d has %d points but %d original points", i, len(p.Points), len(p.OriginalPoints))
		}
	}
	return nil
}

// ReadJSON decodes a document from r. A bare JSON array is read as a shape.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode")
	}

	doc := &Document{Version: Version}
	dec := json.NewDecoder(br)
	if first == '[' {
		err = dec.Decode(&doc.Shape)
	} else {
		err = dec.Decode(doc)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode")
	}
	if doc.Version == 0 {
		doc.Version = Version
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// WriteJSON encodes doc as indented JSON.
func WriteJSON(doc *Document, w io.Writer) error {
	if doc.Version == 0 {
		doc.Version = Version
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode")
	}
	return nil
}

// Marshal encodes doc compactly, for caches and the wire.
func Marshal(doc *Document) ([]byte, error) {
	if doc.Version == 0 {
		doc.Version = Version
	}
	return json.Marshal(doc)
}

// Unmarshal is the inverse of [Marshal].
func Unmarshal(data []byte) (*Document, error) {
	return ReadJSON(bytes.NewReader(data))
}

// ImportJSON reads the document at path. "-" reads standard input.
func ImportJSON(path string) (*Document, error) {
	if path == "-" {
		return ReadJSON(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		code := errors.ErrCodeInternal
		if os.IsNotExist(err) {
			code = errors.ErrCodeNotFound
		}
		return nil, errors.Wrap(code, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ExportJSON writes doc to path. "-" writes to standard output.
func ExportJSON(doc *Document, path string) error {
	if path == "-" {
		return WriteJSON(doc, os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	if err := WriteJSON(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func peekNonSpace(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, r.UnreadByte()
	}
}
