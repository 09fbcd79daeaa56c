package adapter

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	m "github.com/mouse-blink/tqfuzz/internal/model"
)

// DocumentAdapter loads and serializes TQF query documents.
type DocumentAdapter interface {
	// Load parses the document stored at path.
	Load(path m.Path) (*etree.Document, error)

	// Parse parses an in-memory document.
	Parse(content []byte) (*etree.Document, error)

	// Serialize renders the whole document, declaration included.
	Serialize(doc *etree.Document) ([]byte, error)

	// SerializeMutant sets the text of leaf and renders doc. Markup
	// characters are escaped; characters XML forbids, such as NUL, are
	// written raw instead of being replaced.
	SerializeMutant(doc *etree.Document, leaf *etree.Element, text string) ([]byte, error)
}

// LocalDocumentAdapter reads and writes XML documents with etree.
type LocalDocumentAdapter struct{}

// NewLocalDocumentAdapter constructs a LocalDocumentAdapter.
func NewLocalDocumentAdapter() *LocalDocumentAdapter {
	return &LocalDocumentAdapter{}
}

// Load parses the document stored at path.
func (a *LocalDocumentAdapter) Load(path m.Path) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(string(path)); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if doc.Root() == nil {
		return nil, fmt.Errorf("failed to parse %s: no root element", path)
	}

	return doc, nil
}

// Parse parses an in-memory document.
func (a *LocalDocumentAdapter) Parse(content []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(content); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	if doc.Root() == nil {
		return nil, fmt.Errorf("failed to parse document: no root element")
	}

	return doc, nil
}

// Serialize renders the whole document.
func (a *LocalDocumentAdapter) Serialize(doc *etree.Document) ([]byte, error) {
	content, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}

	return content, nil
}

// SerializeMutant sets the text of leaf and renders doc.
func (a *LocalDocumentAdapter) SerializeMutant(doc *etree.Document, leaf *etree.Element, text string) ([]byte, error) {
	if isXMLText(text) {
		leaf.SetText(text)
		return a.Serialize(doc)
	}

	// etree would write U+FFFD for the forbidden characters: render a
	// placeholder and splice the raw text in its place.
	placeholder := "tqfuzz-" + uuid.NewString()
	leaf.SetText(placeholder)

	content, err := a.Serialize(doc)
	leaf.SetText(text)

	if err != nil {
		return nil, err
	}

	if n := bytes.Count(content, []byte(placeholder)); n != 1 {
		return nil, fmt.Errorf("failed to serialize mutant: placeholder found %d times", n)
	}

	return bytes.Replace(content, []byte(placeholder), []byte(markupEscaper.Replace(text)), 1), nil
}

// markupEscaper escapes text the way etree does for element content.
var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

func isXMLText(text string) bool {
	for i := 0; i < len(text); {
		r, width := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && width == 1 {
			return false
		}

		if !isXMLChar(r) {
			return false
		}

		i += width
	}

	return true
}

func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}
