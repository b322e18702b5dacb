package data

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// Codec converts between an XML document and the definitions of one kind.
type Codec[T Definition] interface {
	// Decode parses a whole document. Unknown elements and attributes are ignored.
	// Any failure is reported as *ParseError.
	Decode(raw []byte) ([]T, error)
	// Encode renders defs in order. Output is deterministic.
	Encode(defs []T) []byte
}

// ParseError describes why a document could not be decoded.
// Element/Index/Field are empty (Index = -1) for markup errors.
type ParseError struct {
	Element string // element path, e.g. "item" or "skillTree[2]/skill"
	Index   int    // position among sibling elements of the same name
	Field   string // attribute name
	Value   string // offending raw value
	Err     error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed document: %v", e.Err)
	}
	return fmt.Sprintf("%s #%d: field %q: invalid value %q: %v", e.Element, e.Index, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	errMissingAttr     = errors.New("required attribute is missing")
	errTrailingContent = errors.New("content after the root element")
)

// decodeDocument unmarshals the root element into v and checks that nothing
// but comments, processing instructions and whitespace follows it.
func decodeDocument(raw []byte, v any) error {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.CharsetReader = charsetReader
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return &ParseError{Index: -1, Err: err}
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return &ParseError{Index: -1, Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return &ParseError{Index: -1, Err: fmt.Errorf("%w: <%s>", errTrailingContent, t.Name.Local)}
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return &ParseError{Index: -1, Err: fmt.Errorf("%w: text %q", errTrailingContent, bytes.TrimSpace(t))}
			}
		}
	}
}

// charsetReader accepts legacy encodings declared in the XML prolog
// (windows-1251 and friends). Documents are always written back as UTF-8.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}

// fieldParser converts attribute strings of one element and keeps the first error.
type fieldParser struct {
	element string
	index   int
	err     *ParseError
}

func (p *fieldParser) fail(field, value string, err error) {
	if p.err != nil {
		return
	}
	p.err = &ParseError{Element: p.element, Index: p.index, Field: field, Value: value, Err: err}
}

// required flags an absent attribute and returns the raw value otherwise.
func (p *fieldParser) required(field string, value *string) string {
	if value == nil {
		p.fail(field, "", errMissingAttr)
		return ""
	}
	return *value
}

func (p *fieldParser) int32(field, raw string) int32 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		p.fail(field, raw, err)
		return 0
	}
	return int32(n)
}

func (p *fieldParser) int64(field, raw string) int64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		p.fail(field, raw, err)
		return 0
	}
	return n
}

func (p *fieldParser) bool(field, raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		p.fail(field, raw, err)
		return false
	}
	return b
}

// result returns the first error as error, or nil.
func (p *fieldParser) result() error {
	if p.err == nil {
		return nil
	}
	return p.err
}

// xmlSet is the shared <set name="..." val="..."/> shape.
type xmlSet struct {
	Name string `xml:"name,attr"`
	Val  string `xml:"val,attr"`
}

func decodeSets(sets []xmlSet) AttributeBag {
	var bag AttributeBag
	for _, s := range sets {
		bag.Append(s.Name, s.Val)
	}
	return bag
}

// --- writer ---

type attr struct {
	name, val string
}

// attrList keeps attributes in the order they are added.
type attrList []attr

func (l *attrList) str(name, val string) { *l = append(*l, attr{name, val}) }

// opt adds the attribute only when val is not empty.
func (l *attrList) opt(name, val string) {
	if val != "" {
		l.str(name, val)
	}
}

func (l *attrList) int(name string, v int64) { l.str(name, strconv.FormatInt(v, 10)) }

func (l *attrList) bool(name string, v bool) { l.str(name, strconv.FormatBool(v)) }

// docWriter renders indented XML in the layout of the L2J data files:
// tab indentation, self-closing leaf elements.
type docWriter struct {
	buf   bytes.Buffer
	depth int
}

func newDocWriter(root string) *docWriter {
	w := &docWriter{}
	w.buf.WriteString(xml.Header)
	w.open(root, nil)
	return w
}

func (w *docWriter) tag(name string, attrs attrList) {
	w.buf.WriteString(strings.Repeat("\t", w.depth))
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	for _, a := range attrs {
		w.buf.WriteByte(' ')
		w.buf.WriteString(a.name)
		w.buf.WriteString(`="`)
		_ = xml.EscapeText(&w.buf, []byte(a.val))
		w.buf.WriteByte('"')
	}
}

func (w *docWriter) open(name string, attrs attrList) {
	w.tag(name, attrs)
	w.buf.WriteString(">\n")
	w.depth++
}

func (w *docWriter) close(name string) {
	w.depth--
	w.buf.WriteString(strings.Repeat("\t", w.depth))
	w.buf.WriteString("</")
	w.buf.WriteString(name)
	w.buf.WriteString(">\n")
}

func (w *docWriter) empty(name string, attrs attrList) {
	w.tag(name, attrs)
	w.buf.WriteString(" />\n")
}

func (w *docWriter) text(name string, attrs attrList, text string) {
	w.tag(name, attrs)
	w.buf.WriteByte('>')
	_ = xml.EscapeText(&w.buf, []byte(text))
	w.buf.WriteString("</")
	w.buf.WriteString(name)
	w.buf.WriteString(">\n")
}

// finish closes the root element and returns the document.
func (w *docWriter) finish(root string) []byte {
	w.close(root)
	return w.buf.Bytes()
}
