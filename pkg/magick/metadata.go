package magick

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldSeparator joins the fields of an explicit metadata request in the
// identify -format string, and is what the parser splits the output on.
// It only needs to be a token that never occurs inside a field value.
const FieldSeparator = "--SEP--"

// Field names an image property that can be requested explicitly.
type Field string

// Fields with a known identify format escape.
const (
	FieldFilename   Field = "filename"
	FieldWidth      Field = "width"
	FieldHeight     Field = "height"
	FieldType       Field = "type"
	FieldDepth      Field = "depth"
	FieldSize       Field = "size"
	FieldQuality    Field = "quality"
	FieldColorspace Field = "colorspace"
)

var fieldEscapes = map[Field]string{
	FieldFilename:   "%f",
	FieldWidth:      "%w",
	FieldHeight:     "%h",
	FieldType:       "%m",
	FieldDepth:      "%z",
	FieldSize:       "%b",
	FieldQuality:    "%Q",
	FieldColorspace: "%[colorspace]",
}

// Metadata maps requested fields to their parsed values. Width and
// height are int; every other field is the tool's literal text.
type Metadata map[Field]interface{}

// Width returns the parsed width, if present.
func (m Metadata) Width() (int, bool) {
	n, ok := m[FieldWidth].(int)
	return n, ok
}

// Height returns the parsed height, if present.
func (m Metadata) Height() (int, bool) {
	n, ok := m[FieldHeight].(int)
	return n, ok
}

// Text returns a non-numeric field's value, if present.
func (m Metadata) Text(f Field) (string, bool) {
	s, ok := m[f].(string)
	return s, ok
}

// formatSpec renders the identify -format argument for an explicit
// metadata request: each field as "name: <escape>", joined by the
// separator. Unknown fields fail before any subprocess is spawned.
func formatSpec(fields []Field) (string, error) {
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: no fields requested", ErrUnknownField)
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		escape, ok := fieldEscapes[f]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
		parts = append(parts, string(f)+": "+escape)
	}
	return strings.Join(parts, FieldSeparator), nil
}

// parseExplicit turns the delimited output of an explicit metadata
// invocation into a Metadata record. The tool may insert line breaks
// mid-stream, so all CR and LF bytes are stripped before splitting.
// Duplicate fields are last-write-wins.
func parseExplicit(raw string) (Metadata, error) {
	clean := strings.NewReplacer("\r", "", "\n", "").Replace(raw)
	parts := strings.Split(clean, FieldSeparator)
	md := make(Metadata, len(parts))
	for _, part := range parts {
		name, value, ok := strings.Cut(part, ": ")
		if !ok {
			return nil, &MalformedFieldError{Segment: part}
		}
		field := Field(name)
		switch field {
		case FieldWidth, FieldHeight:
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, &MalformedFieldError{Segment: part}
			}
			md[field] = n
		default:
			md[field] = value
		}
	}
	return md, nil
}
