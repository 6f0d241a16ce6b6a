package script

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// ParseError describes a syntax error in a script file, with enough source
// context to locate it. Steps committed before the error are retained on
// the returned Script.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Offset  int64
	Excerpt string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: invalid script at line %d, column %d: %v (near %q)",
		e.Path, e.Line, e.Column, e.Err, e.Excerpt)
}

func (e *ParseError) Unwrap() error { return e.Err }

// activeField is the cursor tracking which step field the next scalar value
// populates.
type activeField int

const (
	fieldNone activeField = iota
	fieldFrame
	fieldAction
	fieldParamNum
	fieldParamStr
)

// parseContext carries the transient state for the step object currently
// being ingested. It is reset after every committed step.
type parseContext struct {
	field    activeField
	frame    uint64
	frameSet bool
	action   uint
	paramNum uint
	paramStr string

	prevFrame uint64
	havePrev  bool
}

// Load reads a step script from a file. An empty path, a missing file or an
// unreadable file all yield an empty schedule without an error, since
// scripted input is optional tooling. A syntax error returns the steps
// parsed so far together with a *ParseError.
func Load(path string) (*Script, error) {
	if path == "" {
		slog.Debug("no input script supplied")
		return &Script{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("input script not found", "path", path)
		} else {
			slog.Warn("input script unreadable", "path", path, "error", err)
		}
		return &Script{}, nil
	}

	return Parse(data, path)
}

// Parse ingests script content. The path is used only for diagnostics.
func Parse(data []byte, path string) (*Script, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	s := &Script{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	ctx := &parseContext{}

	fail := func(err error) (*Script, error) {
		perr := newParseError(path, data, dec.InputOffset(), err)
		slog.Warn("error parsing input script", "path", path, "error", perr)
		return s, perr
	}

	tok, err := dec.Token()
	if err == io.EOF {
		// empty file, empty schedule
		return s, nil
	}
	if err != nil {
		return fail(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return fail(fmt.Errorf("expected top-level array, got %v", tok))
	}

	for dec.More() {
		if err := parseObject(dec, ctx, s); err != nil {
			return fail(err)
		}
	}

	if _, err := dec.Token(); err != nil {
		return fail(err)
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected content after schedule array: %v", tok)
		}
		return fail(err)
	}

	if s.Dropped > 0 {
		slog.Warn("input script exceeds schedule capacity",
			"path", path, "max_steps", MaxSteps, "dropped", s.Dropped)
	}
	for i, st := range s.Steps {
		slog.Debug("script step loaded",
			"step", i, "frame", st.Frame, "action", uint(st.Action),
			"param_num", st.ParamNum, "param_str", st.ParamStr)
	}
	return s, nil
}

func parseObject(dec *json.Decoder, ctx *parseContext, s *Script) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected step object, got %v", tok)
	}

	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := key.(string)
		if !ok {
			return fmt.Errorf("expected member name, got %v", key)
		}
		ctx.member(name)

		if err := parseValue(dec, ctx); err != nil {
			return err
		}
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	ctx.commit(s)
	return nil
}

func parseValue(dec *json.Decoder, ctx *parseContext) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch v := tok.(type) {
	case json.Delim:
		// A nested structure, necessarily under a member this format does
		// not define. Consume it whole so the field cursor stays in sync.
		ctx.field = fieldNone
		return skipNested(dec)
	case json.Number:
		ctx.number(v)
	case string:
		ctx.str(v)
	default:
		// booleans and nulls have no matching field
		ctx.field = fieldNone
	}
	return nil
}

// skipNested consumes the remainder of a nested array or object whose
// opening delimiter has already been read.
func skipNested(dec *json.Decoder) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// member records which step field the next value populates. Unknown member
// names leave no field active, so their values are discarded.
func (c *parseContext) member(name string) {
	switch name {
	case "frame":
		c.field = fieldFrame
	case "action":
		c.field = fieldAction
	case "param_num":
		c.field = fieldParamNum
	case "param_str":
		c.field = fieldParamStr
	default:
		c.field = fieldNone
	}
}

// number stores a numeric value into the active field. Numbers arriving
// while no numeric field is active are discarded, as are values that do not
// parse as unsigned integers.
func (c *parseContext) number(v json.Number) {
	u, err := strconv.ParseUint(v.String(), 10, 64)
	if err == nil {
		switch c.field {
		case fieldFrame:
			c.frame = u
			c.frameSet = true
		case fieldAction:
			c.action = uint(u)
		case fieldParamNum:
			c.paramNum = uint(u)
		}
	}
	c.field = fieldNone
}

// str stores a string value, truncated to the step's capacity. The previous
// buffer, if any, is replaced.
func (c *parseContext) str(v string) {
	if c.field == fieldParamStr && v != "" {
		if len(v) > MaxParamStr {
			v = v[:MaxParamStr]
		}
		c.paramStr = v
	}
	c.field = fieldNone
}

// commit normalizes the current object into a Step and resets the context
// for the next one. A step with no explicit frame inherits the previous
// step's frame plus DefaultFrameGap; steps past capacity are counted and
// discarded while the parse continues, so an oversized file still reports
// syntax errors faithfully.
func (c *parseContext) commit(s *Script) {
	frame := c.frame
	if !c.frameSet {
		if c.havePrev {
			frame = c.prevFrame + DefaultFrameGap
		} else {
			// Nothing to default from. Schedule at 0 rather than
			// rejecting the whole file.
			slog.Warn("first script step has no frame, scheduling at 0")
			frame = 0
		}
	}

	if len(s.Steps) < MaxSteps {
		s.Steps = append(s.Steps, Step{
			Frame:    frame,
			Action:   Action(c.action),
			ParamNum: c.paramNum,
			ParamStr: c.paramStr,
		})
	} else {
		s.Dropped++
	}

	c.prevFrame = frame
	c.havePrev = true
	c.field = fieldNone
	c.frameSet = false
	c.frame = 0
	c.action = 0
	c.paramNum = 0
	c.paramStr = ""
}

const excerptRadius = 20

func newParseError(path string, data []byte, offset int64, err error) *ParseError {
	// A json.SyntaxError carries its own offset, which is more precise
	// than the decoder's read position.
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		offset = syn.Offset
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset < 0 {
		offset = 0
	}

	line := 1 + bytes.Count(data[:offset], []byte{'\n'})
	column := int(offset) - bytes.LastIndexByte(data[:offset], '\n')

	start := int(offset) - excerptRadius
	if start < 0 {
		start = 0
	}
	end := int(offset) + excerptRadius
	if end > len(data) {
		end = len(data)
	}

	return &ParseError{
		Path:    path,
		Line:    line,
		Column:  column,
		Offset:  offset,
		Excerpt: string(data[start:end]),
		Err:     err,
	}
}
