/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package testutils

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/paintbox/pdfcore/core"
)

// lexer is a minimal PDF object tokenizer used only to build object fixtures
// for tests. Production reference resolution goes through core.ObjectSource,
// supplied by a Document; this type never touches that interface itself.
type lexer struct {
	reader *bufio.Reader
}

var (
	reReference       = regexp.MustCompile(`^\s*[-]*(\d+)\s+(\d+)\s+R`)
	reIndirectObject  = regexp.MustCompile(`(\d+)\s+(\d+)\s+obj`)
	reNumericPeek     = regexp.MustCompile(`^[\+-.]*([0-9.]+)`)
	reExponentialPeek = regexp.MustCompile(`^[\+-.]*([0-9.]+)[eE][\+-.]*([0-9.]+)`)
)

// newLexer creates a lexer reading object syntax out of txt.
func newLexer(txt string) *lexer {
	return &lexer{reader: bufio.NewReader(bytes.NewReader([]byte(txt)))}
}

func (lx *lexer) skipSpaces() {
	for {
		b, err := lx.reader.ReadByte()
		if err != nil {
			return
		}
		if !core.IsWhiteSpace(b) {
			lx.reader.UnreadByte()
			return
		}
	}
}

func (lx *lexer) parseName() (core.PdfObjectName, error) {
	var r bytes.Buffer
	started := false
	for {
		bb, err := lx.reader.Peek(1)
		if err != nil {
			break
		}
		if !started {
			if bb[0] != '/' {
				return core.PdfObjectName(r.String()), fmt.Errorf("invalid name: (%c)", bb[0])
			}
			started = true
			lx.reader.ReadByte()
			continue
		}
		if core.IsWhiteSpace(bb[0]) || bb[0] == '/' || bb[0] == '[' || bb[0] == '(' ||
			bb[0] == ']' || bb[0] == '<' || bb[0] == '>' {
			break
		}
		b, _ := lx.reader.ReadByte()
		r.WriteByte(b)
	}
	return core.PdfObjectName(r.String()), nil
}

func (lx *lexer) parseString() (*core.PdfObjectString, error) {
	lx.reader.ReadByte()

	var r bytes.Buffer
	depth := 1
	for {
		bb, err := lx.reader.Peek(1)
		if err != nil {
			return core.MakeString(r.String()), err
		}
		switch {
		case bb[0] == '\\':
			lx.reader.ReadByte()
			b, err := lx.reader.ReadByte()
			if err != nil {
				return core.MakeString(r.String()), err
			}
			switch b {
			case 'n':
				r.WriteRune('\n')
			case 'r':
				r.WriteRune('\r')
			case 't':
				r.WriteRune('\t')
			default:
				r.WriteByte(b)
			}
			continue
		case bb[0] == '(':
			depth++
		case bb[0] == ')':
			depth--
			if depth == 0 {
				lx.reader.ReadByte()
				return core.MakeString(r.String()), nil
			}
		}
		b, _ := lx.reader.ReadByte()
		r.WriteByte(b)
	}
}

func (lx *lexer) parseHexString() (*core.PdfObjectString, error) {
	lx.reader.ReadByte()

	var r bytes.Buffer
	for {
		bb, err := lx.reader.Peek(1)
		if err != nil {
			return core.MakeString(""), err
		}
		if bb[0] == '>' {
			lx.reader.ReadByte()
			break
		}
		b, _ := lx.reader.ReadByte()
		if !core.IsWhiteSpace(b) {
			r.WriteByte(b)
		}
	}
	if r.Len()%2 == 1 {
		r.WriteRune('0')
	}
	buf, _ := hex.DecodeString(r.String())
	return core.MakeHexString(string(buf)), nil
}

func (lx *lexer) parseArray() (*core.PdfObjectArray, error) {
	arr := core.MakeArray()
	lx.reader.ReadByte()
	for {
		lx.skipSpaces()
		bb, err := lx.reader.Peek(1)
		if err != nil {
			return arr, err
		}
		if bb[0] == ']' {
			lx.reader.ReadByte()
			break
		}
		obj, err := lx.parseObject()
		if err != nil {
			return arr, err
		}
		arr.Append(obj)
	}
	return arr, nil
}

func (lx *lexer) parseDict() (*core.PdfObjectDictionary, error) {
	dict := core.MakeDict()

	lx.reader.ReadByte()
	lx.reader.ReadByte()

	for {
		lx.skipSpaces()
		bb, err := lx.reader.Peek(2)
		if err != nil {
			return nil, err
		}
		if bb[0] == '>' && bb[1] == '>' {
			lx.reader.ReadByte()
			lx.reader.ReadByte()
			break
		}
		key, err := lx.parseName()
		if err != nil {
			return nil, err
		}
		lx.skipSpaces()
		val, err := lx.parseObject()
		if err != nil {
			return nil, err
		}
		dict.Set(key, val)
	}
	return dict, nil
}

func (lx *lexer) parseBool() (core.PdfObjectBool, error) {
	bb, err := lx.reader.Peek(4)
	if err == nil && string(bb[:4]) == "true" {
		lx.reader.Discard(4)
		return core.PdfObjectBool(true), nil
	}
	bb, err = lx.reader.Peek(5)
	if err == nil && string(bb[:5]) == "false" {
		lx.reader.Discard(5)
		return core.PdfObjectBool(false), nil
	}
	return core.PdfObjectBool(false), errors.New("unexpected boolean string")
}

func (lx *lexer) parseNull() (core.PdfObjectNull, error) {
	_, err := lx.reader.Discard(4)
	return core.PdfObjectNull{}, err
}

func (lx *lexer) parseObject() (core.PdfObject, error) {
	lx.skipSpaces()
	bb, err := lx.reader.Peek(2)
	if err != nil {
		if err != io.EOF || len(bb) == 0 {
			return nil, err
		}
		if len(bb) == 1 {
			bb = append(bb, ' ')
		}
	}

	switch {
	case bb[0] == '/':
		name, err := lx.parseName()
		return &name, err
	case bb[0] == '(':
		return lx.parseString()
	case bb[0] == '[':
		return lx.parseArray()
	case bb[0] == '<' && bb[1] == '<':
		return lx.parseDict()
	case bb[0] == '<':
		return lx.parseHexString()
	}

	peek, _ := lx.reader.Peek(15)
	peekStr := string(peek)

	switch {
	case len(peekStr) > 3 && peekStr[:4] == "null":
		n, err := lx.parseNull()
		return &n, err
	case len(peekStr) > 4 && peekStr[:5] == "false", len(peekStr) > 3 && peekStr[:4] == "true":
		b, err := lx.parseBool()
		return &b, err
	}

	if m := reReference.FindStringSubmatch(peekStr); len(m) > 1 {
		raw, _ := lx.reader.ReadBytes('R')
		m = reReference.FindStringSubmatch(string(raw))
		num, _ := strconv.ParseInt(m[1], 10, 64)
		gen, _ := strconv.ParseInt(m[2], 10, 64)
		return core.MakeReference(nil, num, gen), nil
	}
	if reExponentialPeek.MatchString(peekStr) || reNumericPeek.MatchString(peekStr) {
		return core.ParseNumber(lx.reader)
	}

	return nil, fmt.Errorf("object parsing error - unexpected pattern %q", peekStr)
}

// parseIndirectObject parses one "N G obj ... endobj" (or stream) block.
func (lx *lexer) parseIndirectObject() (core.PdfObject, error) {
	bb, err := lx.reader.Peek(20)
	if err != nil && err != io.EOF {
		return nil, err
	}

	indices := reIndirectObject.FindStringSubmatchIndex(string(bb))
	if len(indices) < 6 {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, errors.New("unable to detect indirect object signature")
	}
	lx.reader.Discard(indices[0])

	hlen := indices[1] - indices[0]
	hb := make([]byte, hlen)
	io.ReadFull(lx.reader, hb)

	result := reIndirectObject.FindStringSubmatch(string(hb))
	objNum, _ := strconv.ParseInt(result[1], 10, 64)
	genNum, _ := strconv.ParseInt(result[2], 10, 64)

	var direct core.PdfObject
	for {
		bb, err := lx.reader.Peek(2)
		if err != nil {
			return nil, err
		}
		switch {
		case core.IsWhiteSpace(bb[0]):
			lx.skipSpaces()
		case bb[0] == '<' && bb[1] == '<', bb[0] == '/', bb[0] == '(', bb[0] == '[':
			direct, err = lx.parseObject()
			if err != nil {
				return nil, err
			}
		case bb[0] == 's':
			peek, _ := lx.reader.Peek(6)
			if len(peek) == 6 && string(peek) == "stream" {
				lx.reader.Discard(6)
				lx.skipEOL()

				dict, isDict := direct.(*core.PdfObjectDictionary)
				if !isDict {
					return nil, errors.New("stream object missing dictionary")
				}
				lengthObj, _ := dict.Get("Length").(*core.PdfObjectInteger)
				if lengthObj == nil {
					return nil, errors.New("stream length needs to be an integer")
				}
				streamLen := int64(*lengthObj)

				data := make([]byte, streamLen)
				io.ReadFull(lx.reader, data)

				lx.skipSpaces()
				lx.reader.Discard(len("endstream"))
				lx.skipSpaces()
				lx.reader.Discard(len("endobj"))

				return &core.PdfObjectStream{
					PdfObjectReference:  core.PdfObjectReference{ObjectNumber: objNum, GenerationNumber: genNum},
					PdfObjectDictionary: dict,
					Stream:              data,
				}, nil
			}
			goto consumeEndobj
		default:
			goto consumeEndobj
		}
		continue
	consumeEndobj:
		line, _ := lx.readTextLine()
		if len(line) >= 6 && line[:6] == "endobj" {
			return &core.PdfIndirectObject{
				PdfObjectReference: core.PdfObjectReference{ObjectNumber: objNum, GenerationNumber: genNum},
				PdfObject:          direct,
			}, nil
		}
	}
}

func (lx *lexer) skipEOL() {
	bb, err := lx.reader.Peek(1)
	if err != nil {
		return
	}
	if bb[0] == '\r' {
		lx.reader.ReadByte()
		bb, err = lx.reader.Peek(1)
		if err == nil && bb[0] == '\n' {
			lx.reader.ReadByte()
		}
	} else if bb[0] == '\n' {
		lx.reader.ReadByte()
	}
}

func (lx *lexer) readTextLine() (string, error) {
	var r bytes.Buffer
	for {
		bb, err := lx.reader.Peek(1)
		if err != nil {
			return r.String(), err
		}
		if bb[0] == '\r' || bb[0] == '\n' {
			return r.String(), nil
		}
		b, _ := lx.reader.ReadByte()
		r.WriteByte(b)
	}
}

// ParseDict parses a single dictionary literal, e.g. "<< /Type /Font >>".
func ParseDict(txt string) (*core.PdfObjectDictionary, error) {
	lx := newLexer(txt)
	obj, err := lx.parseObject()
	if err != nil {
		return nil, err
	}
	dict, ok := obj.(*core.PdfObjectDictionary)
	if !ok {
		return nil, fmt.Errorf("not a dictionary: %T", obj)
	}
	return dict, nil
}

// ParseIndirectObjects parses a sequence of "N G obj ... endobj" blocks from
// rawpdf and resolves any references among them against each other.
func ParseIndirectObjects(rawpdf string) (map[int64]core.PdfObject, error) {
	lx := newLexer(rawpdf)

	objmap := map[int64]core.PdfObject{}
	for {
		obj, err := lx.parseIndirectObject()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		switch t := obj.(type) {
		case *core.PdfIndirectObject:
			objmap[t.ObjectNumber] = obj
		case *core.PdfObjectStream:
			objmap[t.ObjectNumber] = obj
		}
	}

	for _, obj := range objmap {
		resolveReferences(obj, objmap)
	}

	return objmap, nil
}

// resolveReferences traverses obj and replaces references with the
// corresponding object from objmap, in place.
func resolveReferences(obj core.PdfObject, objmap map[int64]core.PdfObject) error {
	switch t := obj.(type) {
	case *core.PdfIndirectObject:
		resolveReferences(t.PdfObject, objmap)
	case *core.PdfObjectDictionary:
		for _, key := range t.Keys() {
			val := t.Get(key)
			if ref, isRef := val.(*core.PdfObjectReference); isRef {
				replace, ok := objmap[ref.ObjectNumber]
				if !ok {
					return errors.New("reference to outside object")
				}
				t.Set(key, replace)
			} else {
				resolveReferences(val, objmap)
			}
		}
	case *core.PdfObjectArray:
		for i, val := range t.Elements() {
			if ref, isRef := val.(*core.PdfObjectReference); isRef {
				replace, ok := objmap[ref.ObjectNumber]
				if !ok {
					return errors.New("reference to outside object")
				}
				t.Set(i, replace)
			} else {
				resolveReferences(val, objmap)
			}
		}
	}
	return nil
}
