// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"carvel.dev/cfgmap/pkg/cfgmap"
	json "github.com/goccy/go-json"
)

// parseJSON walks the token stream instead of decoding into Go maps so that
// key order and the exact text of numbers survive.
func parseJSON(data []byte, dst *cfgmap.Item) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("Expected a JSON value, but input was empty: %w", ErrFormat)
		}
		return fmt.Errorf("Unmarshaling JSON: %s", err)
	}
	if tok == nil {
		return fmt.Errorf("Expected root to be a scalar, array or object, but was null: %w", ErrFormat)
	}

	if _, err := convertJSON(dec, tok, dst); err != nil {
		return err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("Unmarshaling JSON: Expected a single top level value")
	}
	return nil
}

// convertJSON stores the value starting at tok into dst. It reports false
// when the value was null and dst was left untouched.
func convertJSON(dec *json.Decoder, tok json.Token, dst *cfgmap.Item) (bool, error) {
	switch typedTok := tok.(type) {
	case json.Delim:
		switch typedTok {
		case '{':
			return true, convertJSONObject(dec, dst)
		case '[':
			return true, convertJSONArray(dec, dst)
		default:
			return false, fmt.Errorf("Unmarshaling JSON: Unexpected delimiter '%s'", typedTok)
		}
	case string:
		return true, dst.SetRaw(typedTok)
	case json.Number:
		// number tokens alias the decoder buffer
		return true, dst.SetRaw(strings.Clone(typedTok.String()))
	case bool:
		return true, dst.SetRaw(strconv.FormatBool(typedTok))
	case float64:
		return true, dst.SetRaw(strconv.FormatFloat(typedTok, 'g', -1, 64))
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("Unmarshaling JSON: Unexpected token %T: %w", tok, ErrFormat)
	}
}

func convertJSONObject(dec *json.Decoder, dst *cfgmap.Item) error {
	m, err := dst.AsMap()
	if err != nil {
		return err
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("Unmarshaling JSON: %s", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("Unmarshaling JSON: Expected object key to be a string, but was %T", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("Unmarshaling JSON: %s", err)
		}

		existed := m.Has(key)
		child := m.Key(key)
		val := cfgmap.NewItem()
		present, err := convertJSON(dec, valTok, val)
		if err != nil {
			return err
		}
		switch {
		case present:
			*child = *val
		case !existed:
			m.Erase(key)
		}
	}

	return expectJSONDelim(dec, '}')
}

func convertJSONArray(dec *json.Decoder, dst *cfgmap.Item) error {
	vec, err := dst.AsVector()
	if err != nil {
		return err
	}

	for dec.More() {
		elem, err := dst.Index(vec.Len())
		if err != nil {
			return err
		}
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("Unmarshaling JSON: %s", err)
		}
		if _, err := convertJSON(dec, tok, elem); err != nil {
			return err
		}
	}

	return expectJSONDelim(dec, ']')
}

func expectJSONDelim(dec *json.Decoder, delim json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("Unmarshaling JSON: %s", err)
	}
	if tok != delim {
		return fmt.Errorf("Unmarshaling JSON: Expected '%s', but was '%v'", delim, tok)
	}
	return nil
}

type jsonWriter struct {
	buf    *bytes.Buffer
	indent string
}

func (w jsonWriter) write(item *cfgmap.Item, path string, depth int) error {
	switch item.Kind() {
	case cfgmap.KindAtom:
		atom, err := item.AsAtom()
		if err != nil {
			return err
		}
		return w.writeAtom(atom)

	case cfgmap.KindVector:
		elems := item.Elements()
		w.buf.WriteByte('[')
		for i, elem := range elems {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			w.newline(depth + 1)
			if err := w.write(elem, fmt.Sprintf("%s[%d]", path, i), depth+1); err != nil {
				return err
			}
		}
		if len(elems) > 0 {
			w.newline(depth)
		}
		w.buf.WriteByte(']')
		return nil

	case cfgmap.KindMap:
		m, err := item.AsMap()
		if err != nil {
			return err
		}
		w.buf.WriteByte('{')
		i := 0
		err = m.IterateErr(func(k string, v *cfgmap.Item) error {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			i++
			w.newline(depth + 1)
			if err := w.writeString(k); err != nil {
				return err
			}
			w.buf.WriteByte(':')
			if w.indent != "" {
				w.buf.WriteByte(' ')
			}
			return w.write(v, joinPath(path, k), depth+1)
		})
		if err != nil {
			return err
		}
		if i > 0 {
			w.newline(depth)
		}
		w.buf.WriteByte('}')
		return nil

	default:
		return fmt.Errorf("Dumping '%s': %w", path, ErrNotInitialized)
	}
}

func (w jsonWriter) writeAtom(atom *cfgmap.Atom) error {
	text := atom.Text()
	if text == "" {
		text = " "
	}
	if atom.Type() != cfgmap.TypeString && isBareJSON(text) {
		w.buf.WriteString(text)
		return nil
	}
	return w.writeString(text)
}

func (w jsonWriter) writeString(val string) error {
	bs, err := json.MarshalWithOption(val, json.DisableHTMLEscape())
	if err != nil {
		return err
	}
	w.buf.Write(bs)
	return nil
}

func (w jsonWriter) newline(depth int) {
	if w.indent == "" {
		return
	}
	w.buf.WriteByte('\n')
	w.buf.WriteString(strings.Repeat(w.indent, depth))
}

// isBareJSON reports whether text can be written unquoted as a JSON number
// or boolean and read back verbatim.
func isBareJSON(text string) bool {
	if text == "true" || text == "false" {
		return true
	}
	if text == "" || text != strings.TrimSpace(text) {
		return false
	}
	if !strings.ContainsAny(text[:1], "-0123456789") {
		return false
	}
	return json.Valid([]byte(text))
}
