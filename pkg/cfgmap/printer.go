// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cfgmap

import (
	"bytes"
	"fmt"
	"io"
)

// Printer writes a debugging view of an Item tree: one line per node with
// its kind, and the atom type and text for leaves.
type Printer struct {
	writer io.Writer
	opts   PrinterOpts
}

type PrinterOpts struct {
	ExcludeRefs bool
}

func NewPrinter(writer io.Writer) Printer {
	return Printer{writer, PrinterOpts{ExcludeRefs: true}}
}

func NewPrinterWithOpts(writer io.Writer, opts PrinterOpts) Printer {
	return Printer{writer, opts}
}

func (p Printer) Print(item *Item) {
	fmt.Fprintf(p.writer, "%s", p.PrintStr(item))
}

func (p Printer) PrintStr(item *Item) string {
	buf := new(bytes.Buffer)
	p.print(item, "", buf)
	return buf.String()
}

func (p Printer) print(item *Item, indent string, writer io.Writer) {
	const indentLvl = "    "

	switch item.kind {
	case KindMap:
		fmt.Fprintf(writer, "%smap%s\n", indent, p.ptrStr(item))
		item.fields.Iterate(func(k string, v *Item) {
			fmt.Fprintf(writer, "%skey=%s\n", indent, k)
			p.print(v, indent+indentLvl, writer)
		})

	case KindVector:
		fmt.Fprintf(writer, "%svector%s\n", indent, p.ptrStr(item))
		for idx, elem := range item.vector.items {
			fmt.Fprintf(writer, "%sidx=%d\n", indent, idx)
			p.print(elem, indent+indentLvl, writer)
		}

	case KindAtom:
		fmt.Fprintf(writer, "%satom(%s): '%s'%s\n", indent, item.atom.Type(), item.atom.Text(), p.ptrStr(item))

	default:
		fmt.Fprintf(writer, "%sunset%s\n", indent, p.ptrStr(item))
	}
}

func (p Printer) ptrStr(item *Item) string {
	if !p.opts.ExcludeRefs {
		return fmt.Sprintf(" (obj=%p)", item)
	}
	return ""
}
