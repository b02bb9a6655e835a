package emit

import (
	"bytes"
	"fmt"
)

const indentUnit = "    "

// Printer accumulates declaration text with a four-space indent
type Printer struct {
	indentLevel int
	buffer      bytes.Buffer
}

// NewPrinter creates an empty printer
func NewPrinter() *Printer {
	return &Printer{}
}

func (p *Printer) indent() {
	p.indentLevel++
}

func (p *Printer) dedent() {
	if p.indentLevel > 0 {
		p.indentLevel--
	}
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.indentLevel; i++ {
		p.buffer.WriteString(indentUnit)
	}
}

// Printl writes one indented line
func (p *Printer) Printl(format string, args ...interface{}) {
	p.writeIndent()
	fmt.Fprintf(&p.buffer, format, args...)
	p.buffer.WriteString("\n")
}

// Println writes an empty line
func (p *Printer) Println() {
	p.buffer.WriteString("\n")
}

// Block writes "header {", the body one level deeper, then "}" and a blank line
func (p *Printer) Block(header string, body func()) {
	p.Printl("%s {", header)
	p.indent()
	body()
	p.dedent()
	p.Printl("}")
	p.Println()
}

// String returns the accumulated text
func (p *Printer) String() string {
	return p.buffer.String()
}
