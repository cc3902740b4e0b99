package nbv

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dd0wney/cluso-tck/pkg/value"
)

// placeholderPattern matches a cell that refers to a scenario variable: <[name]>
var placeholderPattern = regexp.MustCompile(`^<\[(\w+)\]>$`)

// ParseTable parses a pipe-delimited table. The first line holds the column
// names; every following line is a row whose cells are parsed as literals.
// A cell of the form <[name]> is replaced by variables[name] before parsing.
func (p *Parser) ParseTable(text string, variables map[string]string) (*value.DataSet, error) {
	lines := tableLines(text)
	if len(lines) == 0 {
		return nil, newError(ErrMalformedTable).detail("no header line").build()
	}

	header, err := splitCells(lines[0])
	if err != nil {
		return nil, err
	}
	columns := make([]string, len(header))
	for i, cell := range header {
		columns[i] = cell.text
	}

	rows := make([]value.Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cells, err := splitCells(line)
		if err != nil {
			return nil, err
		}
		if len(cells) != len(columns) {
			return nil, newError(ErrMalformedTable).
				span(line.text, line.pos, line.number, 1).
				detail("row has %d cells, header has %d", len(cells), len(columns)).build()
		}

		row := make(value.Row, len(cells))
		for i, cell := range cells {
			v, err := p.parseCell(cell, variables)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %q: %w", line.number, columns[i], err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}

	ds, err := value.NewDataSet(columns, rows...)
	if err != nil {
		if errors.Is(err, value.ErrDuplicateColumn) || errors.Is(err, value.ErrEmptyColumn) {
			return nil, newError(ErrMalformedTable).
				span(lines[0].text, lines[0].pos, lines[0].number, 1).
				detail("%v", err).build()
		}
		return nil, err
	}
	return ds, nil
}

// ParseTable parses a table with a default parser
func ParseTable(text string, variables map[string]string) (*value.DataSet, error) {
	return NewParser().ParseTable(text, variables)
}

// Substitute resolves a <[name]> cell against variables. Cells that are not
// placeholders are returned unchanged.
func Substitute(cell string, variables map[string]string) (string, error) {
	m := placeholderPattern.FindStringSubmatch(strings.TrimSpace(cell))
	if m == nil {
		return cell, nil
	}
	literal, ok := variables[m[1]]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownVariable, m[1])
	}
	return literal, nil
}

func (p *Parser) parseCell(c tableCell, variables map[string]string) (value.Value, error) {
	text, err := Substitute(c.text, variables)
	if err != nil {
		return value.Value{}, newError(ErrUnknownVariable).
			span(c.text, c.pos, c.line, c.column).build()
	}

	v, err := p.Parse(text)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) && text == c.text {
			// shift positions from cell-relative to table-relative
			pe.Pos += c.pos
			if pe.Line == 1 {
				pe.Column += c.column - 1
			}
			pe.Line += c.line - 1
		}
		return value.Value{}, err
	}
	return v, nil
}

type tableLine struct {
	text   string
	pos    int // byte offset of the line in the table text
	number int // 1-based
}

type tableCell struct {
	text   string
	pos    int
	line   int
	column int
}

// tableLines returns the non-blank lines of text
func tableLines(text string) []tableLine {
	lines := make([]tableLine, 0)
	pos := 0
	for i, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) != "" {
			lines = append(lines, tableLine{text: strings.TrimRight(raw, "\r"), pos: pos, number: i + 1})
		}
		pos += len(raw) + 1
	}
	return lines
}

// splitCells splits | a | b | into trimmed cells. Pipes inside quoted strings
// do not split.
func splitCells(line tableLine) ([]tableCell, error) {
	trimmed := strings.TrimSpace(line.text)
	if !strings.HasPrefix(trimmed, "|") || !strings.HasSuffix(trimmed, "|") || len(trimmed) < 2 {
		return nil, newError(ErrMalformedTable).
			span(line.text, line.pos, line.number, 1).
			detail("table lines must start and end with '|'").build()
	}
	offset := strings.Index(line.text, "|")

	cells := make([]tableCell, 0)
	start := offset + 1
	var quote byte
	for i := start; i < len(line.text); i++ {
		ch := line.text[i]
		switch {
		case quote != 0 && ch == '\\':
			i++
		case quote != 0 && ch == quote:
			quote = 0
		case quote == 0 && (ch == '\'' || ch == '"'):
			quote = ch
		case quote == 0 && ch == '|':
			cells = append(cells, makeCell(line, start, i))
			start = i + 1
		}
	}
	if quote != 0 {
		return nil, newError(ErrUnterminatedString).
			span(line.text[offset:], line.pos+offset, line.number, offset+1).build()
	}
	return cells, nil
}

func makeCell(line tableLine, start, end int) tableCell {
	raw := line.text[start:end]
	lead := len(raw) - len(strings.TrimLeft(raw, " \t"))
	return tableCell{
		text:   strings.TrimSpace(raw),
		pos:    line.pos + start + lead,
		line:   line.number,
		column: start + lead + 1,
	}
}
