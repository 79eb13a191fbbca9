// Package csvdata parses and serializes the CSV tables that back the
// marketplace catalog. The parser mirrors the behavior the data files were
// written against: RFC 4180 quoting, trimmed values, and per-row recovery
// instead of aborting the whole file.
package csvdata

import (
	"errors"
	"log/slog"
	"strings"
)

// ErrFormat reports a CSV document that cannot be parsed at all, such as a
// missing or empty header row.
var ErrFormat = errors.New("malformed csv")

// Row maps header names to field values for a single record.
type Row map[string]string

// Table is an ordered CSV document: a header row plus data rows. Row values
// are keyed by header name; Headers preserves column order.
type Table struct {
	Headers []string
	Rows    []Row
}

// Parser converts raw CSV text into Tables, logging recovered rows.
type Parser struct {
	log *slog.Logger
}

// NewParser creates a parser. A nil logger falls back to slog.Default.
func NewParser(log *slog.Logger) *Parser {
	if log == nil {
		log = slog.Default()
	}
	return &Parser{log: log}
}

// Parse converts CSV text into a Table.
//
// Quoted fields may contain commas, newlines and escaped quotes (""). Values
// are trimmed of surrounding whitespace. Blank records are dropped. A record
// with more fields than headers is skipped with a warning; a short record is
// padded with empty values. A document without a header row and at least one
// data row fails with ErrFormat.
func (p *Parser) Parse(text string) (*Table, error) {
	records := splitRecords(strings.TrimSpace(text))
	if len(records) < 2 {
		return nil, ErrFormat
	}

	headers := parseRecord(records[0])
	empty := true
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
		if headers[i] != "" {
			empty = false
		}
	}
	if len(headers) == 0 || empty {
		return nil, ErrFormat
	}

	table := &Table{Headers: headers}

	for i, record := range records[1:] {
		if strings.TrimSpace(record) == "" {
			continue
		}

		values := parseRecord(record)
		if len(values) > len(headers) {
			p.log.Warn("skipping csv row with too many fields",
				"line", i+2,
				"fields", len(values),
				"headers", len(headers),
			)
			continue
		}

		row := make(Row, len(headers))
		blank := true
		for j, header := range headers {
			value := ""
			if j < len(values) {
				value = strings.TrimSpace(values[j])
			}
			row[header] = value
			if value != "" {
				blank = false
			}
		}
		if blank {
			continue
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// splitRecords splits CSV text into records on newlines that are not inside
// a quoted field.
func splitRecords(text string) []string {
	var records []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			current.WriteByte(c)
		case c == '\n' && !inQuotes:
			records = append(records, strings.TrimSuffix(current.String(), "\r"))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	records = append(records, strings.TrimSuffix(current.String(), "\r"))

	return records
}

// parseRecord splits a single record into fields, walking the record
// character by character with an in-quotes flag. A doubled quote inside a
// quoted field is a literal quote.
func parseRecord(record string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(record); i++ {
		c := record[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(record) && record[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	fields = append(fields, current.String())

	return fields
}

// Serialize renders the table back to CSV text, quoting fields that contain
// commas, quotes or newlines. Parse(Serialize(t)) reproduces t for tables
// whose values carry no surrounding whitespace.
func (t *Table) Serialize() string {
	var b strings.Builder

	writeRecord(&b, t.Headers)
	for _, row := range t.Rows {
		b.WriteByte('\n')
		values := make([]string, len(t.Headers))
		for i, header := range t.Headers {
			values[i] = row[header]
		}
		writeRecord(&b, values)
	}

	return b.String()
}

func writeRecord(b *strings.Builder, values []string) {
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quoteField(v))
	}
}

func quoteField(v string) string {
	if !strings.ContainsAny(v, ",\"\n") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
