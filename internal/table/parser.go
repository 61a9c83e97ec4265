// Package table parses the weekly availability tables exported by the
// campus scheduling system. The format is comma separated text with a
// header line and one row per room/weekday/time-slot/status tuple:
//
//	场地,星期,时间段,状态
//	正心101,星期一,"1,2",空闲
//
// Time-slot codes contain a comma, so the export quotes that field.
// The parser is deliberately lenient: malformed rows are dropped and
// unterminated quotes consume the rest of the line as literal text.
package table

import "strings"

// Status values used in the exported tables.
const (
	StatusFree     = "空闲"
	StatusOccupied = "占用"
)

// HeaderToken is a field name that every valid table header contains.
// Fetched content missing it is treated as garbage upstream.
const HeaderToken = "场地"

// Record is one row of an availability table.
type Record struct {
	RoomName string
	Weekday  string
	TimeSlot string
	Status   string
}

// Free reports whether the record marks the room as free.
func (r Record) Free() bool {
	return r.Status == StatusFree
}

// Parse converts raw table text into records. The first line is the
// header and is discarded. Blank lines and rows with fewer than four
// fields are skipped silently. Parse never fails; worthless input
// yields an empty slice.
func Parse(raw string) []Record {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) <= 1 {
		return nil
	}

	records := make([]Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := splitLine(line)
		if len(fields) < 4 {
			continue
		}

		records = append(records, Record{
			RoomName: fields[0],
			Weekday:  fields[1],
			TimeSlot: fields[2],
			Status:   fields[3],
		})
	}

	return records
}

// splitLine splits one table line on commas, treating double quotes as
// literal-span toggles. Quotes are not part of the field value and each
// field is trimmed of surrounding whitespace. An unterminated quote
// consumes the remainder of the line rather than failing.
func splitLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}
