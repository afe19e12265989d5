package core

// ExportHeader is the first row of every monthly export.
var ExportHeader = []string{"date", "item_name", "item_type", "quantity", "unit_price", "line_total"}

// Record renders the line as an export row, numbers as plain decimals.
func (l Line) Record() []string {
	return []string{
		l.EntryDate,
		l.ItemName,
		l.ItemType.String(),
		FormatPlain(l.Quantity),
		FormatPlain(l.UnitPrice),
		FormatDecimal(l.LineTotal),
	}
}

// ExportRecords returns the header followed by one row per line.
func ExportRecords(lines []Line) [][]string {
	out := make([][]string, 0, len(lines)+1)
	out = append(out, ExportHeader)
	for _, l := range lines {
		out = append(out, l.Record())
	}
	return out
}
