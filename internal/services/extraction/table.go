package extraction

// Row is one line of the displayed result.
type Row struct {
	Measure string `json:"measure"`
	Value   string `json:"value"`
}

// Table is an ordered list of rows, rendered top to bottom.
type Table []Row

// KnownMeasures are the fields the prompt asks for, in display order.
var KnownMeasures = []string{"Company Name", "Stock Symbol", "Revenue", "Net Income", "EPS"}

// FallbackTable returns the five known measures with empty values.
func FallbackTable() Table {
	t := make(Table, 0, len(KnownMeasures))
	for _, m := range KnownMeasures {
		t = append(t, Row{Measure: m})
	}
	return t
}

// TableFromFields keeps the order of fields.
func TableFromFields(fields []Field) Table {
	t := make(Table, 0, len(fields))
	for _, f := range fields {
		t = append(t, Row{Measure: f.Key, Value: f.Value})
	}
	return t
}

// Value returns the value for measure and whether the row exists.
func (t Table) Value(measure string) (string, bool) {
	for _, r := range t {
		if r.Measure == measure {
			return r.Value, true
		}
	}
	return "", false
}
