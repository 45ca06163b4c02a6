package ml

import "slices"

// FillPolicy says how a schema column gets its value from a raw record.
type FillPolicy int

const (
	// FillZero columns have no source in the record and are always 0.
	FillZero FillPolicy = iota
	// FillBinary columns hold the binary code of the same-named field.
	FillBinary
	// FillDummy columns are 1 when the field equals the column category.
	FillDummy
	// FillPassthrough columns copy the numeric value of the same-named field.
	FillPassthrough
)

func (p FillPolicy) String() string {
	switch p {
	case FillBinary:
		return "binary"
	case FillDummy:
		return "dummy"
	case FillPassthrough:
		return "passthrough"
	default:
		return "zero"
	}
}

type Column struct {
	Name     string
	Policy   FillPolicy
	Field    string
	Category string
}

// Schema is the ordered column contract of the model input.
type Schema struct {
	columns   []Column
	encodings BinaryEncodings
	index     map[string]int
}

// NewSchema derives the fill policy of every column once. fields lists the
// raw record fields the service accepts.
func NewSchema(columns []string, fields []string, encodings BinaryEncodings) Schema {
	s := Schema{
		columns:   make([]Column, len(columns)),
		encodings: encodings,
		index:     make(map[string]int, len(columns)),
	}

	for i, name := range columns {
		s.index[name] = i
		s.columns[i] = classify(name, fields, encodings)
	}

	return s
}

func classify(name string, fields []string, encodings BinaryEncodings) Column {
	col := Column{Name: name, Policy: FillZero}

	switch {
	case encodings.Has(name):
		col.Policy = FillBinary
		col.Field = name
	case slices.Contains(fields, name):
		col.Policy = FillPassthrough
		col.Field = name
	default:
		field, ok := dummyField(name, fields)
		if !ok {
			return col
		}

		col.Field = field

		// A binary-coded field never produces dummies.
		if !encodings.Has(field) {
			col.Policy = FillDummy
			col.Category = name[len(field)+1:]
		}
	}

	return col
}

func (s Schema) Len() int {
	return len(s.columns)
}

func (s Schema) Columns() []Column {
	return slices.Clone(s.columns)
}

func (s Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}

	return names
}

func (s Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

func (s Schema) Encodings() BinaryEncodings {
	return s.encodings
}
