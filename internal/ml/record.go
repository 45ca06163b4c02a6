package ml

import "strconv"

// Value is a single raw field value: either text or a number.
type Value struct {
	text    string
	number  float64
	numeric bool
}

func Text(s string) Value {
	return Value{text: s}
}

func Number(f float64) Value {
	return Value{number: f, numeric: true}
}

func (v Value) IsNumeric() bool {
	return v.numeric
}

func (v Value) Text() string {
	return v.text
}

func (v Value) Number() float64 {
	return v.number
}

func (v Value) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.number, 'g', -1, 64)
	}

	return v.text
}

type Field struct {
	Name  string
	Value Value
}

// Record is an ordered set of named raw values describing one customer.
type Record []Field

func (r Record) Get(name string) (Value, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}

	return Value{}, false
}

func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}

	return names
}
