package lang

import (
	"strconv"
)

// Kind identifies the dynamic type of a Val.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindDouble
	KindStr
	KindRec

	// Reserved for calendar arithmetic. No syntax or operator produces
	// these kinds yet.
	KindTimestamp
	KindDuration
)

// String returns the name of the kind as it appears in error messages.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindStr:
		return "str"
	case KindRec:
		return "rec"
	case KindTimestamp:
		return "timestamp"
	case KindDuration:
		return "duration"
	default:
		return "invalid"
	}
}

// Val is an evaluated value. The payload field selected by Kind is the
// only meaningful one. Records are held by pointer, so every Val produced
// from the same record literal evaluation shares one Record.
type Val struct {
	Kind   Kind
	Bool   bool
	Int    int64
	Double float64
	Str    string
	Rec    *Record
}

// NilVal returns the nil value.
func NilVal() Val { return Val{Kind: KindNil} }

// BoolVal returns a boolean value.
func BoolVal(b bool) Val { return Val{Kind: KindBool, Bool: b} }

// IntVal returns an integer value.
func IntVal(i int64) Val { return Val{Kind: KindInt, Int: i} }

// DoubleVal returns a double value.
func DoubleVal(f float64) Val { return Val{Kind: KindDouble, Double: f} }

// StrVal returns a string value.
func StrVal(s string) Val { return Val{Kind: KindStr, Str: s} }

// RecVal returns a record value sharing the given record.
func RecVal(r *Record) Val { return Val{Kind: KindRec, Rec: r} }

// TypeName returns the name of the value's type.
func (v Val) TypeName() string { return v.Kind.String() }

// Truthy reports the boolean interpretation of the value: zero numbers,
// empty strings, empty records, and nil are false.
func (v Val) Truthy() bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int != 0
	case KindDouble:
		return v.Double != 0
	case KindStr:
		return v.Str != ""
	case KindRec:
		return !v.Rec.IsEmpty()
	default:
		return false
	}
}

// Equal reports structural equality. Records compare by field contents,
// not identity.
func (v Val) Equal(w Val) bool {
	if v.Kind != w.Kind {
		return false
	}

	switch v.Kind {
	case KindNil:
		return true
	case KindBool:
		return v.Bool == w.Bool
	case KindInt:
		return v.Int == w.Int
	case KindDouble:
		return v.Double == w.Double
	case KindStr:
		return v.Str == w.Str
	case KindRec:
		return v.Rec.equal(w.Rec)
	default:
		return false
	}
}

// String renders scalar values in source syntax. Records render as the
// field count only; use FormatValue for a full rendering.
func (v Val) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindDouble:
		return strconv.FormatFloat(v.Double, 'g', -1, 64)
	case KindStr:
		return strconv.Quote(v.Str)
	case KindRec:
		return "rec[" + strconv.Itoa(v.Rec.Len()) + "]"
	default:
		return "<invalid>"
	}
}

// Record is a mapping of field names to evaluated values. Fields are
// recorded in the order they were first set, which the evaluator arranges
// to be declaration order.
type Record struct {
	fields map[string]Val
	names  []string
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{fields: make(map[string]Val)}
}

// Get returns the value of a field and whether it is set.
func (r *Record) Get(name string) (Val, bool) {
	v, ok := r.fields[name]

	return v, ok
}

// Set stores a field value. Setting an existing name replaces the value
// without changing its position.
func (r *Record) Set(name string, v Val) {
	if _, ok := r.fields[name]; !ok {
		r.names = append(r.names, name)
	}

	r.fields[name] = v
}

// Has reports whether a field is set.
func (r *Record) Has(name string) bool {
	_, ok := r.fields[name]

	return ok
}

// IsEmpty reports whether the record has no fields.
func (r *Record) IsEmpty() bool { return len(r.fields) == 0 }

// Len returns the number of fields.
func (r *Record) Len() int { return len(r.fields) }

// Names returns the field names in insertion order. The caller must not
// modify the returned slice.
func (r *Record) Names() []string { return r.names }

func (r *Record) equal(o *Record) bool {
	if r == o {
		return true
	}

	if r.Len() != o.Len() {
		return false
	}

	for name, v := range r.fields {
		w, ok := o.fields[name]
		if !ok || !v.Equal(w) {
			return false
		}
	}

	return true
}
