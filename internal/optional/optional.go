// Package optional gives the data model a way to represent "this field was
// never reported" distinctly from a zero value, as spec.md's
// FundamentalSnapshot requires ("Any field may be absent; absent ≠ zero").
package optional

// Float64 is a present-or-absent float64. The zero value is absent.
type Float64 struct {
	value   float64
	present bool
}

// Of returns a present Float64 wrapping v.
func Of(v float64) Float64 {
	return Float64{value: v, present: true}
}

// Get returns the wrapped value and whether it is present.
func (o Float64) Get() (float64, bool) {
	return o.value, o.present
}

// Present reports whether a value was supplied.
func (o Float64) Present() bool {
	return o.present
}

// OrZero returns the wrapped value, or 0 if absent.
func (o Float64) OrZero() float64 {
	return o.value
}
