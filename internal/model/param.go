package model

// BoundedParameter is an in-memory Parameter. It is used where no live
// fitting session exists, e.g. when replaying a finished run from its
// output files, and by sessions that keep their state in plain structs.
type BoundedParameter struct {
	Name  string  `json:"name" yaml:"name"`
	Lower float64 `json:"min" yaml:"min"`
	Upper float64 `json:"max" yaml:"max"`
	Val   float64 `json:"val" yaml:"val"`
}

// NewBoundedParameter returns a parameter with the given bounds whose
// value starts at lo.
func NewBoundedParameter(name string, lo, hi float64) *BoundedParameter {
	return &BoundedParameter{Name: name, Lower: lo, Upper: hi, Val: lo}
}

func (p *BoundedParameter) FullName() string   { return p.Name }
func (p *BoundedParameter) Min() float64       { return p.Lower }
func (p *BoundedParameter) Max() float64       { return p.Upper }
func (p *BoundedParameter) Value() float64     { return p.Val }
func (p *BoundedParameter) SetValue(v float64) { p.Val = v }

// StaticModel is a Model backed by a fixed parameter list.
type StaticModel []Parameter

// ThawedParameters returns the model's parameters.
func (m StaticModel) ThawedParameters() []Parameter {
	return m
}
