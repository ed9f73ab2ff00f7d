// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package arsc

import "testing"

func TestValueResolveSimple(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want ResourceValue
	}{
		{"null", Value{Type: ValueNull}, NullValue{}},
		{"reference", Value{Type: ValueReference, Data: 0x7f010000}, ReferenceValue{ID: NewID(0x7f, 0x01, 0x0000)}},
		{"boolean true", Value{Type: ValueIntBoolean, Data: 1}, BooleanValue{B: true}},
		{"boolean false", Value{Type: ValueIntBoolean, Data: 0}, BooleanValue{B: false}},
		{"int dec", Value{Type: ValueIntDec, Data: 42}, IntDecValue{N: 42}},
		{"int hex", Value{Type: ValueIntHex, Data: 0xff}, IntHexValue{N: 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.Resolve(nil)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestValueResolveStringRequiresPool(t *testing.T) {
	v := Value{Type: ValueString, Data: 0}
	if _, err := v.Resolve(nil); err == nil {
		t.Errorf("Resolve() of a String value with a nil pool should fail")
	}
}

func TestValueResolveUnknownType(t *testing.T) {
	v := Value{Type: ValueType(0x99)}
	if _, err := v.Resolve(nil); err == nil {
		t.Errorf("Resolve() of an unrecognized type tag should fail")
	}
}

func TestComplexToFloat(t *testing.T) {
	tests := []struct {
		complex uint32
		want    float32
	}{
		{0x00000000, 0},
		{0x00000100, 1}, // mantissa=0x100, radix 0 => 1/256 * 256 = 1
	}
	for _, tt := range tests {
		if got := complexToFloat(tt.complex); got != tt.want {
			t.Errorf("complexToFloat(%#x) = %v, want %v", tt.complex, got, tt.want)
		}
	}
}

func TestValueResolveColorArgb8(t *testing.T) {
	v := Value{Type: ValueIntColorArgb8, Data: 0xff0000ff}
	got, err := v.Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	c, ok := got.(ColorArgb8Value)
	if !ok {
		t.Fatalf("Resolve() returned %T, want ColorArgb8Value", got)
	}
	if c.A != 1 || c.R != 0 || c.G != 0 || c.B != 1 {
		t.Errorf("ColorArgb8Value = %+v, want A=1 R=0 G=0 B=1", c)
	}
}
