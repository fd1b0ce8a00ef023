package data

import (
	"math"
	"reflect"
	"testing"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   float64
		wantOK bool
	}{
		{name: "float64", value: 3.5, want: 3.5, wantOK: true},
		{name: "int", value: 42, want: 42, wantOK: true},
		{name: "uint8", value: uint8(7), want: 7, wantOK: true},
		{name: "bool true", value: true, want: 1, wantOK: true},
		{name: "bool false", value: false, want: 0, wantOK: true},
		{name: "string", value: "x", want: 0, wantOK: false},
		{name: "nil", value: nil, want: 0, wantOK: false},
		{name: "slice", value: []int{1}, want: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Number(tt.value)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Number(%v) = %v, %v, want %v, %v", tt.value, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   string
		wantOK bool
	}{
		{name: "string", value: "a", want: "a", wantOK: true},
		{name: "int", value: 3, want: "3", wantOK: true},
		{name: "float", value: 2.5, want: "2.5", wantOK: true},
		{name: "bool", value: true, want: "true", wantOK: true},
		{name: "nil", value: nil, want: "", wantOK: false},
		{name: "map", value: map[string]int{}, want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := String(tt.value)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("String(%v) = %q, %v, want %q, %v", tt.value, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNumberFieldSkipsNaN(t *testing.T) {
	r := Record{"x": math.NaN()}
	if _, ok := NumberField(r, "x"); ok {
		t.Error("NumberField accepted NaN")
	}
	if _, ok := NumberField(r, "missing"); ok {
		t.Error("NumberField accepted a missing field")
	}
}

func TestContinuousDomain(t *testing.T) {
	tests := []struct {
		name    string
		rows    DataSource
		field   string
		wantMin float64
		wantMax float64
	}{
		{
			name:    "simple range",
			rows:    DataSource{{"x": 1.0}, {"x": 5.0}, {"x": 3.0}},
			field:   "x",
			wantMin: 1, wantMax: 5,
		},
		{
			name:    "skips missing and non-numeric",
			rows:    DataSource{{"x": 2.0}, {"y": 9.0}, {"x": "oops"}, {"x": 4.0}},
			field:   "x",
			wantMin: 2, wantMax: 4,
		},
		{
			name:    "skips NaN",
			rows:    DataSource{{"x": math.NaN()}, {"x": 1.0}, {"x": 2.0}},
			field:   "x",
			wantMin: 1, wantMax: 2,
		},
		{
			name:    "no values defaults to unit interval",
			rows:    DataSource{{"y": 1.0}},
			field:   "x",
			wantMin: 0, wantMax: 1,
		},
		{
			name:    "degenerate expands by one",
			rows:    DataSource{{"x": 7.0}, {"x": 7.0}},
			field:   "x",
			wantMin: 6, wantMax: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := ContinuousDomain(tt.rows, tt.field)
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("ContinuousDomain() = [%v, %v], want [%v, %v]", min, max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestExpandDomain(t *testing.T) {
	min, max := ExpandDomain(0, 10, 0.05)
	if min != -0.5 || max != 10.5 {
		t.Errorf("ExpandDomain(0, 10, 0.05) = [%v, %v], want [-0.5, 10.5]", min, max)
	}
}

func TestDiscreteDomainSortedAndDistinct(t *testing.T) {
	rows := DataSource{
		{"cat": "banana"},
		{"cat": "apple"},
		{"cat": "banana"},
		{"cat": 10},
		{"other": "x"},
		{"cat": 2},
	}

	got := DiscreteDomain(rows, "cat")
	want := []string{"10", "2", "apple", "banana"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiscreteDomain() = %v, want %v", got, want)
	}
}

func TestDiscreteDomainEmpty(t *testing.T) {
	if got := DiscreteDomain(DataSource{{"x": 1}}, "cat"); len(got) != 0 {
		t.Errorf("DiscreteDomain() = %v, want empty", got)
	}
}
