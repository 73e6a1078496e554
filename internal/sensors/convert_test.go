package sensors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCelsiusToFahrenheit(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"0", 32, true},
		{"100", 212, true},
		{"19.31", 67, true},
		{"-40", -40, true},
		{" 19.87 ", 68, true},
		{"-17.5", 1, true}, // 0.5 rounds up
		{"", 0, false},
		{"n/a", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}

	for _, tt := range tests {
		got, ok := CelsiusToFahrenheit(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}

func TestConditionFromCode(t *testing.T) {
	tests := map[string]Condition{
		"0":  ConditionUnknown,
		"1":  ConditionDry,
		"2":  ConditionDamp,
		"3":  ConditionWet,
		"4":  ConditionSnow,
		"5":  ConditionIce,
		"6":  ConditionStandingWater,
		"7":  ConditionDeepSnow,
		"8":  ConditionBlackIce,
		"9":  ConditionError,
		"10": ConditionError,
		"99": ConditionUnknown,
		"":   ConditionUnknown,
		"03": ConditionUnknown,
	}

	for code, want := range tests {
		assert.Equal(t, want, ConditionFromCode(code), "code %q", code)
	}
}

func TestMarkerIcon(t *testing.T) {
	light := MarkerIcon("good", false)
	assert.Contains(t, light, "background-color: #28a745")
	assert.Contains(t, light, "color: #333;")
	assert.Contains(t, light, "border: 2px solid #fff")
	assert.Contains(t, light, ">good</span>")

	dark := MarkerIcon("POOR", true)
	assert.Contains(t, dark, "background-color: #dc3545")
	assert.Contains(t, dark, "color: #e0e0e0;")
	assert.Contains(t, dark, "border: 2px solid #333")

	assert.Equal(t, "#6c757d", GripColor("slick"))
	assert.Equal(t, "#ffc107", GripColor(" Fair "))

	escaped := MarkerIcon("<b>", false)
	assert.False(t, strings.Contains(escaped, "<b>"))
	assert.Contains(t, escaped, "&lt;b&gt;")
}
