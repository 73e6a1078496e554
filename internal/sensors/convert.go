package sensors

import (
	"math"
	"strconv"
	"strings"
)

var conditionCodes = map[string]Condition{
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
}

// ConditionFromCode maps a displayed condition code to its name.
// Unrecognized codes map to ConditionUnknown.
func ConditionFromCode(code string) Condition {
	if c, ok := conditionCodes[code]; ok {
		return c
	}
	return ConditionUnknown
}

// CelsiusToFahrenheit parses a string-encoded Celsius value and converts it,
// rounding halves up. ok is false when the value is not a finite number.
func CelsiusToFahrenheit(celsius string) (f int, ok bool) {
	c, err := strconv.ParseFloat(strings.TrimSpace(celsius), 64)
	if err != nil || math.IsNaN(c) || math.IsInf(c, 0) {
		return 0, false
	}
	return int(math.Floor(c*9/5 + 32 + 0.5)), true
}
