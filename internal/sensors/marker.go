package sensors

import (
	"fmt"
	"html"
	"strings"
)

var gripColors = map[string]string{
	"GOOD":    "#28a745",
	"FAIR":    "#ffc107",
	"POOR":    "#dc3545",
	"UNKNOWN": "#6c757d",
}

const markerTemplate = `<div style="display: flex; align-items: center; white-space: nowrap;">` +
	`<div style="width: 12px; height: 12px; background-color: %s; border-radius: 50%%; margin-right: 5px; border: 2px solid %s; box-shadow: 0 0 2px rgba(0,0,0,0.5);"></div>` +
	`<span style="font-size: 12px; color: %s; font-weight: bold; text-shadow: 0 0 2px %s;">%s</span>` +
	`</div>`

// GripColor returns the marker color for a grip label, case-insensitively.
func GripColor(grip string) string {
	if c, ok := gripColors[strings.ToUpper(strings.TrimSpace(grip))]; ok {
		return c
	}
	return gripColors["UNKNOWN"]
}

// MarkerIcon renders the HTML snippet a map uses to pin a sensor.
func MarkerIcon(grip string, dark bool) string {
	textColor, shadowColor := "#333", "#fff"
	if dark {
		textColor, shadowColor = "#e0e0e0", "#333"
	}
	return fmt.Sprintf(markerTemplate, GripColor(grip), shadowColor, textColor, shadowColor, html.EscapeString(grip))
}
