// Package export renders shift reports as CSV, XLSX or plain rows for Sheets
package export

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	pointLinkBase = "https://www.google.com/maps/search/?api=1&query="
	embedMapBase  = "https://maps.google.com/maps"
)

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// PointLink returns a Google Maps search link for the coordinates, or "" when
// either is missing
func PointLink(lat, lng *float64) string {
	if lat == nil || lng == nil {
		return ""
	}
	return pointLinkBase + formatCoord(*lat) + "," + formatCoord(*lng)
}

// EmbedMapURL returns an embeddable map centred on the coordinates with
// labels in lang, or "" when either is missing
func EmbedMapURL(lat, lng *float64, lang string) string {
	if lat == nil || lng == nil {
		return ""
	}
	return fmt.Sprintf("%s?q=%s,%s&hl=%s&z=15&ie=UTF8&iwloc=near&output=embed",
		embedMapBase, formatCoord(*lat), formatCoord(*lng), url.QueryEscape(lang))
}
