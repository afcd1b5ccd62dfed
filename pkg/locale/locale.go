// Package locale renders dates and times for display in the configured
// language and time zone.
package locale

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultTimezone is the zone all shift times are displayed in
const DefaultTimezone = "America/New_York"

var (
	supported = []language.Tag{language.English, language.Spanish}
	matcher   = language.NewMatcher(supported)
)

var spanishWeekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Formatter formats instants for one language in one zone
type Formatter struct {
	tag     language.Tag
	spanish bool
	loc     *time.Location
}

// New creates a formatter. lang is a BCP 47 tag matched against the
// supported languages (English, Spanish); tz is an IANA zone name.
func New(lang, tz string) (*Formatter, error) {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", tz, err)
	}

	tag := language.English
	if lang != "" {
		parsed, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", lang, err)
		}
		_, index, _ := matcher.Match(parsed)
		tag = supported[index]
	}

	return &Formatter{
		tag:     tag,
		spanish: tag == language.Spanish,
		loc:     loc,
	}, nil
}

// MustLoad returns the named zone and panics if it is unknown
func MustLoad(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		panic(err)
	}
	return loc
}

// Location returns the display zone
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Language returns the matched language tag
func (f *Formatter) Language() language.Tag {
	return f.tag
}

// IsSpanish reports whether output is rendered in Spanish
func (f *Formatter) IsSpanish() bool {
	return f.spanish
}

// Clock renders a 24-hour "15:04:05" wall-clock time
func (f *Formatter) Clock(t time.Time) string {
	return t.In(f.loc).Format("15:04:05")
}

// NumericDate renders month/day/year for English and day/month/year for
// Spanish, without zero padding
func (f *Formatter) NumericDate(t time.Time) string {
	local := t.In(f.loc)
	if f.spanish {
		return fmt.Sprintf("%d/%d/%d", local.Day(), int(local.Month()), local.Year())
	}
	return fmt.Sprintf("%d/%d/%d", int(local.Month()), local.Day(), local.Year())
}

// ShortDate renders a two-digit day with an abbreviated month
func (f *Formatter) ShortDate(t time.Time) string {
	local := t.In(f.loc)
	if f.spanish {
		month := []rune(spanishMonths[local.Month()-1])
		return fmt.Sprintf("%02d %s %d", local.Day(), string(month[:3]), local.Year())
	}
	return local.Format("Jan 02, 2006")
}

// LongDate renders weekday, day, month and year in full with the first
// letter capitalised
func (f *Formatter) LongDate(t time.Time) string {
	local := t.In(f.loc)
	var s string
	if f.spanish {
		s = fmt.Sprintf("%s, %d de %s de %d",
			spanishWeekdays[local.Weekday()], local.Day(), spanishMonths[local.Month()-1], local.Year())
	} else {
		s = local.Format("Monday, January 2, 2006")
	}
	return capitalizeFirstWord(s, f.tag)
}

func capitalizeFirstWord(s string, tag language.Tag) string {
	idx := strings.IndexByte(s, ' ')
	if idx < 0 {
		return cases.Title(tag).String(s)
	}
	return cases.Title(tag).String(s[:idx]) + s[idx:]
}
