package normalize

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cast"
)

type resolveMode int

const (
	// firstTruthy skips null, "", 0 and false
	firstTruthy resolveMode = iota
	// firstPresent skips only missing and null values
	firstPresent
)

// field lists the raw key names an output value may arrive under, in
// precedence order
type field struct {
	keys []string
	mode resolveMode
}

func truthy(keys ...string) field  { return field{keys: keys, mode: firstTruthy} }
func present(keys ...string) field { return field{keys: keys, mode: firstPresent} }

// lookup returns the first value selected by the field's mode
func (f field) lookup(rec Record) (any, bool) {
	for _, key := range f.keys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		if f.mode == firstTruthy && !IsTruthy(v) {
			continue
		}
		return v, true
	}
	return nil, false
}

// str resolves the field as a string, falling back to def
func (f field) str(rec Record, def string) string {
	v, ok := f.lookup(rec)
	if !ok {
		return def
	}
	s := toString(v)
	if s == "" {
		return def
	}
	return s
}

// shiftFields is the mapping table for history records
var shiftFields = struct {
	ID, UserID, UserName, UserRole, UserEmail      field
	Start, End, Date, EndDate, Status              field
	Duration, Seconds                              field
	CommentStart, CommentEnd                       field
	Latitude, Longitude, LatitudeEnd, LongitudeEnd field
}{
	ID:        truthy("id"),
	UserID:    truthy("user_id"),
	UserName:  truthy("user_name", "nombre", "name"),
	UserRole:  truthy("user_role", "rol", "role"),
	UserEmail: truthy("user_email", "email"),

	Start:   truthy("start_time", "timestamp_start", "fecha"),
	End:     truthy("end_time", "timestamp_end"),
	Date:    truthy("fecha"),
	EndDate: truthy("fecha_fin"),
	Status:  truthy("status"),

	Duration: truthy("duration"),
	Seconds:  truthy("seconds"),

	CommentStart: truthy("comentario_inicio", "comentario_entrada", "check_in_comment"),
	CommentEnd:   truthy("comentario_fin", "comentario_final", "comentario_salida", "check_out_comment"),

	// "latidude" is a misspelling the backend has been seen to emit
	Latitude:     present("latidude", "latitude", "lat", "latitud", "start_lat", "ubicacion_inicio_lat"),
	Longitude:    present("longitude", "lng", "longitud", "start_lng", "ubicacion_inicio_lng"),
	LatitudeEnd:  present("latidude_final", "latitude_end", "lat_end", "latitud_fin", "end_lat", "ubicacion_fin_lat"),
	LongitudeEnd: present("longitude_final", "longitude_end", "lng_end", "longitud_fin", "end_lng", "ubicacion_fin_lng"),
}

// userFields is the mapping table for account records
var userFields = struct {
	ID, Name, ListName, Email, Role field
	Subaccount, ListSubaccount      field
	Phone, Avatar                   field
}{
	ID:             truthy("id", "user_id"),
	Name:           truthy("nombre", "name", "user_name"),
	ListName:       truthy("nombre", "name", "user_name", "email"),
	Email:          truthy("email", "user_email"),
	Role:           truthy("rol", "role"),
	Subaccount:     truthy("id_subcuenta", "subaccount_id", "id_sub", "subcuenta"),
	ListSubaccount: truthy("id_subcuenta", "subaccount_id"),
	Phone:          truthy("phone", "telefono"),
	Avatar:         truthy("avatar"),
}

// toString renders a decoded JSON scalar the way String(v) would
func toString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

// toNumber coerces a value like Number(v), returning ok=false where that
// would yield NaN
func toNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case nil:
		return 0, true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0, true
		}
		f, err := cast.ToFloat64E(trimmed)
		return f, err == nil
	case map[string]any, []any:
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	return f, err == nil
}
