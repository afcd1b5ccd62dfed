package webhookclient

// Endpoint names one of the remote operations
type Endpoint string

const (
	Register   Endpoint = "register"
	Login      Endpoint = "login"
	Profile    Endpoint = "profile"
	StartShift Endpoint = "startShift"
	EndShift   Endpoint = "endShift"
	History    Endpoint = "history"
	Users      Endpoint = "users"
	DeleteUser Endpoint = "deleteUser"
	EditUser   Endpoint = "editUser"
)

// AllEndpoints lists every endpoint in a stable order
var AllEndpoints = []Endpoint{
	Register, Login, Profile, StartShift, EndShift, History, Users, DeleteUser, EditUser,
}

// DefaultPaths are the webhook paths appended to the base URL
var DefaultPaths = map[Endpoint]string{
	Register:   "ShiftTrack-registro",
	Login:      "ShiftTrack-login",
	Profile:    "ShiftTrack-cargadeinformacion",
	StartShift: "ShiftTrack-horadeinicio",
	EndShift:   "ShiftTrack-horafinal",
	History:    "ShiftTrack-cargadedatos",
	Users:      "ShiftTrack-cargarusuario",
	DeleteUser: "ShiftTrack-eliminarusuario",
	EditUser:   "ShiftTrack-editarusuario",
}

// IsValid reports whether e is a known endpoint
func (e Endpoint) IsValid() bool {
	_, ok := DefaultPaths[e]
	return ok
}
