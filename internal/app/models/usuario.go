package models

// Rol is the closed set of account roles. The zero value is RolUnknown so an
// absent or unparsable role never authorizes anything.
type Rol int

const (
	RolUnknown Rol = iota
	RolUser
	RolAdmin
)

const (
	rolUserStr  = "USER"
	rolAdminStr = "ADMIN"
)

// ParseRol maps a stored or token-borne role string onto the enum. Anything
// outside the two known values collapses to RolUnknown.
func ParseRol(s string) Rol {
	switch s {
	case rolUserStr:
		return RolUser
	case rolAdminStr:
		return RolAdmin
	default:
		return RolUnknown
	}
}

func (r Rol) String() string {
	switch r {
	case RolUser:
		return rolUserStr
	case RolAdmin:
		return rolAdminStr
	default:
		return ""
	}
}

// Usuario is the persisted account record. Password holds the Argon2id hash,
// never plaintext, and is never serialized to clients.
type Usuario struct {
	ID       int64
	Nombre   string
	Apellido string
	Email    string
	Telefono string
	Password string
	Rol      Rol
}

// UsuarioResponse is the public projection of an account.
type UsuarioResponse struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
	Telefono string `json:"telefono"`
	Rol      string `json:"rol"`
}

// ToResponse projects the account for clients, dropping the password hash.
func (u *Usuario) ToResponse() UsuarioResponse {
	return UsuarioResponse{
		ID:       u.ID,
		Nombre:   u.Nombre,
		Apellido: u.Apellido,
		Email:    u.Email,
		Telefono: u.Telefono,
		Rol:      u.Rol.String(),
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CrearUsuarioRequest carries the registration fields. Validation mirrors the
// API contract: names non-blank and 2-50 chars, valid email, non-blank phone,
// password of at least 8 chars with upper, lower and digit (custom
// "complexity" rule). "notblank" rejects whitespace-only values that the
// stock "required" rule accepts.
type CrearUsuarioRequest struct {
	Nombre   string `json:"nombre" binding:"required,notblank,min=2,max=50"`
	Apellido string `json:"apellido" binding:"required,notblank,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Telefono string `json:"telefono" binding:"required,notblank"`
	Password string `json:"password" binding:"required,notblank,min=8,complexity"`
}
