package models

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"correo"`
}

type LoginRequest struct {
	Email    string `json:"correo"`
	Password string `json:"contrasenia"`
}

type RegisterRequest struct {
	Email    string `json:"correo"`
	Password string `json:"contrasenia"`
	Document string `json:"cedula"`
	Name     string `json:"nombre"`
	Phone    string `json:"telefono,omitempty"`
}

type AuthResponse struct {
	Message string `json:"message,omitempty"`
	User    User   `json:"usuario"`
}
