package handler

// messageResponse is the standard envelope for errors and simple
// acknowledgements: {"message": "..."}.
type messageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userSummary is the public shape of a user: never the password hash.
type userSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userSummary `json:"user"`
}
