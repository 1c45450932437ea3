package handler

const (
	errInternalServer     = "Internal server error"
	msgInvalidCredentials = "Invalid credentials"
	msgSomethingWentWrong = "Something went wrong"
)
