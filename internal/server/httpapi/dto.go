package httpapi

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
}

type signupRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Name            string `json:"name" validate:"required,max=200"`
}

type signupResponse struct {
	Email string `json:"email"`
}

type refreshRequest struct {
	UserID       string `json:"userId" validate:"required,uuid"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type infoResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type logoutResponse struct {
	Revoked bool `json:"revoked"`
}

type healthResponse struct {
	Status string `json:"status"`
}
