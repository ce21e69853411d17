package domain

// TokenUser is the user fragment echoed alongside issued tokens.
type TokenUser struct {
	UserID string `json:"userId"`
}

// TokenPair is the sign-in and refresh-token response body. The refresh flow
// reuses it with the caller's own refresh token echoed back unchanged.
type TokenPair struct {
	User         TokenUser `json:"user"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
}
