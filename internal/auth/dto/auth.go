package dto

// ProviderProfile is what the identity provider delivers after a successful
// external handshake. It is the only provider data the identity bridge sees.
type ProviderProfile struct {
	ProviderID string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	AvatarURL  string `json:"picture"`
}

// MeResponse echoes the current principal.
type MeResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
