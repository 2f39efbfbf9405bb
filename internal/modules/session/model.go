// README: Session domain models.
package session

// UserProfile is the Google userinfo payload kept for a signed-in session.
// AccessToken is retained so sign-out can revoke it.
type UserProfile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Picture     string `json:"picture"`
	AccessToken string `json:"-"`
}
