package adoptionserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountsmapper "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/adapters/http/mapper"
	accountsports "github.com/Apurer/go-gin-adoption-server/internal/domains/accounts/ports"
)

// CookieSettings controls the session cookie written at login.
type CookieSettings struct {
	Name   string
	Secure bool
	MaxAge int
}

// AccountAPI serves registration, login and user administration.
type AccountAPI struct {
	service accountsports.Service
	cookie  CookieSettings
}

// NewAccountAPI wires dependencies.
func NewAccountAPI(service accountsports.Service, cookie CookieSettings) AccountAPI {
	if cookie.Name == "" {
		cookie.Name = DefaultCookieName
	}
	return AccountAPI{service: service, cookie: cookie}
}

// Post /register
func (api *AccountAPI) Register(c *gin.Context) {
	var form accountsmapper.RegisterForm
	if !bind(c, "Missing required fields", &form) {
		return
	}
	user, err := api.service.Register(c.Request.Context(), form.ToRegisterInput())
	if err != nil {
		respondError(c, "Error creating user", err)
		return
	}
	respondCreated(c, "User created successfully.", user.ID)
}

// Post /login
// Issues a session token, returned in the body and as a cookie.
func (api *AccountAPI) Login(c *gin.Context) {
	var form accountsmapper.LoginForm
	if !bind(c, "Missing required fields", &form) {
		return
	}
	session, err := api.service.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		respondError(c, "Error logging in", err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(api.cookie.Name, session.Token, api.cookie.MaxAge, "/", "", api.cookie.Secure, true)
	c.JSON(http.StatusOK, struct {
		Message string `json:"message"`
		accountsmapper.Session
	}{Message: "Login successful.", Session: accountsmapper.FromDomainSession(session)})
}

// Post /logout
func (api *AccountAPI) Logout(c *gin.Context) {
	if err := api.service.Logout(c.Request.Context(), currentToken(c)); err != nil {
		respondError(c, "Error logging out", err)
		return
	}
	c.SetCookie(api.cookie.Name, "", -1, "/", "", api.cookie.Secure, true)
	respondMessage(c, http.StatusOK, "Logged out successfully.", nil)
}

// Get /me
func (api *AccountAPI) Me(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	user, err := api.service.GetUser(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, "Error fetching user", err)
		return
	}
	c.JSON(http.StatusOK, accountsmapper.FromDomainUser(user))
}

// Get /get_users
func (api *AccountAPI) GetUsers(c *gin.Context) {
	users, err := api.service.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, "Error fetching users", err)
		return
	}
	c.JSON(http.StatusOK, accountsmapper.FromDomainUsers(users))
}

// Post /delete_user
func (api *AccountAPI) DeleteUser(c *gin.Context) {
	var form accountsmapper.UserIDForm
	if !bind(c, "Error deleting user", &form) {
		return
	}
	identity, _ := CurrentIdentity(c)
	if err := api.service.DeleteUser(c.Request.Context(), identity, form.UserID); err != nil {
		respondError(c, "Error deleting user", err)
		return
	}
	respondMessage(c, http.StatusOK, "User deleted successfully.", nil)
}
