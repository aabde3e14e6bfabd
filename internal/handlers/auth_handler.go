package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/dsavelev/postline/internal/forms"
	"github.com/dsavelev/postline/internal/middleware"
	"github.com/dsavelev/postline/internal/models"
	"github.com/dsavelev/postline/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const sessionLifetime = 7 * 24 * time.Hour

// AuthHandler handles the signup, login and logout pages.
type AuthHandler struct {
	userRepository repositories.UserRepository
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.GET("/signup/", h.Signup)
	g.POST("/signup/", h.Signup)
	g.GET("/login/", h.Login)
	g.POST("/login/", h.Login)
	g.GET("/logout/", h.Logout)
}

func (h *AuthHandler) renderSignup(c echo.Context, form forms.SignupForm, fieldErrors map[string]string) error {
	return c.Render(http.StatusOK, "signup.html", pageContext(c, echo.Map{
		"Title":  "Sign up",
		"Form":   form,
		"Errors": fieldErrors,
	}))
}

// Signup registers a new user and redirects to the index page.
func (h *AuthHandler) Signup(c echo.Context) error {
	if c.Request().Method == http.MethodGet {
		return h.renderSignup(c, forms.SignupForm{}, map[string]string{})
	}

	var form forms.SignupForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderSignup(c, form, forms.FieldErrors(err))
	}

	fieldErrors := map[string]string{}
	if _, err := h.userRepository.GetUserByUsername(form.Username); err == nil {
		fieldErrors["Username"] = "A user with that username already exists."
	}
	if _, err := h.userRepository.GetUserByEmail(form.Email); err == nil {
		fieldErrors["Email"] = "A user with that email already exists."
	}
	if len(fieldErrors) > 0 {
		return h.renderSignup(c, form, fieldErrors)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password1), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username:     form.Username,
		Email:        form.Email,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		PasswordHash: string(hashed),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) renderLogin(c echo.Context, form forms.LoginForm, fieldErrors map[string]string) error {
	return c.Render(http.StatusOK, "login.html", pageContext(c, echo.Map{
		"Title":  "Log in",
		"Form":   form,
		"Errors": fieldErrors,
		"Next":   c.QueryParam("next"),
	}))
}

// Login authenticates a user, sets the session cookie and honors the
// next return-path parameter.
func (h *AuthHandler) Login(c echo.Context) error {
	if c.Request().Method == http.MethodGet {
		return h.renderLogin(c, forms.LoginForm{}, map[string]string{})
	}

	var form forms.LoginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderLogin(c, form, forms.FieldErrors(err))
	}

	badCredentials := map[string]string{
		"__all__": "Please enter a correct username and password.",
	}

	user, err := h.userRepository.GetUserByUsername(form.Username)
	if err != nil {
		return h.renderLogin(c, form, badCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		return h.renderLogin(c, form, badCredentials)
	}

	token, err := h.generateSessionToken(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate session token")
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(sessionLifetime.Seconds()),
	})

	return c.Redirect(http.StatusFound, safeNext(c.QueryParam("next")))
}

// Logout clears the session cookie and redirects to the index page.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) generateSessionToken(user *models.User) (string, error) {
	claims := &models.SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

// safeNext keeps the post-login redirect on this site. Absolute URLs
// and scheme-relative ones fall back to the index page.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
