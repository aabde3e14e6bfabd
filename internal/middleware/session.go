package middleware

import (
	"net/http"
	"net/url"

	"github.com/dsavelev/postline/internal/models"
	"github.com/dsavelev/postline/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session"

const userContextKey = "user"

// LoadUser resolves the session cookie into the current user and
// stores it in the request context. Requests without a valid session
// pass through anonymously; gating happens in RequireLogin.
func LoadUser(users repositories.UserRepository, jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			claims := &models.SessionClaims{}
			token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return next(c)
			}

			user, err := users.GetUserByID(claims.UserID)
			if err != nil {
				return next(c)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireLogin redirects anonymous requests to the login page with the
// original path in the next parameter.
func RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) == nil {
			target := "/auth/login/?next=" + url.QueryEscape(c.Request().URL.RequestURI())
			return c.Redirect(http.StatusFound, target)
		}
		return next(c)
	}
}

// RequireStaff gates the admin console. Unlike owner checks elsewhere,
// a non-staff caller gets an explicit 403.
func RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			target := "/auth/login/?next=" + url.QueryEscape(c.Request().URL.RequestURI())
			return c.Redirect(http.StatusFound, target)
		}
		if !user.IsStaff {
			return echo.NewHTTPError(http.StatusForbidden, "Staff access required")
		}
		return next(c)
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous
// requests.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

// SetCurrentUser places a user into the request context. Exposed for
// handler tests that bypass LoadUser.
func SetCurrentUser(c echo.Context, user *models.User) {
	c.Set(userContextKey, user)
}
