package web

import (
	"errors"
	"net/http"
	"strings"

	"delservice/internal/auth"

	"github.com/labstack/echo/v4"
)

func (s *Server) loginForm(c echo.Context) error {
	return s.render(c, http.StatusOK, "login", echo.Map{"Title": "Sign in"})
}

func (s *Server) login(c echo.Context) error {
	login := strings.TrimSpace(c.FormValue("login"))
	password := c.FormValue("password")

	token, err := s.auth.Login(c.Request().Context(), login, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return s.render(c, http.StatusUnauthorized, "login", echo.Map{
			"Title": "Sign in",
			"Error": "Invalid login or password",
			"Login": login,
		})
	}
	if err != nil {
		return err
	}

	setSessionCookie(c, token)
	return redirect(c, "/")
}

func (s *Server) logoutConfirm(c echo.Context) error {
	return s.render(c, http.StatusOK, "logout_confirm", echo.Map{"Title": "Sign out"})
}

func (s *Server) logout(c echo.Context) error {
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		if err := s.auth.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}
	clearSessionCookie(c)
	return redirect(c, "/login")
}
