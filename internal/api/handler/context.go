package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUsername extracts the authenticated username injected by the Auth
// middleware. An empty value means the gate did not run; fail fast with 401
// rather than proceed with an anonymous mutation.
func ctxUsername(c echo.Context) (string, error) {
	username, _ := c.Get("username").(string)
	if username == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, nil
}
