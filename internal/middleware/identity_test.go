package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealora/food-ordering/internal/model"
	"github.com/mealora/food-ordering/internal/utils"
)

func newContext(t *testing.T) echo.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestPrincipalFromContext(t *testing.T) {
	c := newContext(t)
	c.Set(ctxUserID, "user-1")
	c.Set(ctxRoles, []string{"CUSTOMER", "RESTAURANT_OWNER"})

	p, err := Principal(c)
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.ID)
	assert.True(t, p.HasRole(model.RoleCustomer))
	assert.True(t, p.HasRole(model.RoleOwner))
}

func TestPrincipalMissingIdentity(t *testing.T) {
	_, err := Principal(newContext(t))
	assert.ErrorIs(t, err, ErrNoPrincipal)
}

func TestJWTAuthRoundTrip(t *testing.T) {
	at, err := utils.NewAccessToken("test-secret", "user-7",
		[]model.Role{model.RoleCustomer}, 5)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := JWTAuth("test-secret")(func(c echo.Context) error {
		called = true
		p, err := Principal(c)
		require.NoError(t, err)
		assert.Equal(t, "user-7", p.ID)
		assert.True(t, p.HasRole(model.RoleCustomer))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.True(t, called)
}

func TestJWTAuthRejectsBadTokens(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	for _, header := range []string{"", "Bearer not-a-jwt", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		require.NoError(t, JWTAuth("test-secret")(next)(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestRequireRoleAnyOfMatch(t *testing.T) {
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	gate := RequireRole(model.RoleOwner)

	cases := []struct {
		roles []string
		want  int
	}{
		{[]string{"RESTAURANT_OWNER"}, http.StatusOK},
		{[]string{"CUSTOMER", "RESTAURANT_OWNER"}, http.StatusOK},
		{[]string{"CUSTOMER"}, http.StatusForbidden},
		{nil, http.StatusForbidden},
	}
	for _, tc := range cases {
		c := newContext(t)
		if tc.roles != nil {
			c.Set(ctxRoles, tc.roles)
		}
		rec := c.Response().Writer.(*httptest.ResponseRecorder)
		require.NoError(t, gate(next)(c))
		assert.Equal(t, tc.want, rec.Code, "roles %v", tc.roles)
	}
}
