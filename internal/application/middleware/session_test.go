package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"todo-api/internal/domain/model"
	"todo-api/internal/testutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionID(t *testing.T) {
	assert.Equal(t, "abc", SessionID("abc"))
	assert.Equal(t, "abc", SessionID("s:abc.signature"))
	assert.Equal(t, "abc", SessionID("s%3Aabc.sig%2Fnature"))
	assert.Equal(t, "abc", SessionID("s:abc"))
}

func runWithSession(t *testing.T, gateway *testutil.FakeSessionGateway, cookie *http.Cookie) (model.Caller, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/todo-api/graphql", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var caller model.Caller
	var found bool
	handler := Session(gateway, "qid")(func(c echo.Context) error {
		caller, found = model.CallerFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	return caller, found
}

func TestSession(t *testing.T) {
	gateway := &testutil.FakeSessionGateway{Sessions: map[string]model.Caller{
		"sid-1": {UserID: "u1", Role: model.RoleUser},
	}}

	caller, found := runWithSession(t, gateway, &http.Cookie{Name: "qid", Value: "s:sid-1.sig"})
	assert.True(t, found)
	assert.Equal(t, "u1", caller.UserID)

	_, found = runWithSession(t, gateway, &http.Cookie{Name: "qid", Value: "unknown"})
	assert.False(t, found)

	_, found = runWithSession(t, gateway, &http.Cookie{Name: "other", Value: "sid-1"})
	assert.False(t, found)

	_, found = runWithSession(t, gateway, nil)
	assert.False(t, found)
}

func TestSession_StoreFailureContinuesWithoutCaller(t *testing.T) {
	gateway := &testutil.FakeSessionGateway{Err: errors.New("redis unavailable")}

	_, found := runWithSession(t, gateway, &http.Cookie{Name: "qid", Value: "sid-1"})

	assert.False(t, found)
}
