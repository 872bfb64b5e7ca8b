package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/example/farmhouse/internal/application/usecases"
	"github.com/example/farmhouse/internal/domain/booking"
	"github.com/example/farmhouse/internal/infrastructure/memstore"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "WhiteGate"

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	tmpl, err := ParseTemplates()
	require.NoError(t, err)

	rooms := booking.Registry{"Over the Kitchen", "Upstairs Books"}
	svc := usecases.ReservationService{
		Store: memstore.New(),
		Rooms: rooms,
		Log:   zerolog.Nop(),
	}
	sessions := NewSessionManager(make([]byte, 32), make([]byte, 32))
	srv := New(":0", sessions, svc, rooms, hash, tmpl, "test", zerolog.Nop())
	return srv.routes()
}

func gateCookie(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	form := url.Values{"password": {testPassword}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("content-type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusFound, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("content-type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, h http.Handler, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGateRedirectsWithoutSession(t *testing.T) {
	h := newTestServer(t)
	for _, path := range []string{"/", "/calendar", "/reservations/edit?id=x"} {
		rec := get(t, h, path, nil)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestGateRejectsWrongPassword(t *testing.T) {
	h := newTestServer(t)
	rec := postForm(t, h, "/login", url.Values{"password": {"guess"}}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Incorrect password")
}

func TestGateAdmitsAndBoardRenders(t *testing.T) {
	h := newTestServer(t)
	cookie := gateCookie(t, h)

	rec := get(t, h, "/", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Over the Kitchen")
	assert.Contains(t, rec.Body.String(), "No reservations yet")
}

func TestCreateConflictAndForceFlow(t *testing.T) {
	h := newTestServer(t)
	cookie := gateCookie(t, h)

	first := url.Values{
		"name": {"Alice"}, "room": {"Over the Kitchen"},
		"start": {"2024-07-01"}, "end": {"2024-07-05"},
		"status": {"definite"},
	}
	rec := postForm(t, h, "/reservations", first, cookie)
	require.Equal(t, http.StatusFound, rec.Code)

	rec = get(t, h, "/", cookie)
	assert.Contains(t, rec.Body.String(), "Alice")

	// overlapping stay in the same room: warned, not saved
	second := url.Values{
		"name": {"Carol"}, "room": {"Over the Kitchen"},
		"start": {"2024-07-04"}, "end": {"2024-07-06"},
		"status": {"hopeful"},
	}
	rec = postForm(t, h, "/reservations", second, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Reserve anyway")
	assert.Contains(t, rec.Body.String(), "Alice")

	body := get(t, h, "/", cookie).Body.String()
	assert.NotContains(t, body, "Carol")

	// the caller insists
	second.Set("force", "1")
	rec = postForm(t, h, "/reservations", second, cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	body = get(t, h, "/", cookie).Body.String()
	assert.Contains(t, body, "Carol")
}

func TestCreateBackToBackSucceeds(t *testing.T) {
	h := newTestServer(t)
	cookie := gateCookie(t, h)

	rec := postForm(t, h, "/reservations", url.Values{
		"name": {"Alice"}, "room": {"Upstairs Books"},
		"start": {"2024-07-01"}, "end": {"2024-07-05"}, "status": {"definite"},
	}, cookie)
	require.Equal(t, http.StatusFound, rec.Code)

	rec = postForm(t, h, "/reservations", url.Values{
		"name": {"Bob"}, "room": {"Upstairs Books"},
		"start": {"2024-07-05"}, "end": {"2024-07-08"}, "status": {"hopeful"},
	}, cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestCreateValidationMessage(t *testing.T) {
	h := newTestServer(t)
	cookie := gateCookie(t, h)

	rec := postForm(t, h, "/reservations", url.Values{
		"name": {""}, "room": {"Upstairs Books"},
		"start": {"2024-07-01"}, "end": {"2024-07-05"}, "status": {"hopeful"},
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid name")
}

func TestAvailabilityCheck(t *testing.T) {
	h := newTestServer(t)
	cookie := gateCookie(t, h)

	rec := postForm(t, h, "/reservations", url.Values{
		"name": {"Alice"}, "room": {"Over the Kitchen"},
		"start": {"2024-07-01"}, "end": {"2024-07-05"}, "status": {"definite"},
	}, cookie)
	require.Equal(t, http.StatusFound, rec.Code)

	rec = get(t, h, "/?start=2024-07-04&end=2024-07-06", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Upstairs Books free")
	assert.Contains(t, body, "Over the Kitchen: Alice")
}

func TestCalendarRenders(t *testing.T) {
	h := newTestServer(t)
	cookie := gateCookie(t, h)

	rec := postForm(t, h, "/reservations", url.Values{
		"name": {"Alice"}, "room": {"Over the Kitchen"},
		"start": {"2024-07-01"}, "end": {"2024-07-03"}, "status": {"definite"},
	}, cookie)
	require.Equal(t, http.StatusFound, rec.Code)

	rec = get(t, h, "/calendar?y=2024&m=7", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "July 2024")
	assert.Contains(t, body, "Alice")
	assert.Contains(t, body, "1 of 2 rooms free")
}

func TestDelete(t *testing.T) {
	h := newTestServer(t)
	cookie := gateCookie(t, h)

	rec := postForm(t, h, "/reservations", url.Values{
		"name": {"Alice"}, "room": {"Over the Kitchen"},
		"start": {"2024-07-01"}, "end": {"2024-07-03"}, "status": {"definite"},
	}, cookie)
	require.Equal(t, http.StatusFound, rec.Code)

	body := get(t, h, "/", cookie).Body.String()
	id := extractID(t, body)

	rec = postForm(t, h, "/reservations/delete", url.Values{"id": {id}}, cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.NotContains(t, get(t, h, "/", cookie).Body.String(), "Alice")
}

func extractID(t *testing.T, body string) string {
	t.Helper()
	marker := `name="id" value="`
	i := strings.Index(body, marker)
	require.GreaterOrEqual(t, i, 0, "no reservation id in page")
	rest := body[i+len(marker):]
	j := strings.Index(rest, `"`)
	require.Greater(t, j, 0)
	return rest[:j]
}
