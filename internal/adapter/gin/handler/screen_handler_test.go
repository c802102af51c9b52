package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-admin-service/internal/controller"
	"user-admin-service/internal/domain/user"
	apperrors "user-admin-service/pkg/errors"
)

// fakeDirectory is an in-memory directory backing the screen tests.
type fakeDirectory struct {
	users  []user.User
	nextID int
}

func (d *fakeDirectory) ListUsers(context.Context) ([]user.User, error) {
	out := make([]user.User, len(d.users))
	copy(out, d.users)
	return out, nil
}

func (d *fakeDirectory) CreateUser(_ context.Context, u user.User) (*user.User, error) {
	d.nextID++
	u.ID = fmt.Sprintf("id-%d", d.nextID)
	d.users = append(d.users, u)
	return &u, nil
}

func (d *fakeDirectory) UpdateUser(_ context.Context, u user.User) (*user.User, error) {
	for i := range d.users {
		if d.users[i].ID == u.ID {
			if u.Name != "" {
				d.users[i].Name = u.Name
			}
			if u.Email != "" {
				d.users[i].Email = u.Email
			}
			out := d.users[i]
			return &out, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user", "user not found: id="+u.ID)
}

func (d *fakeDirectory) DeleteUser(_ context.Context, id string) (*user.User, error) {
	for i := range d.users {
		if d.users[i].ID == id {
			out := d.users[i]
			d.users = append(d.users[:i], d.users[i+1:]...)
			return &out, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user", "user not found: id="+id)
}

func setupScreenRouter(t *testing.T) (*gin.Engine, *fakeDirectory) {
	gin.SetMode(gin.TestMode)

	dir := &fakeDirectory{}
	_, err := dir.CreateUser(context.Background(), user.User{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)

	ctrl, err := controller.New(context.Background(), dir, zaptest.NewLogger(t),
		controller.WithNotifyDelay(5*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(ctrl.Close)

	h := NewScreenHandler(ctrl, zaptest.NewLogger(t))

	r := gin.New()
	screen := r.Group("/v1/screen")
	{
		screen.GET("/users", h.State)
		screen.POST("/users", h.Create)
		screen.POST("/users/refresh", h.Refresh)
		screen.PUT("/users/:id", h.Edit)
		screen.DELETE("/users/:id", h.Delete)
	}
	return r, dir
}

func decodeScreenState(t *testing.T, body []byte) ScreenStateResponse {
	t.Helper()
	var resp ScreenStateResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestScreenState_InitialList(t *testing.T) {
	r, _ := setupScreenRouter(t)

	w := doJSON(t, r, http.MethodGet, "/v1/screen/users", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeScreenState(t, w.Body.Bytes())
	require.Len(t, resp.Users, 1)
	assert.Equal(t, "Ann", resp.Users[0].Name)
	assert.Nil(t, resp.Notification)
}

func TestScreenCreate_RefreshesListAndQueuesToast(t *testing.T) {
	r, dir := setupScreenRouter(t)

	w := doJSON(t, r, http.MethodPost, "/v1/screen/users", gin.H{
		"name":  "Bo Jones",
		"email": "bo@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeScreenState(t, w.Body.Bytes())
	assert.Len(t, resp.Users, 2)
	assert.Len(t, dir.users, 2)

	// The toast appears after the configured delay, not in the mutation
	// response itself
	assert.Eventually(t, func() bool {
		w := doJSON(t, r, http.MethodGet, "/v1/screen/users", nil)
		state := decodeScreenState(t, w.Body.Bytes())
		return state.Notification != nil &&
			state.Notification.Message == "User Bo Jones created"
	}, time.Second, 5*time.Millisecond)
}

func TestScreenCreate_InvalidBody(t *testing.T) {
	r, dir := setupScreenRouter(t)

	w := doJSON(t, r, http.MethodPost, "/v1/screen/users", gin.H{
		"name": "Bo Jones",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, dir.users, 1)
}

func TestScreenEdit_UpdatesAndNotifies(t *testing.T) {
	r, dir := setupScreenRouter(t)

	w := doJSON(t, r, http.MethodPut, "/v1/screen/users/id-1", gin.H{"name": "Ann Brown"})

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeScreenState(t, w.Body.Bytes())
	require.Len(t, resp.Users, 1)
	assert.Equal(t, "Ann Brown", resp.Users[0].Name)
	assert.Equal(t, "Ann Brown", dir.users[0].Name)

	assert.Eventually(t, func() bool {
		w := doJSON(t, r, http.MethodGet, "/v1/screen/users", nil)
		state := decodeScreenState(t, w.Body.Bytes())
		return state.Notification != nil &&
			state.Notification.Message == "User Ann Brown updated"
	}, time.Second, 5*time.Millisecond)
}

func TestScreenDelete_RemovesAndNamesDeletedRecord(t *testing.T) {
	r, dir := setupScreenRouter(t)

	w := doJSON(t, r, http.MethodDelete, "/v1/screen/users/id-1", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeScreenState(t, w.Body.Bytes())
	assert.Empty(t, resp.Users)
	assert.Empty(t, dir.users)

	assert.Eventually(t, func() bool {
		w := doJSON(t, r, http.MethodGet, "/v1/screen/users", nil)
		state := decodeScreenState(t, w.Body.Bytes())
		return state.Notification != nil &&
			state.Notification.Message == "User Ann deleted"
	}, time.Second, 5*time.Millisecond)
}

func TestScreenDelete_NotFound(t *testing.T) {
	r, _ := setupScreenRouter(t)

	w := doJSON(t, r, http.MethodDelete, "/v1/screen/users/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "screen_error", resp.Error)
}

func TestScreenRefresh_PicksUpExternalChanges(t *testing.T) {
	r, dir := setupScreenRouter(t)

	// Change the backend behind the controller's back
	_, err := dir.CreateUser(context.Background(), user.User{Name: "Cara", Email: "cara@example.com"})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/v1/screen/users", nil)
	resp := decodeScreenState(t, w.Body.Bytes())
	assert.Len(t, resp.Users, 1, "state is a cache until refreshed")

	w = doJSON(t, r, http.MethodPost, "/v1/screen/users/refresh", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp = decodeScreenState(t, w.Body.Bytes())
	assert.Len(t, resp.Users, 2)
}
