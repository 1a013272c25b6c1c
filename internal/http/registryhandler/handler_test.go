package registryhandler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"signalrelaygo/internal/registry"
	"signalrelaygo/internal/services/session"
)

type noopEmitter struct{}

func (noopEmitter) EmitTo(string, string, any)     {}
func (noopEmitter) EmitToRoom(string, string, any) {}
func (noopEmitter) EnterRoom(string, string)       {}
func (noopEmitter) ExitRoom(string, string)        {}

func newTestRouter() (*gin.Engine, session.ISessionService) {
	gin.SetMode(gin.TestMode)
	svc := session.NewSessionService(registry.NewConnectionRegistry(), registry.NewRoomRegistry(), noopEmitter{})

	engine := gin.New()
	New(svc).Register(engine.Group("/sio"))
	return engine, svc
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestClientsEndpoint(t *testing.T) {
	engine, svc := newTestRouter()
	svc.Connect("sid1")
	svc.Connect("sid2")

	w := get(engine, "/sio/clients")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["sid1","sid2"]`, w.Body.String())
}

func TestRoomsEndpoint(t *testing.T) {
	engine, svc := newTestRouter()
	room := "11111111-1111-1111-1111-111111111111"
	svc.JoinRoom("sid1", room)
	svc.JoinRoom("sid2", room)

	w := get(engine, "/sio/rooms")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"11111111-1111-1111-1111-111111111111":["sid1","sid2"]}`, w.Body.String())
}

func TestRoomsContainingEndpoint(t *testing.T) {
	engine, svc := newTestRouter()
	room := "11111111-1111-1111-1111-111111111111"
	svc.JoinRoom("sid1", room)

	w := get(engine, "/sio/rooms/sid1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["11111111-1111-1111-1111-111111111111"]`, w.Body.String())

	w = get(engine, "/sio/rooms/ghost")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
