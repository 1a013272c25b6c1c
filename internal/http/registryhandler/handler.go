package registryhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"signalrelaygo/internal/services/session"
)

// Handler exposes read-only registry snapshots. None of the routes mutate
// anything; they exist for introspection and debugging.
type Handler struct {
	svc session.ISessionService
}

func New(svc session.ISessionService) *Handler { return &Handler{svc: svc} }

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/clients", h.clients)
	r.GET("/rooms", h.rooms)
	r.GET("/rooms/:sid", h.roomsContaining)
}

// clients lists every connected client id.
func (h *Handler) clients(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Clients())
}

// rooms lists every room with its members.
func (h *Handler) rooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.RoomSnapshot())
}

// roomsContaining lists the rooms a given client belongs to.
func (h *Handler) roomsContaining(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Rooms(c.Param("sid")))
}
