package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"signalrelaygo/internal/services/relay"
	"signalrelaygo/internal/services/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Browser clients connect from anywhere, matching the CORS policy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WsServer struct {
	hub        *Hub
	router     *Router
	sessionSvc session.ISessionService
	relaySvc   relay.IRelayService
}

func NewWsServer(h *Hub, sessionSvc session.ISessionService, relaySvc relay.IRelayService) *WsServer {
	srv := &WsServer{
		hub:        h,
		router:     NewRouter(),
		sessionSvc: sessionSvc,
		relaySvc:   relaySvc,
	}
	srv.registerHandlers()
	return srv
}

// ---------------------------------------------------------------------------
//  Public: Gin entry-point
// ---------------------------------------------------------------------------

func (s *WsServer) Handle(ginCtx *gin.Context) {
	rawConn, err := upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.upgrade", zap.Error(err))
		return
	}
	rawConn.SetReadLimit(maxMessageSize)

	conn := &clientConn{sid: uuid.NewString(), rawConn: rawConn}
	s.hub.Register(conn)
	s.sessionSvc.Connect(conn.sid)

	// Hand the client its connection id; relay targets are addressed by it.
	s.hub.EmitTo(conn.sid, "connected", ConnectedBody{SID: conn.sid})

	go s.reader(conn)
	go s.pinger(conn)
}

// ---------------------------------------------------------------------------
//  Private helpers
// ---------------------------------------------------------------------------

func (s *WsServer) registerHandlers() {
	Register(s.router, "join_room", func(c *ConnContext, req RoomRequest) (any, error) {
		s.sessionSvc.JoinRoom(c.SID, req.Room)
		return nil, nil
	})

	Register(s.router, "leave_room", func(c *ConnContext, req RoomRequest) (any, error) {
		s.sessionSvc.LeaveRoom(c.SID, req.Room)
		return nil, nil
	})

	Register(s.router, "generate_room", func(c *ConnContext, _ struct{}) (any, error) {
		s.sessionSvc.GenerateRoom(c.SID)
		return nil, nil
	})

	Register(s.router, "get_rooms", func(c *ConnContext, _ struct{}) (any, error) {
		return RoomsBody{Rooms: s.sessionSvc.Rooms(c.SID)}, nil
	})

	Register(s.router, "get_clients", func(c *ConnContext, _ struct{}) (any, error) {
		return ClientsBody{Clients: s.sessionSvc.Clients()}, nil
	})

	Register(s.router, "get_room_clients", func(c *ConnContext, req RoomRequest) (any, error) {
		s.sessionSvc.BroadcastRoomClients(c.SID, req.Room)
		return nil, nil
	})

	for _, kind := range []string{relay.KindOffer, relay.KindAnswer, relay.KindICECandidate} {
		kind := kind // per-iteration copy: go.mod targets go 1.21, which shares the loop variable
		Register(s.router, kind, func(c *ConnContext, req relay.SignalBody) (any, error) {
			s.relaySvc.Forward(kind, req)
			return nil, nil
		})
	}
}

func (s *WsServer) reader(conn *clientConn) {
	defer func() {
		s.sessionSvc.Disconnect(conn.sid)
		s.hub.Unregister(conn.sid)
		conn.rawConn.Close()
	}()

	_ = conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	conn.rawConn.SetPongHandler(func(string) error {
		return conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	cc := &ConnContext{SID: conn.sid}
	for {
		var env Envelope
		if err := conn.rawConn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Debug("ws.read", zap.String("sid", conn.sid), zap.Error(err))
			}
			return
		}

		res, err := s.router.dispatch(cc, env)

		// ---- error -> {"event":"error", "body":{...}} ---------------
		if err != nil {
			_ = conn.writeJSON(outEnvelope{Event: "error", Body: ErrorBody{Error: err.Error()}})
			continue
		}

		// ---- synchronous result -> {"event":"<evt>-ack", "body":{...}}
		if res != nil {
			_ = conn.writeJSON(outEnvelope{Event: env.Event + "-ack", Body: res})
		}
	}
}

func (s *WsServer) pinger(conn *clientConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.ping(); err != nil {
			conn.rawConn.Close()
			return
		}
	}
}
