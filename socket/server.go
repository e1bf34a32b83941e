package socket

import (
	"net/http"
	"strconv"

	socketio "github.com/googollee/go-socket.io"
	"go.uber.org/zap"

	"spill/models"
	"spill/telegram"
)

const (
	namespace = "/"

	// EventJoin subscribes a connection to its user's room. The payload is
	// the raw Telegram init data string.
	EventJoin = "join"
	// EventProfileUpdated carries the stored record after every update.
	EventProfileUpdated = "profile:updated"
	// EventError tells a client why its join was refused.
	EventError = "error"
)

// Authenticator resolves raw init data to the Telegram user it belongs to.
type Authenticator interface {
	Authenticate(raw string) (*telegram.WebAppUser, error)
}

// Hub pushes profile changes to every open Mini App of the same user.
type Hub struct {
	server *socketio.Server
	logger *zap.Logger
}

func NewHub(auth Authenticator, logger *zap.Logger) *Hub {
	server := socketio.NewServer(nil)
	h := &Hub{server: server, logger: logger}

	server.OnConnect(namespace, func(c socketio.Conn) error {
		logger.Debug("socket connected", zap.String("socket_id", c.ID()))
		return nil
	})

	server.OnEvent(namespace, EventJoin, func(c socketio.Conn, initData string) {
		user, err := auth.Authenticate(initData)
		if err != nil {
			logger.Info("socket join refused", zap.String("socket_id", c.ID()), zap.Error(err))
			c.Emit(EventError, "Unauthorized")
			return
		}
		c.Join(Room(user.ID))
		logger.Debug("socket joined", zap.String("socket_id", c.ID()), zap.Int64("user_id", user.ID))
	})

	server.OnError(namespace, func(c socketio.Conn, err error) {
		logger.Warn("socket error", zap.Error(err))
	})

	server.OnDisconnect(namespace, func(c socketio.Conn, reason string) {
		logger.Debug("socket disconnected", zap.String("socket_id", c.ID()), zap.String("reason", reason))
	})

	return h
}

// Room is the room a user's connections join.
func Room(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

// Serve runs the engine loop; it blocks until Close.
func (h *Hub) Serve() error {
	return h.server.Serve()
}

func (h *Hub) Close() error {
	return h.server.Close()
}

func (h *Hub) Handler() http.Handler {
	return h.server
}

// ProfileUpdated implements services.ProfileNotifier.
func (h *Hub) ProfileUpdated(record models.UserRecord) {
	if !h.server.BroadcastToRoom(namespace, Room(record.ID), EventProfileUpdated, record) {
		h.logger.Debug("no listeners for profile update", zap.Int64("user_id", record.ID))
	}
}
