package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/flocknest/internal/middleware"
	"github.com/lalith-99/flocknest/internal/repository"
	"github.com/lalith-99/flocknest/internal/stream"
)

// Repos bundles the store contracts the router needs. One store value
// typically satisfies all of them.
type Repos struct {
	Identity repository.IdentityRepository
	Sessions repository.SessionRepository
	Channels repository.ChannelRepository
	Messages repository.MessageRepository
	Store    repository.Resetter
}

// NewRouter wires every handler onto a gin engine. main and the API
// tests share this, so the routes under test are the routes served.
func NewRouter(jwtSecret string, sessionTTL time.Duration, repos Repos, hub *stream.Hub, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	authHandler := NewAuthHandler(repos.Sessions, jwtSecret, sessionTTL, logger)
	userHandler := NewUserHandler(repos.Identity, logger)
	adminHandler := NewAdminHandler(repos.Identity, repos.Store, logger)
	channelHandler := NewChannelHandler(repos.Channels, logger)
	membershipHandler := NewMembershipHandler(repos.Channels, logger)
	messageHandler := NewMessageHandler(repos.Messages, hub, logger)
	streamHandler := NewStreamHandler(repos.Channels, hub, logger)

	// Health stays public so load balancers can probe it.
	r.GET("/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register, login and logout run without the middleware: the
	// first two mint the token, and logout must stay idempotent on
	// dead tokens instead of answering 401. Reset is the test-harness
	// hook and must work against an empty store.
	r.POST("/v1/auth/register", authHandler.Register)
	r.POST("/v1/auth/login", authHandler.Login)
	r.POST("/v1/auth/logout", authHandler.Logout)
	r.POST("/v1/admin/reset", adminHandler.Reset)

	v1 := r.Group("/v1")
	v1.Use(middleware.AuthMiddleware(jwtSecret, repos.Sessions))
	{
		v1.GET("/users/me", userHandler.GetMe)
		v1.PUT("/users/me", userHandler.UpdateMe)
		v1.PUT("/admin/permissions", adminHandler.SetPermission)

		v1.POST("/channels", channelHandler.Create)
		v1.GET("/channels", channelHandler.ListMine)
		v1.GET("/channels/all", channelHandler.ListAll)
		v1.GET("/channels/:id", channelHandler.Details)

		v1.POST("/channels/:id/join", membershipHandler.Join)
		v1.POST("/channels/:id/leave", membershipHandler.Leave)
		v1.POST("/channels/:id/invite", membershipHandler.Invite)
		v1.POST("/channels/:id/owners", membershipHandler.AddOwner)
		v1.DELETE("/channels/:id/owners/:userID", membershipHandler.RemoveOwner)

		v1.POST("/channels/:id/messages", messageHandler.Send)
		v1.GET("/channels/:id/messages", messageHandler.Page)
		v1.PUT("/messages/:id", messageHandler.Edit)
		v1.DELETE("/messages/:id", messageHandler.Remove)
		v1.GET("/search", messageHandler.Search)

		v1.GET("/channels/:id/stream", streamHandler.Stream)
	}

	return r
}
