// Package httpapi exposes the REST surface: account signup/signin,
// room creation and lookup, and the room history endpoint the sync
// client replays on join.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/purvjoshi04/SharedInk/internal/auth"
	"github.com/purvjoshi04/SharedInk/internal/cache"
	"github.com/purvjoshi04/SharedInk/internal/repository"
	"github.com/purvjoshi04/SharedInk/pkg/log"
)

// Deps bundles what the API handlers need. Cache may be nil; history
// reads then always hit the store.
type Deps struct {
	Store  repository.Store
	Cache  cache.MessageCache
	Tokens *auth.JWTManager
}

// NewRouter builds the gin engine with all routes mounted.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(log.GinMiddleware(log.L()))

	authH := NewAuthHandler(deps.Store, deps.Tokens)
	roomH := NewRoomHandler(deps.Store, deps.Cache)

	r.POST("/signup", authH.Signup)
	r.POST("/signin", authH.Signin)

	protected := r.Group("/", AuthRequired(deps.Tokens))
	protected.POST("/room", roomH.CreateRoom)
	protected.GET("/room/:slug", roomH.GetRoomBySlug)
	protected.GET("/chats/:roomId", roomH.GetChats)

	return r
}
