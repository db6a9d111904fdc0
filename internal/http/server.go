// Package http carries the REST surface of the asset library: the gin
// router, its middleware stack and the storage-backed handlers.
package http

import (
	"github.com/gin-gonic/gin"
)

// Server owns the gin engine serving the library API. It exists so main
// never touches gin directly.
type Server struct {
	Engine *gin.Engine
}

func NewServer(cfg RouterConfig) *Server {
	return &Server{Engine: NewRouter(cfg)}
}

// Run blocks serving on address until the listener fails.
func (s *Server) Run(address string) error {
	return s.Engine.Run(address)
}
