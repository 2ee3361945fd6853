package handler

import (
	"github.com/eternalzzx/blog-server/internal/server"
	"github.com/eternalzzx/blog-server/internal/service"
)

// Handlers groups all HTTP handlers so router setup passes one object
// around.
type Handlers struct {
	Health   *HealthHandler
	Users    *UsersHandler
	Sections *SectionsHandler
}

// NewHandlers constructs the handler container. Services are built per
// request through the factory; tests inject fakes the same way.
func NewHandlers(s *server.Server, factory service.Factory) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		Users:    NewUsersHandler(s, factory),
		Sections: NewSectionsHandler(s, factory),
	}
}
