package service

import (
	"github.com/labstack/echo/v4"

	"github.com/eternalzzx/blog-server/internal/middleware"
	"github.com/eternalzzx/blog-server/internal/repository"
	"github.com/eternalzzx/blog-server/internal/server"
)

// Factory constructs per-request services from the request context, so each
// service carries the request-scoped logger (request id, method, path).
// Handlers depend on this interface; tests inject fakes through it.
type Factory interface {
	Users(c echo.Context) UserService
	Sections(c echo.Context) SectionService
}

type factory struct {
	server *server.Server
	repos  *repository.Repositories
}

// NewFactory builds the production factory on the application container.
func NewFactory(s *server.Server) Factory {
	return &factory{
		server: s,
		repos:  repository.NewRepositories(s.DB.Pool),
	}
}

func (f *factory) Users(c echo.Context) UserService {
	return &userService{
		repo:  f.repos.Users,
		cache: f.server.Redis,
		log:   middleware.GetLogger(c),
	}
}

func (f *factory) Sections(c echo.Context) SectionService {
	return &sectionService{
		repo:  f.repos.Sections,
		cache: f.server.Redis,
		log:   middleware.GetLogger(c),
	}
}
