package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eternalzzx/blog-server/internal/param"
	"github.com/eternalzzx/blog-server/internal/server"
	"github.com/eternalzzx/blog-server/internal/service"
)

// SectionsHandler serves the content-section resource under
// /content/sections/.
type SectionsHandler struct {
	Handler
	factory service.Factory
}

func NewSectionsHandler(s *server.Server, factory service.Factory) *SectionsHandler {
	return &SectionsHandler{Handler: NewHandler(s), factory: factory}
}

// Operate dispatches on the HTTP method and the presence of the path id.
func (h *SectionsHandler) Operate(c echo.Context) error {
	id := c.Param("id")
	switch c.Request().Method {
	case http.MethodGet:
		if id == "" {
			return h.list(c)
		}
		return h.get(c, id)
	case http.MethodPost:
		return h.create(c)
	case http.MethodPut:
		return h.update(c, id)
	case http.MethodDelete:
		return h.delete(c, id)
	default:
		return methodNotAllowed(c)
	}
}

// list returns one page of sections. Requires SECTION_SELECT.
func (h *SectionsHandler) list(c echo.Context) error {
	query := c.QueryParams()
	p := service.SectionListParams{
		Page:       param.Lookup(query, "page"),
		PageSize:   param.Lookup(query, "page_size"),
		OrderField: param.Lookup(query, "order_field"),
		Order:      param.Lookup(query, "order"),
		Query:      param.Lookup(query, "query"),
		QueryField: param.Lookup(query, "query_field"),
	}

	code, data, err := h.factory.Sections(c).List(c.Request().Context(), p)
	return respond(c, code, data, err)
}

// get returns a single section's detail. Requires SECTION_SELECT.
func (h *SectionsHandler) get(c echo.Context, id string) error {
	code, data, err := h.factory.Sections(c).Get(c.Request().Context(), id)
	return respond(c, code, data, err)
}

// create creates a section from a form-encoded body. Requires
// SECTION_CREATE.
func (h *SectionsHandler) create(c echo.Context) error {
	form, err := param.ParseBody(c.Request())
	if err != nil {
		return respond(c, 0, nil, err)
	}

	p := service.SectionCreateParams{
		Name:           param.Lookup(form, "name"),
		Nick:           param.Lookup(form, "nick"),
		Description:    param.Lookup(form, "description"),
		ModeratorUUIDs: listOrEmpty(form, "moderator_uuids"),
		AssistantUUIDs: listOrEmpty(form, "assistant_uuids"),
		Status:         param.Lookup(form, "status"),
		Level:          param.Lookup(form, "level"),
		OnlyRoles:      param.Flag(form, "only_roles"),
		RoleIDs:        listOrEmpty(form, "role_ids"),
		OnlyGroups:     param.Flag(form, "only_groups"),
		GroupIDs:       listOrEmpty(form, "group_ids"),
	}

	code, data, err := h.factory.Sections(c).Create(c.Request().Context(), p)
	return respond(c, code, data, err)
}

// update edits a section. The PUT body is raw form-encoded data. Requires
// SECTION_UPDATE.
func (h *SectionsHandler) update(c echo.Context, id string) error {
	body, err := param.ParseBody(c.Request())
	if err != nil {
		return respond(c, 0, nil, err)
	}

	p := service.SectionUpdateParams{
		Nick:           param.Lookup(body, "nick"),
		Description:    param.Lookup(body, "description"),
		ModeratorUUIDs: param.List(body, "moderator_uuids"),
		AssistantUUIDs: param.List(body, "assistant_uuids"),
		Status:         param.Lookup(body, "status"),
		Level:          param.Lookup(body, "level"),
		OnlyRoles:      param.Flag(body, "only_roles"),
		RoleIDs:        param.List(body, "role_ids"),
		OnlyGroups:     param.Flag(body, "only_groups"),
		GroupIDs:       param.List(body, "group_ids"),
	}

	code, data, err := h.factory.Sections(c).Update(c.Request().Context(), id, p)
	return respond(c, code, data, err)
}

// delete removes one section by path id, or a ";"-delimited batch from the
// body field id_list. Requires SECTION_DELETE.
func (h *SectionsHandler) delete(c echo.Context, id string) error {
	svc := h.factory.Sections(c)
	return h.deleteBatch(c, id, svc.Delete)
}
