package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eternalzzx/blog-server/internal/param"
	"github.com/eternalzzx/blog-server/internal/server"
	"github.com/eternalzzx/blog-server/internal/service"
)

// UsersHandler serves the user-account resource under /account/users/.
type UsersHandler struct {
	Handler
	factory service.Factory
}

func NewUsersHandler(s *server.Server, factory service.Factory) *UsersHandler {
	return &UsersHandler{Handler: NewHandler(s), factory: factory}
}

// Operate dispatches on the HTTP method and the presence of the path uuid.
// Unsupported methods get the fixed 405 envelope without touching parameter
// extraction.
func (h *UsersHandler) Operate(c echo.Context) error {
	uuid := c.Param("uuid")
	switch c.Request().Method {
	case http.MethodGet:
		if uuid == "" {
			return h.list(c)
		}
		return h.get(c, uuid)
	case http.MethodPost:
		return h.create(c)
	case http.MethodPut:
		return h.update(c, uuid)
	case http.MethodDelete:
		return h.delete(c, uuid)
	default:
		return methodNotAllowed(c)
	}
}

// list returns one page of users. Requires USER_SELECT.
func (h *UsersHandler) list(c echo.Context) error {
	query := c.QueryParams()
	p := service.UserListParams{
		Page:       param.Lookup(query, "page"),
		PageSize:   param.Lookup(query, "page_size"),
		OrderField: param.Lookup(query, "order_field"),
		Order:      param.Lookup(query, "order"),
		Query:      param.Lookup(query, "query"),
		QueryField: param.Lookup(query, "query_field"),
	}

	code, data, err := h.factory.Users(c).List(c.Request().Context(), p)
	return respond(c, code, data, err)
}

// get returns a single user's detail. Requires USER_SELECT.
func (h *UsersHandler) get(c echo.Context, uuid string) error {
	code, data, err := h.factory.Users(c).Get(c.Request().Context(), uuid)
	return respond(c, code, data, err)
}

// create creates a user account from a form-encoded body. Requires
// USER_CREATE.
func (h *UsersHandler) create(c echo.Context) error {
	form, err := param.ParseBody(c.Request())
	if err != nil {
		return respond(c, 0, nil, err)
	}

	p := service.UserCreateParams{
		Username: param.Lookup(form, "username"),
		Password: param.Lookup(form, "password"),
		Nick:     param.Lookup(form, "nick"),
		RoleID:   param.Lookup(form, "role_id"),
		GroupIDs: listOrEmpty(form, "group_ids"),
		Gender:   param.Lookup(form, "gender"),
		Email:    param.Lookup(form, "email"),
		Phone:    param.Lookup(form, "phone"),
		QQ:       param.Lookup(form, "qq"),
		Address:  param.Lookup(form, "address"),
		Status:   param.Lookup(form, "status"),
		Remark:   param.Lookup(form, "remark"),
		Privacy:  param.Overrides(form, service.UserPrivacyFields),
	}

	code, data, err := h.factory.Users(c).Create(c.Request().Context(), p)
	return respond(c, code, data, err)
}

// update edits a user account. The PUT body is raw form-encoded data.
// Requires USER_UPDATE.
func (h *UsersHandler) update(c echo.Context, uuid string) error {
	body, err := param.ParseBody(c.Request())
	if err != nil {
		return respond(c, 0, nil, err)
	}

	p := service.UserUpdateParams{
		Username:    param.Lookup(body, "username"),
		OldPassword: param.Lookup(body, "old_password"),
		NewPassword: param.Lookup(body, "new_password"),
		Nick:        param.Lookup(body, "nick"),
		RoleID:      param.Lookup(body, "role_id"),
		GroupIDs:    param.List(body, "group_ids"),
		Gender:      param.Lookup(body, "gender"),
		Email:       param.Lookup(body, "email"),
		Phone:       param.Lookup(body, "phone"),
		QQ:          param.Lookup(body, "qq"),
		Address:     param.Lookup(body, "address"),
		Remark:      param.Lookup(body, "remark"),
		Privacy:     param.Overrides(body, service.UserPrivacyFields),
	}

	code, data, err := h.factory.Users(c).Update(c.Request().Context(), uuid, p)
	return respond(c, code, data, err)
}

// delete removes one user by path uuid, or a ";"-delimited batch from the
// body field id_list. Requires USER_DELETE.
func (h *UsersHandler) delete(c echo.Context, uuid string) error {
	svc := h.factory.Users(c)
	return h.deleteBatch(c, uuid, svc.Delete)
}
