package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/eternalzzx/blog-server/internal/server"
	"github.com/eternalzzx/blog-server/internal/service"
)

// fakeFactory hands out the injected fakes regardless of request context.
type fakeFactory struct {
	users    service.UserService
	sections service.SectionService
}

func (f *fakeFactory) Users(echo.Context) service.UserService       { return f.users }
func (f *fakeFactory) Sections(echo.Context) service.SectionService { return f.sections }

// fakeUserService delegates to per-method funcs. A method without a func set
// panics so unexpected calls surface as test failures.
type fakeUserService struct {
	listFn   func(ctx context.Context, p service.UserListParams) (int, any, error)
	getFn    func(ctx context.Context, uuid string) (int, any, error)
	createFn func(ctx context.Context, p service.UserCreateParams) (int, any, error)
	updateFn func(ctx context.Context, uuid string, p service.UserUpdateParams) (int, any, error)
	deleteFn func(ctx context.Context, p service.DeleteParams) (service.DeleteResult, error)
}

func (f *fakeUserService) List(ctx context.Context, p service.UserListParams) (int, any, error) {
	if f.listFn == nil {
		panic("unexpected List call")
	}
	return f.listFn(ctx, p)
}

func (f *fakeUserService) Get(ctx context.Context, uuid string) (int, any, error) {
	if f.getFn == nil {
		panic("unexpected Get call")
	}
	return f.getFn(ctx, uuid)
}

func (f *fakeUserService) Create(ctx context.Context, p service.UserCreateParams) (int, any, error) {
	if f.createFn == nil {
		panic("unexpected Create call")
	}
	return f.createFn(ctx, p)
}

func (f *fakeUserService) Update(ctx context.Context, uuid string, p service.UserUpdateParams) (int, any, error) {
	if f.updateFn == nil {
		panic("unexpected Update call")
	}
	return f.updateFn(ctx, uuid, p)
}

func (f *fakeUserService) Delete(ctx context.Context, p service.DeleteParams) (service.DeleteResult, error) {
	if f.deleteFn == nil {
		panic("unexpected Delete call")
	}
	return f.deleteFn(ctx, p)
}

type fakeSectionService struct {
	listFn   func(ctx context.Context, p service.SectionListParams) (int, any, error)
	getFn    func(ctx context.Context, id string) (int, any, error)
	createFn func(ctx context.Context, p service.SectionCreateParams) (int, any, error)
	updateFn func(ctx context.Context, id string, p service.SectionUpdateParams) (int, any, error)
	deleteFn func(ctx context.Context, p service.DeleteParams) (service.DeleteResult, error)
}

func (f *fakeSectionService) List(ctx context.Context, p service.SectionListParams) (int, any, error) {
	if f.listFn == nil {
		panic("unexpected List call")
	}
	return f.listFn(ctx, p)
}

func (f *fakeSectionService) Get(ctx context.Context, id string) (int, any, error) {
	if f.getFn == nil {
		panic("unexpected Get call")
	}
	return f.getFn(ctx, id)
}

func (f *fakeSectionService) Create(ctx context.Context, p service.SectionCreateParams) (int, any, error) {
	if f.createFn == nil {
		panic("unexpected Create call")
	}
	return f.createFn(ctx, p)
}

func (f *fakeSectionService) Update(ctx context.Context, id string, p service.SectionUpdateParams) (int, any, error) {
	if f.updateFn == nil {
		panic("unexpected Update call")
	}
	return f.updateFn(ctx, id, p)
}

func (f *fakeSectionService) Delete(ctx context.Context, p service.DeleteParams) (service.DeleteResult, error) {
	if f.deleteFn == nil {
		panic("unexpected Delete call")
	}
	return f.deleteFn(ctx, p)
}

// newTestEcho registers the resource routes exactly as the production router
// does, with fakes behind the factory.
func newTestEcho(f *fakeFactory) *echo.Echo {
	e := echo.New()
	h := NewHandlers(&server.Server{}, f)
	e.Any("/account/users/", h.Users.Operate)
	e.Any("/account/users/:uuid/", h.Users.Operate)
	e.Any("/content/sections/", h.Sections.Operate)
	e.Any("/content/sections/:id/", h.Sections.Operate)
	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// testEnvelope mirrors the wire shape with the payload left raw for
// per-test decoding.
type testEnvelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
