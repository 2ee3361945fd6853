// Package service holds the per-resource service contracts and their
// PostgreSQL-backed implementations.
//
// Handlers depend only on the interfaces; each method returns an HTTP-style
// code plus the payload for the response envelope, or a fault that the
// handler's uniform boundary translates. Services are constructed per
// request through the Factory so they carry the request's identity and
// scoped logger.
package service

import "context"

// Delete result statuses reported per item.
const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
)

// DeleteParams is one delete request: a single target identifier and the
// shared force flag.
type DeleteParams struct {
	DeleteID string
	Force    bool
}

// DeleteResult is the per-item outcome of a delete request.
type DeleteResult struct {
	Status string `json:"status"`
	ID     string `json:"id"`
	Name   string `json:"name"`
}

// UserService performs validation, persistence and permission checks for the
// user-account resource.
type UserService interface {
	List(ctx context.Context, p UserListParams) (int, any, error)
	Get(ctx context.Context, uuid string) (int, any, error)
	Create(ctx context.Context, p UserCreateParams) (int, any, error)
	Update(ctx context.Context, uuid string, p UserUpdateParams) (int, any, error)
	Delete(ctx context.Context, p DeleteParams) (DeleteResult, error)
}

// SectionService performs validation and persistence for the content-section
// resource.
type SectionService interface {
	List(ctx context.Context, p SectionListParams) (int, any, error)
	Get(ctx context.Context, id string) (int, any, error)
	Create(ctx context.Context, p SectionCreateParams) (int, any, error)
	Update(ctx context.Context, id string, p SectionUpdateParams) (int, any, error)
	Delete(ctx context.Context, p DeleteParams) (DeleteResult, error)
}
