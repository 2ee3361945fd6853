package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eternalzzx/blog-server/internal/errs"
	"github.com/eternalzzx/blog-server/internal/service"
)

func TestUsersList(t *testing.T) {
	var got service.UserListParams
	svc := &fakeUserService{
		listFn: func(_ context.Context, p service.UserListParams) (int, any, error) {
			got = p
			return http.StatusOK, map[string]any{"total": 0, "users": []any{}}, nil
		},
	}
	e := newTestEcho(&fakeFactory{users: svc})

	rec := doRequest(e, http.MethodGet, "/account/users/?page=2&page_size=20&order=asc", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, env.Code)

	require.NotNil(t, got.Page)
	assert.Equal(t, "2", *got.Page)
	require.NotNil(t, got.PageSize)
	assert.Equal(t, "20", *got.PageSize)
	require.NotNil(t, got.Order)
	assert.Equal(t, "asc", *got.Order)
	assert.Nil(t, got.OrderField, "omitted parameters stay unset")
	assert.Nil(t, got.Query)
	assert.Nil(t, got.QueryField)
}

func TestUsersGet(t *testing.T) {
	svc := &fakeUserService{
		getFn: func(_ context.Context, uuid string) (int, any, error) {
			assert.Equal(t, "9f2c", uuid)
			return http.StatusOK, map[string]string{"uuid": uuid}, nil
		},
	}
	e := newTestEcho(&fakeFactory{users: svc})

	rec := doRequest(e, http.MethodGet, "/account/users/9f2c/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.JSONEq(t, `{"uuid":"9f2c"}`, string(env.Data))
}

func TestUsersCreateExtraction(t *testing.T) {
	var got service.UserCreateParams
	svc := &fakeUserService{
		createFn: func(_ context.Context, p service.UserCreateParams) (int, any, error) {
			got = p
			return http.StatusOK, nil, nil
		},
	}
	e := newTestEcho(&fakeFactory{users: svc})

	body := "username=eternal&password=pw&nick=&group_ids=2;9&email_privacy=2"
	rec := doRequest(e, http.MethodPost, "/account/users/", body)

	assert.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, got.Username)
	assert.Equal(t, "eternal", *got.Username)
	require.NotNil(t, got.Password)
	assert.Equal(t, "pw", *got.Password)
	require.NotNil(t, got.Nick, "empty-but-present field is set")
	assert.Equal(t, "", *got.Nick)
	assert.Nil(t, got.Gender, "omitted field stays unset")
	assert.Equal(t, []string{"2", "9"}, got.GroupIDs)
	assert.Equal(t, map[string]string{"email_privacy": "2"}, got.Privacy,
		"only supplied privacy overrides appear")
}

func TestUsersCreateAbsentList(t *testing.T) {
	var got service.UserCreateParams
	svc := &fakeUserService{
		createFn: func(_ context.Context, p service.UserCreateParams) (int, any, error) {
			got = p
			return http.StatusOK, nil, nil
		},
	}
	e := newTestEcho(&fakeFactory{users: svc})

	doRequest(e, http.MethodPost, "/account/users/", "username=u&password=p")

	require.NotNil(t, got.GroupIDs, "create treats an absent list as empty")
	assert.Empty(t, got.GroupIDs)
	assert.Empty(t, got.Privacy)
}

func TestUsersUpdateListSentinel(t *testing.T) {
	var got service.UserUpdateParams
	svc := &fakeUserService{
		updateFn: func(_ context.Context, uuid string, p service.UserUpdateParams) (int, any, error) {
			assert.Equal(t, "9f2c", uuid)
			got = p
			return http.StatusOK, nil, nil
		},
	}
	e := newTestEcho(&fakeFactory{users: svc})

	doRequest(e, http.MethodPut, "/account/users/9f2c/", "nick=writer")
	assert.Nil(t, got.GroupIDs, "omitted list means leave unchanged")

	doRequest(e, http.MethodPut, "/account/users/9f2c/", "nick=writer&group_ids=")
	require.NotNil(t, got.GroupIDs, "present-but-empty list clears it")
	assert.Empty(t, got.GroupIDs)
}

func TestUsersMethodNotAllowed(t *testing.T) {
	e := newTestEcho(&fakeFactory{users: &fakeUserService{}})

	rec := doRequest(e, http.MethodPatch, "/account/users/", "nick=writer")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"code":405,"data":"Method not allowed"}`, rec.Body.String())
}

func TestUsersFaultTranslation(t *testing.T) {
	t.Run("structured fault mirrors code and message", func(t *testing.T) {
		svc := &fakeUserService{
			getFn: func(context.Context, string) (int, any, error) {
				return 0, nil, errs.NewNotFoundError("User not found")
			},
		}
		e := newTestEcho(&fakeFactory{users: svc})

		rec := doRequest(e, http.MethodGet, "/account/users/9f2c/", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"code":404,"data":"User not found"}`, rec.Body.String())
	})

	t.Run("bare error becomes the generic 400", func(t *testing.T) {
		svc := &fakeUserService{
			getFn: func(context.Context, string) (int, any, error) {
				return 0, nil, errors.New("pq: connection refused")
			},
		}
		e := newTestEcho(&fakeFactory{users: svc})

		rec := doRequest(e, http.MethodGet, "/account/users/9f2c/", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"code":400,"data":"Request error"}`, rec.Body.String())
	})
}

func TestUsersDeleteSingle(t *testing.T) {
	var got service.DeleteParams
	svc := &fakeUserService{
		deleteFn: func(_ context.Context, p service.DeleteParams) (service.DeleteResult, error) {
			got = p
			return service.DeleteResult{Status: service.StatusSuccess, ID: p.DeleteID, Name: "eternal"}, nil
		},
	}
	e := newTestEcho(&fakeFactory{users: svc})

	rec := doRequest(e, http.MethodDelete, "/account/users/9f2c/", "force=true")

	assert.Equal(t, service.DeleteParams{DeleteID: "9f2c", Force: true}, got)
	assert.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var results []service.DeleteResult
	require.NoError(t, json.Unmarshal(env.Data, &results))
	require.Len(t, results, 1, "a path identifier is a one-element batch")
	assert.Equal(t, service.StatusSuccess, results[0].Status)
}

func TestUsersDeleteBatchPartialFailure(t *testing.T) {
	var calls []service.DeleteParams
	svc := &fakeUserService{
		deleteFn: func(_ context.Context, p service.DeleteParams) (service.DeleteResult, error) {
			calls = append(calls, p)
			if p.DeleteID == "b" {
				return service.DeleteResult{}, errs.NewNotFoundError("Record not found")
			}
			return service.DeleteResult{Status: service.StatusSuccess, ID: p.DeleteID, Name: "n"}, nil
		},
	}
	e := newTestEcho(&fakeFactory{users: svc})

	rec := doRequest(e, http.MethodDelete, "/account/users/", "id_list=a;b;c")

	require.Len(t, calls, 3, "a failed item does not stop the batch")
	assert.Equal(t, "a", calls[0].DeleteID)
	assert.Equal(t, "b", calls[1].DeleteID)
	assert.Equal(t, "c", calls[2].DeleteID)
	assert.False(t, calls[0].Force)

	assert.Equal(t, http.StatusOK, rec.Code, "any success makes the batch a 200")

	env := decodeEnvelope(t, rec)
	var results []service.DeleteResult
	require.NoError(t, json.Unmarshal(env.Data, &results))
	require.Len(t, results, 3)
	assert.Equal(t, service.StatusSuccess, results[0].Status)
	assert.Equal(t, service.DeleteResult{
		Status: service.StatusFailure,
		ID:     "b",
		Name:   "Record not found",
	}, results[1], "a fault becomes a failure item carrying its message")
	assert.Equal(t, service.StatusSuccess, results[2].Status)
}

func TestUsersDeleteBatchAllFail(t *testing.T) {
	svc := &fakeUserService{
		deleteFn: func(_ context.Context, p service.DeleteParams) (service.DeleteResult, error) {
			return service.DeleteResult{}, errors.New("boom")
		},
	}
	e := newTestEcho(&fakeFactory{users: svc})

	rec := doRequest(e, http.MethodDelete, "/account/users/", "id_list=a;b")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	var results []service.DeleteResult
	require.NoError(t, json.Unmarshal(env.Data, &results))
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, service.StatusFailure, r.Status)
		assert.Equal(t, "Request error", r.Name, "bare errors surface as the generic message")
	}
}

func TestUsersDeleteMissingIDList(t *testing.T) {
	calls := 0
	svc := &fakeUserService{
		deleteFn: func(_ context.Context, p service.DeleteParams) (service.DeleteResult, error) {
			calls++
			return service.DeleteResult{Status: service.StatusSuccess, ID: p.DeleteID}, nil
		},
	}
	e := newTestEcho(&fakeFactory{users: svc})

	rec := doRequest(e, http.MethodDelete, "/account/users/", "force=true")

	assert.Equal(t, 0, calls, "the parameter error is detected before any service call")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"code":400,"data":"Parameter error"}`, rec.Body.String())
}
