package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eternalzzx/blog-server/internal/errs"
	"github.com/eternalzzx/blog-server/internal/service"
)

func TestSectionsCreateExtraction(t *testing.T) {
	var got service.SectionCreateParams
	svc := &fakeSectionService{
		createFn: func(_ context.Context, p service.SectionCreateParams) (int, any, error) {
			got = p
			return http.StatusOK, nil, nil
		},
	}
	e := newTestEcho(&fakeFactory{sections: svc})

	body := "name=go&nick=Go&moderator_uuids=u1;u2&only_roles=true&only_groups=false&role_ids=1;3"
	rec := doRequest(e, http.MethodPost, "/content/sections/", body)

	assert.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, got.Name)
	assert.Equal(t, "go", *got.Name)
	assert.Equal(t, []string{"u1", "u2"}, got.ModeratorUUIDs)
	assert.Equal(t, []string{}, got.AssistantUUIDs, "absent list is empty on create")
	assert.True(t, got.OnlyRoles)
	assert.False(t, got.OnlyGroups)
	assert.Equal(t, []string{"1", "3"}, got.RoleIDs)
	assert.Nil(t, got.Description)
}

func TestSectionsCreateFlagNormalization(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"true", true},
		{"True", false},
		{"1", false},
		{"", false},
	}
	for _, tt := range tests {
		var got service.SectionCreateParams
		svc := &fakeSectionService{
			createFn: func(_ context.Context, p service.SectionCreateParams) (int, any, error) {
				got = p
				return http.StatusOK, nil, nil
			},
		}
		e := newTestEcho(&fakeFactory{sections: svc})

		doRequest(e, http.MethodPost, "/content/sections/", "name=go&only_roles="+tt.raw)
		assert.Equal(t, tt.want, got.OnlyRoles, "raw %q", tt.raw)
	}
}

func TestSectionsUpdateListSentinel(t *testing.T) {
	var got service.SectionUpdateParams
	svc := &fakeSectionService{
		updateFn: func(_ context.Context, id string, p service.SectionUpdateParams) (int, any, error) {
			assert.Equal(t, "7", id)
			got = p
			return http.StatusOK, nil, nil
		},
	}
	e := newTestEcho(&fakeFactory{sections: svc})

	doRequest(e, http.MethodPut, "/content/sections/7/", "nick=Go")
	assert.Nil(t, got.ModeratorUUIDs, "omitted list means leave unchanged")

	doRequest(e, http.MethodPut, "/content/sections/7/", "nick=Go&moderator_uuids=")
	require.NotNil(t, got.ModeratorUUIDs, "present-but-empty list clears it")
	assert.Empty(t, got.ModeratorUUIDs)
}

func TestSectionsGetFault(t *testing.T) {
	svc := &fakeSectionService{
		getFn: func(context.Context, string) (int, any, error) {
			return 0, nil, errs.NewNotFoundError("Section not found")
		},
	}
	e := newTestEcho(&fakeFactory{sections: svc})

	rec := doRequest(e, http.MethodGet, "/content/sections/999/", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":404,"data":"Section not found"}`, rec.Body.String())
}

func TestSectionsMethodNotAllowed(t *testing.T) {
	e := newTestEcho(&fakeFactory{sections: &fakeSectionService{}})

	rec := doRequest(e, http.MethodPatch, "/content/sections/7/", "nick=Go")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"code":405,"data":"Method not allowed"}`, rec.Body.String())
}

func TestSectionsDeleteBatch(t *testing.T) {
	var calls []service.DeleteParams
	svc := &fakeSectionService{
		deleteFn: func(_ context.Context, p service.DeleteParams) (service.DeleteResult, error) {
			calls = append(calls, p)
			return service.DeleteResult{Status: service.StatusSuccess, ID: p.DeleteID, Name: "go"}, nil
		},
	}
	e := newTestEcho(&fakeFactory{sections: svc})

	rec := doRequest(e, http.MethodDelete, "/content/sections/", "id_list=1;2&force=true")

	require.Len(t, calls, 2)
	assert.True(t, calls[0].Force, "the force flag applies to every item")
	assert.True(t, calls[1].Force)
	assert.Equal(t, http.StatusOK, rec.Code)
}
