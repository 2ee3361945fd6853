package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eternalzzx/blog-server/internal/errs"
	"github.com/eternalzzx/blog-server/internal/repository"
)

func strptr(s string) *string { return &s }

func TestBuildListQuery(t *testing.T) {
	orderColumns := map[string]struct{}{"id": {}, "create_at": {}}
	queryColumns := map[string]struct{}{"username": {}, "nick": {}}

	t.Run("defaults", func(t *testing.T) {
		lq, err := buildListQuery(listParams{}, "id", orderColumns, queryColumns)
		require.NoError(t, err)
		assert.Equal(t, repository.ListQuery{OrderField: "id", Order: "desc"}, lq,
			"page 0 means all data with no limit")
	})

	t.Run("paging", func(t *testing.T) {
		lq, err := buildListQuery(listParams{
			page:     strptr("3"),
			pageSize: strptr("20"),
		}, "id", orderColumns, queryColumns)
		require.NoError(t, err)
		assert.Equal(t, 20, lq.Limit)
		assert.Equal(t, 40, lq.Offset)
	})

	t.Run("default page size", func(t *testing.T) {
		lq, err := buildListQuery(listParams{page: strptr("2")}, "id", orderColumns, queryColumns)
		require.NoError(t, err)
		assert.Equal(t, 10, lq.Limit)
		assert.Equal(t, 10, lq.Offset)
	})

	t.Run("order and search", func(t *testing.T) {
		lq, err := buildListQuery(listParams{
			orderField: strptr("create_at"),
			order:      strptr("asc"),
			query:      strptr("go"),
			queryField: strptr("nick"),
		}, "id", orderColumns, queryColumns)
		require.NoError(t, err)
		assert.Equal(t, "create_at", lq.OrderField)
		assert.Equal(t, "asc", lq.Order)
		assert.Equal(t, "go", lq.Query)
		assert.Equal(t, "nick", lq.QueryField)
	})

	t.Run("rejections", func(t *testing.T) {
		tests := []struct {
			name   string
			params listParams
			msg    string
		}{
			{"bad page", listParams{page: strptr("x")}, "Invalid page number"},
			{"negative page", listParams{page: strptr("-1")}, "Invalid page number"},
			{"bad page size", listParams{pageSize: strptr("0")}, "Invalid page size"},
			{"unknown order field", listParams{orderField: strptr("password")}, "Invalid order field"},
			{"bad direction", listParams{order: strptr("up")}, "Invalid order direction"},
			{"unknown query field", listParams{queryField: strptr("password")}, "Invalid query field"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := buildListQuery(tt.params, "id", orderColumns, queryColumns)
				require.Error(t, err)
				assert.Equal(t, tt.msg, errs.MessageOf(err))
			})
		}
	})
}

func TestParseInt64List(t *testing.T) {
	got, err := parseInt64List([]string{"2", "9", "2"}, "Invalid group id")
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 9, 2}, got, "order and duplicates survive")

	got, err = parseInt64List([]string{}, "Invalid group id")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parseInt64List([]string{"2", "x"}, "Invalid group id")
	require.Error(t, err)
	assert.Equal(t, "Invalid group id", errs.MessageOf(err))
}

func TestParseUUIDList(t *testing.T) {
	valid := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

	got, err := parseUUIDList([]string{valid}, "Invalid moderator UUID")
	require.NoError(t, err)
	assert.Equal(t, []string{valid}, got)

	_, err = parseUUIDList([]string{"not-a-uuid"}, "Invalid moderator UUID")
	require.Error(t, err)
	assert.Equal(t, "Invalid moderator UUID", errs.MessageOf(err))
}

func TestParseEnum(t *testing.T) {
	got, err := parseEnum(nil, 2, 3, "Invalid status")
	require.NoError(t, err)
	assert.Equal(t, int16(2), got, "unset falls back to the default")

	got, err = parseEnum(strptr("1"), 2, 3, "Invalid status")
	require.NoError(t, err)
	assert.Equal(t, int16(1), got)

	for _, raw := range []string{"4", "-1", "x", ""} {
		_, err := parseEnum(strptr(raw), 2, 3, "Invalid status")
		assert.Error(t, err, "raw %q", raw)
	}
}

func TestApplyPrivacy(t *testing.T) {
	u := &repository.User{GenderPrivacy: PrivacyPublic, EmailPrivacy: PrivacyPrivate}

	err := applyPrivacy(u, map[string]string{
		"email_privacy": "2",
		"phone_privacy": "1",
	})
	require.NoError(t, err)
	assert.Equal(t, PrivacyPublic, u.EmailPrivacy)
	assert.Equal(t, PrivacyProtected, u.PhonePrivacy)
	assert.Equal(t, PrivacyPublic, u.GenderPrivacy, "untouched overrides keep their defaults")

	err = applyPrivacy(u, map[string]string{"email_privacy": "3"})
	require.Error(t, err)
	assert.Equal(t, "Invalid privacy setting", errs.MessageOf(err))

	err = applyPrivacy(u, map[string]string{"email_privacy": "x"})
	assert.Error(t, err)
}

func TestOptionalText(t *testing.T) {
	assert.Nil(t, optionalText(""), "empty input clears the column")

	got := optionalText("writer")
	require.NotNil(t, got)
	assert.Equal(t, "writer", *got)
}
