package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube-dev/yatube/internal/domain"
	"github.com/yatube-dev/yatube/internal/errors"
)

func TestAPIPosts(t *testing.T) {
	env := newTestEnv(t)
	group := domain.Group{Id: 1, Title: "Cats", Slug: "cats"}
	env.feed.MockIndex = func(page string) (domain.PostPage, error) {
		p := testPost(1, "hello")
		p.Group = &group
		p.Image = "posts/a.png"
		return domain.PostPage{Items: []domain.Post{p, testPost(2, "plain")}, Number: 1, NumPages: 3, Count: 22, PerPage: 10}, nil
	}

	rr := env.do(t, nil, httptest.NewRequest(http.MethodGet, "/api/v1/posts/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body pageJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 22, body.Count)
	assert.Equal(t, 3, body.NumPages)
	require.Len(t, body.Results, 2)
	assert.Equal(t, "author", body.Results[0].Author)
	require.NotNil(t, body.Results[0].Group)
	assert.Equal(t, "cats", *body.Results[0].Group)
	require.NotNil(t, body.Results[0].Image)
	assert.Equal(t, "/media/posts/a.png", *body.Results[0].Image)
	assert.Nil(t, body.Results[1].Group)
	assert.Nil(t, body.Results[1].Image)
}

func TestAPIGroup(t *testing.T) {
	env := newTestEnv(t)
	env.feed.MockGroup = func(slug domain.GroupSlug, page string) (domain.GroupFeed, error) {
		if slug != "cats" {
			return domain.GroupFeed{}, errors.NotFound("group")
		}
		return domain.GroupFeed{Group: domain.Group{Id: 1, Title: "Cats", Slug: "cats"}, Page: testPage()}, nil
	}

	rr := env.do(t, nil, httptest.NewRequest(http.MethodGet, "/api/v1/group/cats/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"group":{"id":1,"title":"Cats","slug":"cats","description":""},
		"posts":{"count":0,"num_pages":1,"number":1,"per_page":10,"results":[]}}`, rr.Body.String())

	rr = env.do(t, nil, httptest.NewRequest(http.MethodGet, "/api/v1/group/dogs/", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"group not found"}`, rr.Body.String())
}

func TestAPIPost(t *testing.T) {
	env := newTestEnv(t)
	env.feed.MockPostDetail = func(id domain.PostId, viewer *domain.UserId) (domain.PostDetail, error) {
		assert.Nil(t, viewer)
		if id != 1 {
			return domain.PostDetail{}, errors.NotFound("post")
		}
		return domain.PostDetail{
			Post:     testPost(1, "hello"),
			Comments: []domain.Comment{{Id: 3, Text: "hi", Author: testReader}, {Id: 4, Text: "anon"}},
		}, nil
	}

	rr := env.do(t, nil, httptest.NewRequest(http.MethodGet, "/api/v1/posts/1/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Id       int64         `json:"id"`
		Text     string        `json:"text"`
		Comments []commentJSON `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Id)
	assert.Equal(t, "hello", body.Text)
	require.Len(t, body.Comments, 2)
	require.NotNil(t, body.Comments[0].Author)
	assert.Equal(t, "reader", *body.Comments[0].Author)
	assert.Nil(t, body.Comments[1].Author)

	rr = env.do(t, nil, httptest.NewRequest(http.MethodGet, "/api/v1/posts/2/", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusOK, make(chan int))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = httptest.NewRecorder()
	writeErrorJSON(rr, httptest.NewRequest(http.MethodGet, "/", nil), assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal error"}`, rr.Body.String())
}
