package router

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube-dev/yatube/internal/config"
	"github.com/yatube-dev/yatube/internal/domain"
	"github.com/yatube-dev/yatube/internal/errors"
	"github.com/yatube-dev/yatube/internal/handler"
	"github.com/yatube-dev/yatube/internal/jwt"
	"github.com/yatube-dev/yatube/internal/markdown"
	"github.com/yatube-dev/yatube/internal/middleware"
	"github.com/yatube-dev/yatube/internal/middleware/ratelimiter"
	"github.com/yatube-dev/yatube/internal/pagecache"
	"github.com/yatube-dev/yatube/internal/setup"
	"github.com/yatube-dev/yatube/internal/validation"
)

var author = domain.User{Id: 1, Username: "author"}

type stubFeed struct{ indexCalls int }

func (s *stubFeed) Index(page string) (domain.PostPage, error) {
	s.indexCalls++
	return domain.PostPage{Items: []domain.Post{{Id: 1, Text: "hello", Author: author}}, Number: 1, NumPages: 1, Count: 1, PerPage: 10}, nil
}

func (s *stubFeed) Group(slug domain.GroupSlug, page string) (domain.GroupFeed, error) {
	return domain.GroupFeed{}, errors.NotFound("group")
}

func (s *stubFeed) Profile(username domain.Username, viewer *domain.UserId, page string) (domain.ProfileFeed, error) {
	return domain.ProfileFeed{Author: author}, nil
}

func (s *stubFeed) Following(user domain.UserId, page string) (domain.PostPage, error) {
	return domain.PostPage{Number: 1, NumPages: 1, PerPage: 10}, nil
}

func (s *stubFeed) PostDetail(id domain.PostId, viewer *domain.UserId) (domain.PostDetail, error) {
	if id != 1 {
		return domain.PostDetail{}, errors.NotFound("post")
	}
	return domain.PostDetail{Post: domain.Post{Id: 1, Text: "hello", Author: author}, PostsCount: 1}, nil
}

type stubComment struct{ created int }

func (s *stubComment) Create(data domain.CommentCreationData) (domain.CommentId, error) {
	s.created++
	return 1, nil
}

type stubFollow struct{}

func (stubFollow) Follow(user domain.UserId, target domain.Username) (domain.User, error) {
	return domain.User{Id: 2, Username: target}, nil
}

func (stubFollow) Unfollow(user domain.UserId, target domain.Username) (domain.User, error) {
	return domain.User{Id: 2, Username: target}, nil
}

type stubGroup struct{}

func (stubGroup) Create(domain.GroupCreationData) (domain.GroupId, error) { return 1, nil }

func (stubGroup) Get(slug domain.GroupSlug) (domain.Group, error) { return domain.Group{}, errors.NotFound("group") }

func (stubGroup) List() ([]domain.Group, error) { return nil, nil }

type stubAuth struct{}

func (stubAuth) Signup(domain.SignupData) (domain.UserId, error) { return 1, nil }

func (stubAuth) Login(domain.Credentials) (string, error) { return "", errors.ErrBadCreds }

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type testServer struct {
	mux     http.Handler
	feed    *stubFeed
	comment *stubComment
	jwt     jwt.JwtService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	templates, err := handler.LoadTemplates(filepath.Join("..", "..", "templates"), markdown.New())
	require.NoError(t, err)

	cfg := &config.Config{Public: config.Public{
		IndexCacheTTL:         20 * time.Second,
		JwtTTL:                time.Hour,
		MaxImageSize:          1 << 20,
		AllowedImageMimeTypes: []string{"image/png"},
		StaticPath:            filepath.Join("..", "..", "static"),
		MediaPath:             t.TempDir(),
		CORSAllowedOrigins:    []string{"http://localhost:3000"},
	}}
	jwtSvc := jwt.New("secret", time.Hour)
	authMw := middleware.NewAuth(jwtSvc, false)
	cache := pagecache.NewMemory()
	v := validation.New(validation.Limits{PostTextMaxLen: 100, CommentTextMaxLen: 100, PasswordMinLen: 8, MaxImageSize: 1 << 20, AllowedImageMimeTypes: []string{"image/png"}})

	s := &testServer{feed: &stubFeed{}, comment: &stubComment{}, jwt: jwtSvc}
	h := handler.New(handler.Services{
		Auth:    stubAuth{},
		Feed:    s.feed,
		Comment: s.comment,
		Follow:  stubFollow{},
		Group:   stubGroup{},
		Health:  stubPinger{},
	}, templates, v, cache, authMw, cfg.Public)

	s.mux = New(&setup.Dependencies{
		Config:         cfg,
		Handler:        h,
		AuthMiddleware: authMw,
		Cache:          cache,
		AuthLimiter:    ratelimiter.NewUserRateLimiter(0.0001, 2, time.Hour),
		WriteLimiter:   ratelimiter.NewUserRateLimiter(100, 100, time.Hour),
	})
	return s
}

func (s *testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.mux.ServeHTTP(rr, req)
	return rr
}

const csrfToken = "router-test-token"

func csrfPost(target string, form url.Values) *http.Request {
	form.Set(middleware.CSRFFormField, csrfToken)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: csrfToken})
	return req
}

func (s *testServer) login(t *testing.T, req *http.Request) *http.Request {
	t.Helper()
	token, err := s.jwt.NewToken(domain.User{Id: 3, Username: "reader"})
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: token})
	return req
}

func TestPublicPages(t *testing.T) {
	s := newTestServer(t)

	rr := s.serve(httptest.NewRequest(http.MethodGet, "/posts/1/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "hello")
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))

	rr = s.serve(httptest.NewRequest(http.MethodGet, "/group/missing/", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.serve(httptest.NewRequest(http.MethodGet, "/definitely/not/here", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "/definitely/not/here")
}

func TestNeedAuthRedirectsToLogin(t *testing.T) {
	s := newTestServer(t)

	rr := s.serve(csrfPost("/posts/1/comment/", url.Values{"text": {"hi"}}))
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/auth/login/?next=%2Fposts%2F1%2Fcomment%2F", rr.Header().Get("Location"))
	assert.Zero(t, s.comment.created)

	rr = s.serve(httptest.NewRequest(http.MethodGet, "/follow/", nil))
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Header().Get("Location"), "/auth/login/?next="))
}

func TestCommentWithSession(t *testing.T) {
	s := newTestServer(t)

	rr := s.serve(s.login(t, csrfPost("/posts/1/comment/", url.Values{"text": {"hi"}})))
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/posts/1/", rr.Header().Get("Location"))
	assert.Equal(t, 1, s.comment.created)
}

func TestCSRFRejected(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/posts/1/comment/", strings.NewReader("text=hi"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := s.serve(s.login(t, req))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "CSRF verification failed")
	assert.Zero(t, s.comment.created)
}

func TestFollowTrailingSlashOptional(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/profile/author/follow", "/profile/author/follow/", "/profile/author/unfollow", "/profile/author/unfollow/"} {
		rr := s.serve(s.login(t, httptest.NewRequest(http.MethodGet, path, nil)))
		assert.Equal(t, http.StatusFound, rr.Code, path)
		assert.Equal(t, "/profile/author/", rr.Header().Get("Location"), path)
	}
}

func TestAPIPostsAreCached(t *testing.T) {
	s := newTestServer(t)

	rr := s.serve(httptest.NewRequest(http.MethodGet, "/api/v1/posts/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "MISS", rr.Header().Get("X-Cache"))

	rr = s.serve(httptest.NewRequest(http.MethodGet, "/api/v1/posts/", nil))
	assert.Equal(t, "HIT", rr.Header().Get("X-Cache"))
	assert.Contains(t, rr.Body.String(), `"text":"hello"`)
	assert.Equal(t, 1, s.feed.indexCalls)
}

func TestAPICORS(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts/1/", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rr := s.serve(req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoginRateLimited(t *testing.T) {
	s := newTestServer(t)
	codes := make([]int, 3)
	for i := range codes {
		req := csrfPost("/auth/login/", url.Values{"username": {"a"}, "password": {"b"}})
		req.RemoteAddr = "198.51.100.7:5000"
		codes[i] = s.serve(req).Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestOpsEndpoints(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, s.serve(httptest.NewRequest(http.MethodGet, "/health", nil)).Code)
	assert.Equal(t, http.StatusOK, s.serve(httptest.NewRequest(http.MethodGet, "/ready", nil)).Code)

	s.serve(httptest.NewRequest(http.MethodGet, "/posts/1/", nil))
	rr := s.serve(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "http_requests_total")

	rr = s.serve(httptest.NewRequest(http.MethodGet, "/static/css/style.css", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func oversizedUpload(t *testing.T, target string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField(middleware.CSRFFormField, csrfToken))
	require.NoError(t, mw.WriteField("text", "with a huge picture"))
	fw, err := mw.CreateFormFile("image", "huge.png")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte{0x89}, 3<<20))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: "csrf_token", Value: csrfToken})
	return req
}

func TestOversizedUploadShowsFormError(t *testing.T) {
	s := newTestServer(t)

	rr := s.serve(s.login(t, oversizedUpload(t, "/create/")))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "The upload is too large.")
	assert.NotContains(t, rr.Body.String(), "CSRF verification failed")
	assert.NotContains(t, rr.Body.String(), "This field is required.")
}

func TestOversizedLogoutIsRejected(t *testing.T) {
	s := newTestServer(t)

	rr := s.serve(s.login(t, oversizedUpload(t, "/auth/logout/")))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	for _, c := range rr.Result().Cookies() {
		assert.NotEqual(t, middleware.AccessTokenCookie, c.Name, "session must survive")
	}
}
