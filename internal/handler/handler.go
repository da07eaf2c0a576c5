package handler

import (
	"context"
	"html/template"

	"github.com/yatube-dev/yatube/internal/config"
	"github.com/yatube-dev/yatube/internal/middleware"
	"github.com/yatube-dev/yatube/internal/pagecache"
	"github.com/yatube-dev/yatube/internal/service"
	"github.com/yatube-dev/yatube/internal/validation"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Services groups everything the handlers call into.
type Services struct {
	Auth    service.AuthService
	Feed    service.FeedService
	Post    service.PostService
	Comment service.CommentService
	Follow  service.FollowService
	Group   service.GroupService
	Health  Pinger
}

type Handler struct {
	Templates map[string]*template.Template

	auth     service.AuthService
	feed     service.FeedService
	post     service.PostService
	comment  service.CommentService
	follow   service.FollowService
	group    service.GroupService
	health   Pinger
	validate *validation.Validator
	cache    pagecache.Cache
	sessions *middleware.Auth
	cfg      config.Public
}

func New(s Services, templates map[string]*template.Template, v *validation.Validator, cache pagecache.Cache, sessions *middleware.Auth, cfg config.Public) *Handler {
	return &Handler{
		Templates: templates,
		auth:      s.Auth,
		feed:      s.Feed,
		post:      s.Post,
		comment:   s.Comment,
		follow:    s.Follow,
		group:     s.Group,
		health:    s.Health,
		validate:  v,
		cache:     cache,
		sessions:  sessions,
		cfg:       cfg,
	}
}
