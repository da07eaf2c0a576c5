package service

import (
	"github.com/yatube-dev/yatube/internal/domain"
	internal_errors "github.com/yatube-dev/yatube/internal/errors"
)

// memStorage is an in-memory FeedStorage and FollowStorage. posts are kept
// newest first.
type memStorage struct {
	posts    []domain.Post
	groups   map[domain.GroupSlug]domain.Group
	users    map[domain.Username]domain.User
	follows  map[[2]domain.UserId]bool
	comments map[domain.PostId][]domain.Comment

	listCalls int
}

func newMemStorage() *memStorage {
	return &memStorage{
		groups:   map[domain.GroupSlug]domain.Group{},
		users:    map[domain.Username]domain.User{},
		follows:  map[[2]domain.UserId]bool{},
		comments: map[domain.PostId][]domain.Comment{},
	}
}

func (m *memStorage) addUser(id domain.UserId, username domain.Username) domain.User {
	u := domain.User{Id: id, Username: username}
	m.users[username] = u
	return u
}

func (m *memStorage) addPost(author domain.User, group *domain.Group, text string) domain.Post {
	p := domain.Post{Id: domain.PostId(len(m.posts) + 1), Text: text, Author: author, Group: group}
	m.posts = append([]domain.Post{p}, m.posts...)
	return p
}

func (m *memStorage) match(f domain.FeedFilter, p domain.Post) bool {
	if f.GroupId != nil && (p.Group == nil || p.Group.Id != *f.GroupId) {
		return false
	}
	if f.AuthorId != nil && p.Author.Id != *f.AuthorId {
		return false
	}
	if f.FollowerId != nil && !m.follows[[2]domain.UserId{*f.FollowerId, p.Author.Id}] {
		return false
	}
	return true
}

func (m *memStorage) filtered(f domain.FeedFilter) []domain.Post {
	var out []domain.Post
	for _, p := range m.posts {
		if m.match(f, p) {
			out = append(out, p)
		}
	}
	return out
}

func (m *memStorage) CountPosts(f domain.FeedFilter) (int, error) {
	return len(m.filtered(f)), nil
}

func (m *memStorage) ListPosts(f domain.FeedFilter, limit, offset int) ([]domain.Post, error) {
	m.listCalls++
	posts := m.filtered(f)
	if offset >= len(posts) {
		return nil, nil
	}
	end := min(offset+limit, len(posts))
	return posts[offset:end], nil
}

func (m *memStorage) Post(id domain.PostId) (domain.Post, error) {
	for _, p := range m.posts {
		if p.Id == id {
			return p, nil
		}
	}
	return domain.Post{}, internal_errors.NotFound("post")
}

func (m *memStorage) Comments(postId domain.PostId) ([]domain.Comment, error) {
	return m.comments[postId], nil
}

func (m *memStorage) Group(slug domain.GroupSlug) (domain.Group, error) {
	g, ok := m.groups[slug]
	if !ok {
		return domain.Group{}, internal_errors.NotFound("group")
	}
	return g, nil
}

func (m *memStorage) User(username domain.Username) (domain.User, error) {
	u, ok := m.users[username]
	if !ok {
		return domain.User{}, internal_errors.NotFound("user")
	}
	return u, nil
}

func (m *memStorage) IsFollowing(userId, authorId domain.UserId) (bool, error) {
	return m.follows[[2]domain.UserId{userId, authorId}], nil
}

func (m *memStorage) Follow(userId, authorId domain.UserId) error {
	if userId == authorId {
		return internal_errors.ErrSelfFollow
	}
	m.follows[[2]domain.UserId{userId, authorId}] = true
	return nil
}

func (m *memStorage) Unfollow(userId, authorId domain.UserId) error {
	delete(m.follows, [2]domain.UserId{userId, authorId})
	return nil
}
