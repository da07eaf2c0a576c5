package handler

import (
	"context"

	"github.com/yatube-dev/yatube/internal/domain"
)

type MockFeedService struct {
	MockIndex      func(page string) (domain.PostPage, error)
	MockGroup      func(slug domain.GroupSlug, page string) (domain.GroupFeed, error)
	MockProfile    func(username domain.Username, viewer *domain.UserId, page string) (domain.ProfileFeed, error)
	MockFollowing  func(user domain.UserId, page string) (domain.PostPage, error)
	MockPostDetail func(id domain.PostId, viewer *domain.UserId) (domain.PostDetail, error)
}

func (m *MockFeedService) Index(page string) (domain.PostPage, error) {
	if m.MockIndex != nil {
		return m.MockIndex(page)
	}
	return domain.PostPage{Number: 1, NumPages: 1, PerPage: 10}, nil
}

func (m *MockFeedService) Group(slug domain.GroupSlug, page string) (domain.GroupFeed, error) {
	if m.MockGroup != nil {
		return m.MockGroup(slug, page)
	}
	return domain.GroupFeed{}, nil
}

func (m *MockFeedService) Profile(username domain.Username, viewer *domain.UserId, page string) (domain.ProfileFeed, error) {
	if m.MockProfile != nil {
		return m.MockProfile(username, viewer, page)
	}
	return domain.ProfileFeed{}, nil
}

func (m *MockFeedService) Following(user domain.UserId, page string) (domain.PostPage, error) {
	if m.MockFollowing != nil {
		return m.MockFollowing(user, page)
	}
	return domain.PostPage{}, nil
}

func (m *MockFeedService) PostDetail(id domain.PostId, viewer *domain.UserId) (domain.PostDetail, error) {
	if m.MockPostDetail != nil {
		return m.MockPostDetail(id, viewer)
	}
	return domain.PostDetail{}, nil
}

type MockPostService struct {
	MockCreate func(data domain.PostCreationData, image *domain.PendingImage) (domain.PostId, error)
	MockGet    func(id domain.PostId) (domain.Post, error)
	MockEdit   func(actor domain.UserId, id domain.PostId) (domain.Post, error)
	MockUpdate func(actor domain.UserId, data domain.PostUpdateData, image *domain.PendingImage) error
}

func (m *MockPostService) Create(data domain.PostCreationData, image *domain.PendingImage) (domain.PostId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data, image)
	}
	return 1, nil
}

func (m *MockPostService) Get(id domain.PostId) (domain.Post, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.Post{}, nil
}

func (m *MockPostService) Edit(actor domain.UserId, id domain.PostId) (domain.Post, error) {
	if m.MockEdit != nil {
		return m.MockEdit(actor, id)
	}
	return domain.Post{}, nil
}

func (m *MockPostService) Update(actor domain.UserId, data domain.PostUpdateData, image *domain.PendingImage) error {
	if m.MockUpdate != nil {
		return m.MockUpdate(actor, data, image)
	}
	return nil
}

type MockCommentService struct {
	MockCreate func(data domain.CommentCreationData) (domain.CommentId, error)
}

func (m *MockCommentService) Create(data domain.CommentCreationData) (domain.CommentId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return 1, nil
}

type MockFollowService struct {
	MockFollow   func(user domain.UserId, target domain.Username) (domain.User, error)
	MockUnfollow func(user domain.UserId, target domain.Username) (domain.User, error)
}

func (m *MockFollowService) Follow(user domain.UserId, target domain.Username) (domain.User, error) {
	if m.MockFollow != nil {
		return m.MockFollow(user, target)
	}
	return domain.User{Username: target}, nil
}

func (m *MockFollowService) Unfollow(user domain.UserId, target domain.Username) (domain.User, error) {
	if m.MockUnfollow != nil {
		return m.MockUnfollow(user, target)
	}
	return domain.User{Username: target}, nil
}

type MockGroupService struct {
	MockCreate func(data domain.GroupCreationData) (domain.GroupId, error)
	MockGet    func(slug domain.GroupSlug) (domain.Group, error)
	MockList   func() ([]domain.Group, error)
}

func (m *MockGroupService) Create(data domain.GroupCreationData) (domain.GroupId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return 1, nil
}

func (m *MockGroupService) Get(slug domain.GroupSlug) (domain.Group, error) {
	if m.MockGet != nil {
		return m.MockGet(slug)
	}
	return domain.Group{}, nil
}

func (m *MockGroupService) List() ([]domain.Group, error) {
	if m.MockList != nil {
		return m.MockList()
	}
	return nil, nil
}

type MockAuthService struct {
	MockSignup func(data domain.SignupData) (domain.UserId, error)
	MockLogin  func(creds domain.Credentials) (string, error)
}

func (m *MockAuthService) Signup(data domain.SignupData) (domain.UserId, error) {
	if m.MockSignup != nil {
		return m.MockSignup(data)
	}
	return 1, nil
}

func (m *MockAuthService) Login(creds domain.Credentials) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(creds)
	}
	return "token", nil
}

type MockPinger struct {
	MockPing func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.MockPing != nil {
		return m.MockPing(ctx)
	}
	return nil
}
