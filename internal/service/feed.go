package service

import (
	"github.com/yatube-dev/yatube/internal/domain"
	"github.com/yatube-dev/yatube/internal/paginator"
)

// FeedService assembles the paginated post listings. page is the raw value of
// the "page" query parameter.
type FeedService interface {
	Index(page string) (domain.PostPage, error)
	Group(slug domain.GroupSlug, page string) (domain.GroupFeed, error)
	// Profile reports Following for viewer, which is nil for anonymous requests.
	Profile(username domain.Username, viewer *domain.UserId, page string) (domain.ProfileFeed, error)
	Following(user domain.UserId, page string) (domain.PostPage, error)
	PostDetail(id domain.PostId, viewer *domain.UserId) (domain.PostDetail, error)
}

type Feed struct {
	storage FeedStorage
	perPage int
}

type FeedStorage interface {
	CountPosts(filter domain.FeedFilter) (int, error)
	ListPosts(filter domain.FeedFilter, limit, offset int) ([]domain.Post, error)
	Post(id domain.PostId) (domain.Post, error)
	Comments(postId domain.PostId) ([]domain.Comment, error)
	Group(slug domain.GroupSlug) (domain.Group, error)
	User(username domain.Username) (domain.User, error)
	IsFollowing(userId, authorId domain.UserId) (bool, error)
}

func NewFeed(storage FeedStorage, perPage int) FeedService {
	return &Feed{storage: storage, perPage: perPage}
}

func (f *Feed) page(filter domain.FeedFilter, page string) (domain.PostPage, error) {
	return paginator.Paginate(page, f.perPage,
		func() (int, error) { return f.storage.CountPosts(filter) },
		func(limit, offset int) ([]domain.Post, error) { return f.storage.ListPosts(filter, limit, offset) },
	)
}

func (f *Feed) Index(page string) (domain.PostPage, error) {
	return f.page(domain.FeedFilter{}, page)
}

func (f *Feed) Group(slug domain.GroupSlug, page string) (domain.GroupFeed, error) {
	group, err := f.storage.Group(slug)
	if err != nil {
		return domain.GroupFeed{}, err
	}
	posts, err := f.page(domain.FeedFilter{GroupId: &group.Id}, page)
	if err != nil {
		return domain.GroupFeed{}, err
	}
	return domain.GroupFeed{Group: group, Page: posts}, nil
}

func (f *Feed) Profile(username domain.Username, viewer *domain.UserId, page string) (domain.ProfileFeed, error) {
	author, err := f.storage.User(username)
	if err != nil {
		return domain.ProfileFeed{}, err
	}
	posts, err := f.page(domain.FeedFilter{AuthorId: &author.Id}, page)
	if err != nil {
		return domain.ProfileFeed{}, err
	}

	following := false
	if viewer != nil && *viewer != author.Id {
		if following, err = f.storage.IsFollowing(*viewer, author.Id); err != nil {
			return domain.ProfileFeed{}, err
		}
	}
	return domain.ProfileFeed{Author: author, Page: posts, PostsCount: posts.Count, Following: following}, nil
}

func (f *Feed) Following(user domain.UserId, page string) (domain.PostPage, error) {
	return f.page(domain.FeedFilter{FollowerId: &user}, page)
}

func (f *Feed) PostDetail(id domain.PostId, viewer *domain.UserId) (domain.PostDetail, error) {
	post, err := f.storage.Post(id)
	if err != nil {
		return domain.PostDetail{}, err
	}
	count, err := f.storage.CountPosts(domain.FeedFilter{AuthorId: &post.Author.Id})
	if err != nil {
		return domain.PostDetail{}, err
	}
	comments, err := f.storage.Comments(id)
	if err != nil {
		return domain.PostDetail{}, err
	}
	return domain.PostDetail{
		Post:       post,
		PostsCount: count,
		Comments:   comments,
		CanEdit:    viewer != nil && *viewer == post.Author.Id,
	}, nil
}
