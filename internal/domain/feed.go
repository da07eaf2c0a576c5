package domain

import "github.com/yatube-dev/yatube/internal/paginator"

type PostPage = paginator.Page[Post]

type ProfileFeed struct {
	Author     User
	Page       PostPage
	PostsCount int
	Following  bool
}

type GroupFeed struct {
	Group Group
	Page  PostPage
}

type PostDetail struct {
	Post       Post
	PostsCount int // total posts of the author
	Comments   []Comment
	CanEdit    bool
}
