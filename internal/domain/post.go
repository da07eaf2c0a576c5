package domain

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"
)

type Post struct {
	Id      PostId
	Text    PostText
	PubDate time.Time
	Group   *Group // nil when the post has no group
	Author  User
	Image   string // path relative to the media root, empty when absent
}

// String returns the first 15 characters of the text.
func (p Post) String() string {
	return truncate(p.Text, 15)
}

func (p Post) HasImage() bool {
	return p.Image != ""
}

// to iterate thru layers: handler -> service -> storage
type PostCreationData struct {
	Text     PostText
	GroupId  *GroupId
	AuthorId UserId
	Image    string
}

type PostUpdateData struct {
	Id      PostId
	Text    PostText
	GroupId *GroupId
	Image   *string // nil keeps the current image
}

// FeedFilter narrows a post listing. Zero value means all posts.
type FeedFilter struct {
	GroupId    *GroupId
	AuthorId   *UserId
	FollowerId *UserId // posts of authors followed by this user
}

type Comment struct {
	Id      CommentId
	PostId  PostId
	Author  *User // nil if the author is unknown
	Text    string
	Created time.Time
}

func (c Comment) String() string {
	return "comment: " + truncate(c.Text, 15)
}

type CommentCreationData struct {
	PostId   PostId
	AuthorId UserId
	Text     string
}

type Follow struct {
	User   User
	Author User
}

func (f Follow) String() string {
	return fmt.Sprintf("%s follows %s", f.User, f.Author)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// PendingImage is a validated upload waiting to be stored.
type PendingImage struct {
	Data      io.Reader
	Extension string
}
