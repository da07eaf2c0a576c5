package domain

import "time"

type User struct {
	Id        UserId
	Username  Username
	FirstName string
	LastName  string
	PassHash  string
	CreatedAt time.Time
}

// FullName falls back to the username when no name is set.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}

func (u User) String() string {
	return u.Username
}

type Credentials struct {
	Username Username
	Password Password
}

type SignupData struct {
	Credentials
	FirstName string
	LastName  string
}
