package domain

type Group struct {
	Id          GroupId
	Title       string
	Slug        GroupSlug
	Description string
}

func (g Group) String() string {
	return g.Title
}

type GroupCreationData struct {
	Title       string
	Slug        GroupSlug
	Description string
}
