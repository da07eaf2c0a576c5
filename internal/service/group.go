package service

import (
	"github.com/yatube-dev/yatube/internal/domain"
)

type GroupService interface {
	Create(data domain.GroupCreationData) (domain.GroupId, error)
	Get(slug domain.GroupSlug) (domain.Group, error)
	List() ([]domain.Group, error)
}

type Group struct {
	storage GroupStorage
}

type GroupStorage interface {
	CreateGroup(data domain.GroupCreationData) (domain.GroupId, error)
	Group(slug domain.GroupSlug) (domain.Group, error)
	Groups() ([]domain.Group, error)
}

func NewGroup(storage GroupStorage) GroupService {
	return &Group{storage}
}

func (g *Group) Create(data domain.GroupCreationData) (domain.GroupId, error) {
	return g.storage.CreateGroup(data)
}

func (g *Group) Get(slug domain.GroupSlug) (domain.Group, error) {
	return g.storage.Group(slug)
}

func (g *Group) List() ([]domain.Group, error) {
	return g.storage.Groups()
}
