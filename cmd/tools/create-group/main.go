// create-group adds a post group. Groups have no web form, so this is the
// way to seed them.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/yatube-dev/yatube/internal/config"
	"github.com/yatube-dev/yatube/internal/domain"
	"github.com/yatube-dev/yatube/internal/logger"
	"github.com/yatube-dev/yatube/internal/service"
	"github.com/yatube-dev/yatube/internal/storage/pg"
	"github.com/yatube-dev/yatube/internal/validation"
)

func main() {
	var configFolder, title, slug, description string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.StringVar(&title, "title", "", "group title")
	flag.StringVar(&slug, "slug", "", "unique group slug used in URLs")
	flag.StringVar(&description, "description", "", "group description")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	form := validation.GroupForm{Title: title, Slug: slug, Description: description}
	if err := validation.New(validation.Limits{}).Group(form); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	storage, err := pg.New(cfg.Private.Pg)
	if err != nil {
		logger.Log.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}
	defer storage.Cleanup()

	id, err := service.NewGroup(storage).Create(domain.GroupCreationData{
		Title:       form.Title,
		Slug:        form.Slug,
		Description: form.Description,
	})
	if err != nil {
		logger.Log.Error("failed to create group", "slug", slug, "error", err)
		storage.Cleanup()
		os.Exit(1)
	}
	fmt.Printf("created group %q with id %d\n", slug, id)
}
