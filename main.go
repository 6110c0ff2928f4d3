package main

import (
	"log"
	"net/http"
	"os"

	"github.com/maxence-charriere/go-app/v10/pkg/app"

	"github.com/kidandcat/lifeboard/internal/api"
	"github.com/kidandcat/lifeboard/internal/config"
	"github.com/kidandcat/lifeboard/internal/db"
	"github.com/kidandcat/lifeboard/internal/ui"
)

func main() {
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	store, err := db.Open(cfg.DataDir)
	if err != nil {
		log.Fatalf("error opening database: %v", err)
	}
	defer store.Close()

	ui.Routes()

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, cfg, store)
	mux.Handle("/", &app.Handler{
		Name:        "Lifeboard",
		ShortName:   "Lifeboard",
		Title:       "Lifeboard",
		Description: "A vision board for images, notes and links",
		Styles:      []string{"/web/app.css"},
	})

	log.Printf("Lifeboard running on %s (%s)", cfg.Addr, cfg.BaseURL)
	log.Fatal(http.ListenAndServe(cfg.Addr, logRequests(mux)))
}
