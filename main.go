package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"inkwell/crud"
	"inkwell/http"
	"inkwell/storage"
)

// main is the app's entry point.
func main() {
	// Check if the flag "-prod" has been provided. It means that we're
	// running in production.
	productionBool := flag.Bool("prod", false, "Provide this flag in production to ensure that a .config.json file is provided before the application starts.")
	flag.Parse()

	// Structured logs: JSON in production, text in development.
	if *productionBool {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	}

	// Load configuration from a .config.json file if present, otherwise
	// use the default dev setup.
	config := LoadConfig(*productionBool)

	// Open a database connection and execute migrations.
	db := NewDB(config.Database.ConnectionInfo())
	err := Open(db, config.IsProd())
	must(err)
	defer Close(db)
	err = AutoMigrate(db)
	must(err)

	// Start the crud services.
	services, err := crud.NewServices(
		db.Gorm,
		crud.WithUser(config.HMACKey, config.Pepper),
		crud.WithGroup(),
		crud.WithPost(),
		crud.WithComment(),
		crud.WithFollow(),
		crud.WithOAuth(),
	)
	must(err)

	// Create an oauth config object for doing oauth with Github.
	var githubOAuth *oauth2.Config
	if config.Github.ID != "" {
		githubOAuth = &oauth2.Config{
			ClientID:     config.Github.ID,
			ClientSecret: config.Github.Secret,
			RedirectURL:  config.Github.RedirectURL,
			Endpoint:     github.Endpoint,
		}
	}

	// Set up a webserver.
	server := http.NewServer(http.ServerConfig{
		IsProd:       config.IsProd(),
		CSRFKey:      config.CSRFKey,
		PostsPerPage: config.PostsPerPage,
		CacheTTL:     time.Duration(config.CacheTTLSecs) * time.Second,
		GithubOAuth:  githubOAuth,
	}, services, storage.NewImageService())

	// Serve the app.
	server.Run(config.Port)
}

// must is a little helper for shortening the panic instruction.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
