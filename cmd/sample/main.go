// Command sample serves a small user API documented with github.com/bjaus/restdoc.
//
// Run:
//
//	go run ./cmd/sample
//	go run ./cmd/sample -config restdoc.yaml
//
// Print the documents instead of serving them:
//
//	go run ./cmd/sample -spec                     resource listing
//	go run ./cmd/sample -spec -api users          API declaration of users
//	go run ./cmd/sample -spec -openapi            OpenAPI 3 rendering
//
// Then explore:
//
//	GET    http://localhost:8080/swagger-api-docs          resource listing
//	GET    http://localhost:8080/swagger-api-spec/users    API declaration
//	GET    http://localhost:8080/swagger-ui                Swagger UI
//	GET    http://localhost:8080/users                     list users
//	POST   http://localhost:8080/users                     create user
//	GET    http://localhost:8080/user/{id}                 get user
//	PUT    http://localhost:8080/user/{id}                 update user
//	DELETE http://localhost:8080/user/{id}                 delete user
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"

	"github.com/bjaus/restdoc"
)

func main() {
	configFlag := flag.String("config", "", "YAML configuration file")
	specFlag := flag.Bool("spec", false, "Print a document to stdout and exit")
	apiFlag := flag.String("api", "", "Path identifier of the API declaration to print (requires -spec)")
	openapiFlag := flag.Bool("openapi", false, "Print the OpenAPI 3 rendering (requires -spec)")
	flag.Parse()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		slog.Error("configuration failed", "err", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	r := newRouter(cfg, logger)

	if *specFlag {
		if err := writeDocument(os.Stdout, r, *apiFlag, *openapiFlag); err != nil {
			logger.Error("document generation failed", "err", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := r.ListenAndServe(ctx, cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
	}

	logger.Info("server stopped")
}

func loadConfig(path string) (*restdoc.Config, error) {
	if path == "" {
		cfg := restdoc.DefaultConfig()
		cfg.Title = "Sample API"
		cfg.APIVersion = "1.0"
		return &cfg, nil
	}
	return restdoc.LoadConfig(path)
}

func newRouter(cfg *restdoc.Config, logger *slog.Logger) *restdoc.Router {
	r := restdoc.New(cfg.RouterOptions(logger)...)

	r.Use(restdoc.RequestID())
	r.Use(restdoc.Logger(logger))
	r.Use(restdoc.Recovery(logger))

	store := newUserStore()
	r.Handle("/users", (&Users{store: store}).Resource())
	r.Handle("/user/{id}", (&UserByID{store: store}).Resource())
	r.Handle("/health", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	r.ServeSwagger(cfg.DocsPath, cfg.ServeOptions()...)

	return r
}

// writeDocument prints the resource listing, one API declaration or the
// OpenAPI 3 rendering as indented JSON.
func writeDocument(w io.Writer, r *restdoc.Router, pathID string, openapi bool) error {
	base := &url.URL{Scheme: "http", Host: "localhost", Path: "/"}

	var doc any
	switch {
	case openapi:
		doc = r.OpenAPI3()
	case pathID != "":
		decl, err := r.Declaration(base, pathID)
		if err != nil {
			return err
		}
		doc = decl
	default:
		doc = r.Listing(base)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(doc)
}
