package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-blogs/config"
	"github.com/oksasatya/go-ddd-blogs/internal/container"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/dto"
	"github.com/oksasatya/go-ddd-blogs/internal/router"
	"github.com/oksasatya/go-ddd-blogs/pkg/helpers"
)

// seed creates a demo user with one blog by going through the services, so
// the same rules as the API apply. Re-running is safe.
func main() {
	_ = godotenv.Load()
	username := flag.String("username", "demouser", "demo username")
	email := flag.String("email", "demo@blogs.dev", "demo email")
	password := flag.String("password", "password123", "demo password")
	blogTitle := flag.String("blog", "Travel Notes", "demo blog title")
	flag.Parse()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	cleanup, err := container.Wire(ctx, cfg, logger)
	defer cleanup()
	if err != nil {
		cleanup()
		log.Fatalf("seed setup failed: %v", err)
	}
	deps := router.BuildDeps()

	u, err := deps.Auth.Register(ctx, dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	switch {
	case err == nil:
		fmt.Printf("seeded user: id=%s username=%s password=%s\n", u.ID, u.Username, *password)
	case apperror.KindOf(err) == apperror.KindConflict:
		fmt.Printf("user %s already exists\n", *username)
	default:
		cleanup()
		log.Fatalf("failed to seed user: %v", err)
	}

	// log in to get a session; an existing one is ended first
	owner, err := deps.Auth.Login(ctx, dto.LoginRequest{Email: email, Password: password})
	if apperror.Is(err, apperror.KindConflict, apperror.UserAlreadyLoggedIn) {
		users, _, _ := container.GetRepositories()
		existing, gerr := users.GetByUsername(ctx, *username)
		if gerr == nil {
			_ = deps.Auth.Logout(ctx, existing)
		}
		owner, err = deps.Auth.Login(ctx, dto.LoginRequest{Email: email, Password: password})
	}
	if err != nil {
		cleanup()
		log.Fatalf("failed to log in demo user: %v", err)
	}
	defer func() { _ = deps.Auth.Logout(ctx, owner) }()

	b, err := deps.Blogs.AddBlog(ctx, owner, dto.BlogRequest{Title: blogTitle})
	switch {
	case err == nil:
		fmt.Printf("seeded blog: id=%s slug=%s\n", b.ID, b.Slug)
	case apperror.Is(err, apperror.KindConflict, apperror.BlogNameAlreadyExist):
		fmt.Printf("blog %q already exists\n", *blogTitle)
	default:
		fmt.Printf("failed to seed blog: %v\n", err)
	}
}
