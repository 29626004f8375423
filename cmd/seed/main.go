// Command seed populates the database with an admin account and a few sample
// users for local development. With -delete it wipes the users table instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/sentivox/sentivox/internal/dbx"
	"github.com/sentivox/sentivox/internal/flagx"
	"github.com/sentivox/sentivox/internal/server/auth"
	"github.com/sentivox/sentivox/internal/server/config"
	"github.com/sentivox/sentivox/internal/server/models"
	"github.com/sentivox/sentivox/internal/server/repositories/repomanager"
	"github.com/sentivox/sentivox/internal/server/repositories/users"
)

type options struct {
	deleteAll     bool
	adminPassword string
}

func parseArgs() *options {
	opts := &options{}

	args := flagx.FilterArgs(os.Args[1:], []string{"-delete", "-admin-password"})

	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	fs.BoolVar(&opts.deleteAll, "delete", false, "delete all users instead of seeding")
	fs.StringVar(&opts.adminPassword, "admin-password", "", "admin password (prompted when omitted)")
	_ = fs.Parse(args)

	return opts
}

// promptPassword reads the admin password from the terminal without echo.
func promptPassword() (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("stdin is not a terminal, pass -admin-password instead")
	}
	fmt.Print("Admin password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func sampleUsers() []struct{ name, email, password string } {
	return []struct{ name, email, password string }{
		{"Test User", "test@example.com", "password123"},
		{"Jane Doe", "jane@example.com", "password123"},
		{"John Smith", "john@example.com", "password123"},
	}
}

func run(ctx context.Context) error {
	opts := parseArgs()
	cfg := config.LoadConfig()

	rm, err := repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer rm.Close()

	if opts.deleteAll {
		if err := rm.Users().DeleteAll(ctx); err != nil {
			return fmt.Errorf("error deleting users: %w", err)
		}
		fmt.Println("All users deleted")
		return nil
	}

	adminPassword := opts.adminPassword
	if adminPassword == "" {
		adminPassword, err = promptPassword()
		if err != nil {
			return err
		}
	}
	if len(adminPassword) < 6 {
		return fmt.Errorf("admin password must be at least 6 characters")
	}

	// all-or-nothing: a duplicate or failure rolls back the whole batch
	err = dbx.WithTx(ctx, rm.Conn(), nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := users.NewPostgresRepository(tx)

		if err := createUser(ctx, repo, "Admin", "admin@sentivox.com", adminPassword, models.RoleAdmin); err != nil {
			return err
		}
		for _, u := range sampleUsers() {
			if err := createUser(ctx, repo, u.name, u.email, u.password, models.RoleUser); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Println("Seed data imported")
	return nil
}

func createUser(ctx context.Context, repo users.Repository, name, email, password, role string) error {
	digest, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = repo.Create(ctx, &models.User{
		ID:              uuid.NewString(),
		Name:            name,
		Email:           models.NormalizeEmail(email),
		Password:        digest,
		Role:            role,
		IsEmailVerified: true,
	})
	if err != nil {
		return fmt.Errorf("error creating %s: %w", email, err)
	}

	fmt.Printf("Created %s (%s)\n", email, role)
	return nil
}

func main() {
	if err := run(context.Background()); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
