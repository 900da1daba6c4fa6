// Package main provides admin management utilities for Postboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"postboard/internal/config"
	"postboard/internal/database"
	"postboard/internal/models"
	"postboard/internal/repository"
	"postboard/internal/service"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/admin group-create -title <title> -slug <slug> [-description <text>]")
	fmt.Println("  go run ./cmd/admin group-list")
	fmt.Println("  go run ./cmd/admin group-delete <slug>")
	fmt.Println("  go run ./cmd/admin user-delete <username>")
	fmt.Println("  go run ./cmd/admin migrate")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	admin := service.NewAdminService(repository.NewGroupRepository(db), repository.NewUserRepository(db))
	ctx := context.Background()

	command, args := os.Args[1], os.Args[2:]
	switch command {
	case "group-create":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		title := fs.String("title", "", "Group title")
		slug := fs.String("slug", "", "URL slug")
		description := fs.String("description", "", "Group description")
		_ = fs.Parse(args)

		group, err := admin.CreateGroup(ctx, *title, *slug, *description)
		if err != nil {
			fail(err)
		}
		fmt.Printf("Created group %q (ID: %d) at /group/%s/\n", group.Title, group.ID, group.Slug)

	case "group-list":
		groups, err := admin.ListGroups(ctx)
		if err != nil {
			fail(err)
		}
		if len(groups) == 0 {
			fmt.Println("No groups found")
			return
		}
		for _, g := range groups {
			fmt.Printf("ID: %d | Slug: %s | Title: %s\n", g.ID, g.Slug, g.Title)
		}

	case "group-delete":
		if len(args) < 1 {
			usage()
			os.Exit(1)
		}
		if err := admin.DeleteGroup(ctx, args[0]); err != nil {
			fail(err)
		}
		fmt.Printf("Deleted group %s; its posts are now ungrouped\n", args[0])

	case "user-delete":
		if len(args) < 1 {
			usage()
			os.Exit(1)
		}
		if err := admin.DeleteUser(ctx, args[0]); err != nil {
			fail(err)
		}
		fmt.Printf("Deleted user %s and their posts\n", args[0])

	case "migrate":
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		fmt.Println("Schema is up to date")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		usage()
		os.Exit(1)
	}
}

func fail(err error) {
	if models.IsNotFound(err) || models.IsValidation(err) || models.IsConflict(err) {
		fmt.Println(err.Error())
		os.Exit(1)
	}
	log.Fatalf("Database error: %v", err)
}
