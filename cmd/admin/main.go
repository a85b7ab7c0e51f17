package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"jobboard/chat/internal/auth"
	"jobboard/chat/internal/config"
	"jobboard/chat/internal/directory"
	"jobboard/chat/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	db, err := storage.OpenDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI
	ctx := context.Background()

	switch os.Args[1] {
	case "purge-user":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin purge-user <user_id>")
			os.Exit(1)
		}
		n, err := storageSvc.DeleteRoomsForUser(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Error purging user: %v", err)
		}
		fmt.Printf("Deleted %d room(s) of user %s.\n", n, os.Args[2])
	case "rooms":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin rooms <user_id>")
			os.Exit(1)
		}
		if err := listRooms(ctx, storageSvc, os.Args[2]); err != nil {
			log.Fatalf("Error listing rooms: %v", err)
		}
	case "token":
		if len(os.Args) < 3 || len(os.Args) > 4 {
			fmt.Println("Usage: admin token <user_id> [ttl, e.g. 1h]")
			os.Exit(1)
		}
		ttl := time.Hour
		if len(os.Args) == 4 {
			ttl, err = time.ParseDuration(os.Args[3])
			if err != nil {
				fmt.Println("Invalid ttl. Please provide a duration such as 30m or 2h.")
				os.Exit(1)
			}
		}
		user, err := directory.NewGormDirectory(db).GetUser(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Error resolving user: %v", err)
		}
		token, err := auth.NewAccessTokens(cfg.AccessTokenSecret).Issue(user.ID, user.Username, ttl)
		if err != nil {
			log.Fatalf("Error issuing token: %v", err)
		}
		fmt.Println(token)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: admin <purge-user|rooms|token> [args]")
	os.Exit(1)
}

func listRooms(ctx context.Context, s storage.RoomStore, userID string) error {
	rooms, err := s.ListRoomsForUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, r := range rooms {
		fmt.Printf("%s\t%s\t%s\t%s\n", r.ID, r.OtherParticipant(userID), r.UpdatedAt.Format(time.RFC3339), r.Name)
	}
	fmt.Printf("%d room(s)\n", len(rooms))
	return nil
}
