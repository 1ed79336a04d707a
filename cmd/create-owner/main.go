package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"sar_tracker_go/config"
	"sar_tracker_go/db"
	"sar_tracker_go/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(db.Options{
		Path:        cfg.DBPath,
		Environment: cfg.Environment,
		TursoURL:    cfg.TursoDatabaseURL,
		TursoToken:  cfg.TursoAuthToken,
	}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	// Get owner details
	fmt.Println("=== Create New Owner ===")
	fmt.Println()

	fmt.Print("Username: ")
	username, _ := reader.ReadString('\n')

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')

	fmt.Print("Full name: ")
	fullName, _ := reader.ReadString('\n')

	tracker := services.NewTrackerService(services.NewGormRepository(db.DB), nil)
	owner, err := tracker.CreateOwner(context.Background(), services.OwnerInput{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		FullName: strings.TrimSpace(fullName),
	})
	if err != nil {
		log.Fatalf("Failed to create owner: %v", err)
	}

	fmt.Println()
	fmt.Println("✓ Owner created successfully!")
	fmt.Printf("  ID: %d\n", owner.ID)
	fmt.Printf("  Username: %s\n", owner.Username)
	fmt.Printf("  Email: %s\n", owner.Email)
	fmt.Println()
	fmt.Printf("Send requests with the header %s: %d\n", "X-Owner-ID", owner.ID)
}
