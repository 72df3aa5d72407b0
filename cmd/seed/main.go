// Command main runs the database seeder for Wellspring.
package main

import (
	"flag"
	"log"

	"wellspring/internal/config"
	"wellspring/internal/database"
	"wellspring/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numSessions := flag.Int("sessions", 200, "Number of sessions to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d sessions, clean=%v\n", *numUsers, *numSessions, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := seed.Categories(db); err != nil {
		log.Fatalf("Built-in category seeding failed: %v", err)
	}

	users, err := s.SeedCommunity(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	sessions, err := s.SeedSessions(users, *numSessions)
	if err != nil {
		log.Fatalf("Session seeding failed: %v", err)
	}
	if err := s.SeedEngagement(users, sessions); err != nil {
		log.Fatalf("Engagement seeding failed: %v", err)
	}
	if err := s.SeedCompletionHistories(users, sessions); err != nil {
		log.Fatalf("Completion seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
