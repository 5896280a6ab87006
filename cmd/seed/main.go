package main

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"daytrack/internal/config"
	"daytrack/internal/db"
	"daytrack/internal/model"
	"daytrack/internal/repository"
)

// Demo users created alongside the admin account.
var demoUsers = []struct {
	username string
	password string
}{
	{"alice", "alice123"},
	{"bob", "bob12345"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Activity{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	activityRepo := repository.NewActivityRepository(gormDB)
	ctx := context.Background()

	// The admin is a regular credential row, not a login-time bypass.
	admin, created, err := ensureUser(ctx, userRepo, cfg.AdminUsername, cfg.AdminPassword, model.RoleAdmin)
	if err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}
	if created {
		log.Printf("Admin account %q created", admin.Username)
	} else {
		log.Printf("Admin account %q already present", admin.Username)
	}

	seeded := 0
	for _, demo := range demoUsers {
		user, created, err := ensureUser(ctx, userRepo, demo.username, demo.password, model.RoleUser)
		if err != nil {
			log.Fatalf("Failed to seed user %q: %v", demo.username, err)
		}
		if !created {
			log.Printf("User %q already present, skipping demo activities", user.Username)
			continue
		}
		seeded++

		if err := seedActivities(ctx, activityRepo, user); err != nil {
			log.Fatalf("Failed to seed activities for %q: %v", user.Username, err)
		}
	}

	log.Printf("Seed completed successfully! New demo users: %d", seeded)
}

// ensureUser creates the user unless the username is already taken.
func ensureUser(ctx context.Context, repo repository.UserRepository, username, password, role string) (*model.User, bool, error) {
	existing, err := repo.FindByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, false, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// seedActivities logs a day's worth of demo entries through the same
// quota-guarded path the API uses.
func seedActivities(ctx context.Context, repo repository.ActivityRepository, user *model.User) error {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	entries := []model.Activity{
		{
			UserID:      user.ID,
			Title:       "Morning run",
			Description: "5km around the park",
			Date:        now.Format("2006-01-02"),
			CreatedAt:   now,
		},
		{
			UserID:      user.ID,
			Title:       "Reading",
			Description: "Two chapters before lunch",
			Date:        now.Format("2006-01-02"),
			CreatedAt:   now,
		},
	}

	for i := range entries {
		if err := repo.CreateWithDailyCap(ctx, &entries[i], dayStart, dayEnd, 2); err != nil {
			return err
		}
	}
	return nil
}
