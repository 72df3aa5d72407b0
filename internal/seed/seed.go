package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"wellspring/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInCategory is a permanent system category.
type BuiltInCategory struct {
	Name        string
	Description string
	Icon        string
}

// BuiltInCategories defines the permanent system categories.
var BuiltInCategories = []BuiltInCategory{
	{Name: "Yoga", Description: "Flows, poses, and flexibility work.", Icon: "lotus"},
	{Name: "Meditation", Description: "Guided stillness and focus practice.", Icon: "brain"},
	{Name: "Cardio", Description: "Heart-rate raising endurance sessions.", Icon: "heart-pulse"},
	{Name: "Strength", Description: "Resistance and bodyweight training.", Icon: "dumbbell"},
	{Name: "Pilates", Description: "Core stability and controlled movement.", Icon: "circle-dot"},
	{Name: "Breathwork", Description: "Breathing techniques for calm and energy.", Icon: "wind"},
	{Name: "Stretching", Description: "Mobility and recovery routines.", Icon: "move"},
	{Name: "Mindfulness", Description: "Short practices for everyday awareness.", Icon: "sparkles"},
}

// Categories seeds the permanent built-in categories, updating
// descriptions in place when they already exist.
func Categories(db *gorm.DB) error {
	for _, item := range BuiltInCategories {
		category := models.Category{
			Name:        item.Name,
			Description: item.Description,
			Icon:        item.Icon,
			IsActive:    true,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"description", "icon", "is_active", "updated_at"}),
		}).Create(&category).Error; err != nil {
			return fmt.Errorf("seed built-in category %s: %w", item.Name, err)
		}
	}
	return nil
}

// Seeder populates the database with realistic demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rng     *rand.Rand
}

// NewSeeder creates a Seeder with default options.
func NewSeeder(db *gorm.DB) *Seeder {
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Seeder{
		db:      db,
		factory: NewFactory(db, Options{}),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seedable data. Postgres gets a single TRUNCATE;
// other dialects fall back to per-table deletes in dependency order.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	if s.db.Dialector.Name() == "postgres" {
		return s.db.Exec(`TRUNCATE TABLE comments, likes, session_trackings, follows, sessions, categories, users RESTART IDENTITY CASCADE;`).Error
	}
	for _, table := range []string{"comments", "likes", "session_trackings", "follows", "sessions", "categories", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedCommunity creates `count` users plus a follow mesh between them.
// A few well-known accounts are always included so local logins stay stable.
func (s *Seeder) SeedCommunity(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	for _, name := range []string{"river", "sage", "test"} {
		if len(users) >= count {
			break
		}
		handle := name
		user, err := s.factory.CreateUser(func(u *models.User) {
			u.Username = handle
			u.Email = fmt.Sprintf("%s@example.com", handle)
			u.Bio = "One of the first accounts here."
		})
		if err != nil {
			return nil, fmt.Errorf("create base user %s: %w", handle, err)
		}
		users = append(users, user)
	}

	for i := len(users); i < count; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)
		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	// Follow mesh: everyone follows a handful of others.
	for _, follower := range users {
		for _, idx := range s.rng.Perm(len(users))[:min(s.rng.Intn(6)+2, len(users))] {
			target := users[idx]
			if target.ID == follower.ID {
				continue
			}
			if err := s.factory.CreateFollow(follower, target); err != nil {
				// Duplicate pairs are possible with random picks; skip them.
				continue
			}
		}
	}

	log.Printf("Seeded %d users with follow mesh", len(users))
	return users, nil
}

// SeedSessions creates `count` sessions spread across users and the
// built-in categories. Roughly 70% published, 20% drafts, 10% private.
func (s *Seeder) SeedSessions(users []*models.User, count int) ([]*models.Session, error) {
	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories to attach sessions to; run Categories first")
	}

	sessions := make([]*models.Session, 0, count)
	for i := 0; i < count; i++ {
		owner := users[s.rng.Intn(len(users))]
		category := &categories[s.rng.Intn(len(categories))]

		status := models.SessionStatusPublished
		privacy := models.SessionPrivacyPublic
		switch roll := s.rng.Float32(); {
		case roll < 0.2:
			status = models.SessionStatusDraft
		case roll < 0.3:
			privacy = models.SessionPrivacyPrivate
		}

		session, err := s.factory.CreateSession(owner, category, status, func(sess *models.Session) {
			sess.Privacy = privacy
		})
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d sessions...", i)
		}
	}
	return sessions, nil
}

// SeedEngagement sprinkles likes, comments, and replies across the
// published sessions.
func (s *Seeder) SeedEngagement(users []*models.User, sessions []*models.Session) error {
	for _, session := range sessions {
		if session.Status != models.SessionStatusPublished || session.Privacy != models.SessionPrivacyPublic {
			continue
		}

		for _, idx := range s.rng.Perm(len(users))[:min(s.rng.Intn(8), len(users))] {
			if err := s.factory.CreateLike(users[idx], session); err != nil {
				continue
			}
		}

		commentCount := s.rng.Intn(4)
		for i := 0; i < commentCount; i++ {
			author := users[s.rng.Intn(len(users))]
			comment, err := s.factory.CreateComment(author, session, nil)
			if err != nil {
				return err
			}
			if s.rng.Float32() < 0.3 {
				replier := users[s.rng.Intn(len(users))]
				if _, err := s.factory.CreateComment(replier, session, comment); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// SeedCompletionHistories gives each user a completion history with a
// recognizable shape: some hold an active streak, some broke one a few
// days ago, the rest dabble sporadically.
func (s *Seeder) SeedCompletionHistories(users []*models.User, sessions []*models.Session) error {
	published := make([]*models.Session, 0, len(sessions))
	for _, session := range sessions {
		if session.Status == models.SessionStatusPublished {
			published = append(published, session)
		}
	}
	if len(published) == 0 {
		return nil
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	for i, user := range users {
		var days []int
		switch i % 3 {
		case 0:
			// Active streak ending today, 3-10 days long.
			length := s.rng.Intn(8) + 3
			for d := 0; d < length; d++ {
				days = append(days, d)
			}
		case 1:
			// A streak that broke: activity from 2-3 days ago backwards.
			start := s.rng.Intn(2) + 2
			length := s.rng.Intn(5) + 2
			for d := start; d < start+length; d++ {
				days = append(days, d)
			}
		default:
			// Sporadic history with gaps.
			for d := 0; d < 30; d++ {
				if s.rng.Float32() < 0.2 {
					days = append(days, d)
				}
			}
		}

		for _, daysAgo := range days {
			session := published[s.rng.Intn(len(published))]
			completedAt := today.AddDate(0, 0, -daysAgo).
				Add(time.Duration(6+s.rng.Intn(14)) * time.Hour)
			if completedAt.After(now) {
				completedAt = now.Add(-time.Duration(s.rng.Intn(60)+1) * time.Minute)
			}
			if _, err := s.factory.CreateCompletion(user, session, completedAt); err != nil {
				// Unique (user, session, completed_at) collisions are fine to skip.
				continue
			}
		}
	}
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
