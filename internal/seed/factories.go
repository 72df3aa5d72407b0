// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"wellspring/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control seeding behavior.
type Options struct {
	// DryRun logs what would be created without touching the database.
	DryRun bool
	// SkipBcrypt stores a plaintext password, trading security for speed
	// when seeding thousands of users locally.
	SkipBcrypt bool
	// MaxDays bounds how far back generated timestamps spread.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng, nextID: 1000}
}

var sessionTagPool = []string{
	"morning", "evening", "low-impact", "no-equipment", "recovery",
	"core", "mobility", "endurance", "calm", "energy", "posture", "sleep",
}

var moodPool = []string{"stressed", "tired", "neutral", "calm", "energized", "happy"}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	levels := []string{models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced}
	age := gofakeit.Number(18, 65)

	user := &models.User{
		Username:        strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:           gofakeit.Email(),
		FirstName:       gofakeit.FirstName(),
		LastName:        gofakeit.LastName(),
		Bio:             gofakeit.Sentence(10),
		Location:        gofakeit.City(),
		FitnessGoals:    gofakeit.RandomString([]string{"build strength", "reduce stress", "sleep better", "train for a 10k", "daily movement habit"}),
		ExperienceLevel: levels[f.rng.Intn(len(levels))],
		Age:             &age,
		Avatar:          fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		IsActive:        true,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildSession constructs a session struct without persisting it. Useful
// for batching. Published sessions get a published_at spread over the
// recent past so feeds and "newest" sorting look lived-in.
func (f *Factory) BuildSession(owner *models.User, category *models.Category, status string, overrides ...func(*models.Session)) *models.Session {
	difficulties := []string{models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced}
	duration := []int{10, 15, 20, 30, 45, 60}[f.rng.Intn(6)]

	tagCount := f.rng.Intn(3) + 1
	tags := make([]string, 0, tagCount)
	for _, idx := range f.rng.Perm(len(sessionTagPool))[:tagCount] {
		tags = append(tags, sessionTagPool[idx])
	}

	session := &models.Session{
		Title:           strings.TrimSuffix(gofakeit.Sentence(4), "."),
		Description:     gofakeit.Paragraph(1, 3, 8, "\n"),
		CategoryID:      category.ID,
		CreatedByID:     owner.ID,
		Difficulty:      difficulties[f.rng.Intn(len(difficulties))],
		DurationMinutes: duration,
		Tags:            strings.Join(tags, ","),
		Instructions:    gofakeit.Paragraph(2, 3, 10, "\n"),
		Equipment:       gofakeit.RandomString([]string{"", "", "mat", "dumbbells", "resistance band", "yoga block"}),
		CaloriesBurned:  duration * (3 + f.rng.Intn(6)),
		Status:          status,
		Privacy:         models.SessionPrivacyPublic,
		Thumbnail:       fmt.Sprintf("https://picsum.photos/seed/%s/600/400", gofakeit.UUID()),
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	created := time.Now().Add(-time.Duration(f.rng.Intn(maxDays*24*60)) * time.Minute)
	session.CreatedAt = created
	if status == models.SessionStatusPublished {
		published := created.Add(time.Duration(f.rng.Intn(48)) * time.Hour)
		if published.After(time.Now()) {
			published = time.Now()
		}
		session.PublishedAt = &published
	}

	for _, override := range overrides {
		override(session)
	}
	return session
}

// CreateSession persists a session built by BuildSession.
func (f *Factory) CreateSession(owner *models.User, category *models.Category, status string, overrides ...func(*models.Session)) (*models.Session, error) {
	session := f.BuildSession(owner, category, status, overrides...)

	if f.opts.DryRun {
		f.nextID++
		session.ID = f.nextID
		log.Printf("[dry-run] CreateSession: status=%s owner=%d title=%q", session.Status, session.CreatedByID, session.Title)
		return session, nil
	}

	if err := f.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// CreateSessionsBatch persists multiple sessions in a single DB call when possible.
func (f *Factory) CreateSessionsBatch(sessions []*models.Session) error {
	if f.opts.DryRun {
		for _, s := range sessions {
			f.nextID++
			s.ID = f.nextID
		}
		log.Printf("[dry-run] CreateSessionsBatch: %d sessions (no DB write)", len(sessions))
		return nil
	}
	return f.db.Create(&sessions).Error
}

// CreateCompletion persists a completion of `session` by `user` at the
// given time, with plausible duration/mood values.
func (f *Factory) CreateCompletion(user *models.User, session *models.Session, completedAt time.Time, overrides ...func(*models.SessionTracking)) (*models.SessionTracking, error) {
	percentage := 100
	duration := session.DurationMinutes
	if f.rng.Float32() < 0.2 {
		percentage = 50 + f.rng.Intn(50)
		duration = duration * percentage / 100
	}

	tracking := &models.SessionTracking{
		UserID:               user.ID,
		SessionID:            session.ID,
		CompletedAt:          completedAt,
		DurationCompleted:    duration,
		CaloriesBurned:       session.CaloriesBurned * percentage / 100,
		MoodBefore:           moodPool[f.rng.Intn(3)],
		MoodAfter:            moodPool[3+f.rng.Intn(3)],
		CompletionPercentage: percentage,
	}

	for _, override := range overrides {
		override(tracking)
	}

	if f.opts.DryRun {
		f.nextID++
		tracking.ID = f.nextID
		log.Printf("[dry-run] CreateCompletion: user=%d session=%d at=%s", tracking.UserID, tracking.SessionID, completedAt.Format(time.RFC3339))
		return tracking, nil
	}

	if err := f.db.Create(tracking).Error; err != nil {
		return nil, err
	}
	return tracking, nil
}

// CreateFollow persists a follow edge from `follower` to `following`.
func (f *Factory) CreateFollow(follower, following *models.User) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateFollow: %d -> %d", follower.ID, following.ID)
		return nil
	}
	follow := &models.Follow{
		FollowerID:  follower.ID,
		FollowingID: following.ID,
	}
	return f.db.Create(follow).Error
}

// CreateLike persists a like from `user` on `session`.
func (f *Factory) CreateLike(user *models.User, session *models.Session) error {
	if f.opts.DryRun {
		log.Printf("[dry-run] CreateLike: user=%d session=%d", user.ID, session.ID)
		return nil
	}
	like := &models.Like{
		UserID:    user.ID,
		SessionID: session.ID,
	}
	return f.db.Create(like).Error
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided session authored by the provided user. Pass a parent to create
// a reply.
func (f *Factory) CreateComment(user *models.User, session *models.Session, parent *models.Comment, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:   gofakeit.Sentence(8),
		UserID:    user.ID,
		SessionID: session.ID,
	}
	if parent != nil {
		comment.ParentCommentID = &parent.ID
	}

	for _, override := range overrides {
		override(comment)
	}

	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		log.Printf("[dry-run] CreateComment: user=%d session=%d reply=%v", comment.UserID, comment.SessionID, parent != nil)
		return comment, nil
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}
