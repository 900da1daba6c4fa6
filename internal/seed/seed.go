// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"postboard/internal/middleware"
	"postboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password of every seeded user.
const DemoPassword = "password123"

// SeedOptions tunes the generated data set.
type SeedOptions struct {
	Users int
	Posts int
	// MaxDays spreads pub_date over the last MaxDays days.
	MaxDays int
	// GroupRatio is the share of posts assigned to a group, 0..1.
	GroupRatio float64
	Seed       int64
	BcryptCost int
}

// Seeder populates a database with fake users and posts.
type Seeder struct {
	db    *gorm.DB
	opts  SeedOptions
	faker *gofakeit.Faker
	rng   *rand.Rand
}

// NewSeeder binds a seeder to db.
func NewSeeder(db *gorm.DB, opts SeedOptions) *Seeder {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &Seeder{
		db:    db,
		opts:  opts,
		faker: gofakeit.New(opts.Seed),
		rng:   rand.New(rand.NewSource(opts.Seed)),
	}
}

// ClearAll deletes every post, user and group.
func (s *Seeder) ClearAll() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Post{}, &models.User{}, &models.Group{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Users creates n users sharing DemoPassword.
func (s *Seeder) Users(n int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), s.opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		username := s.username(i)
		users = append(users, &models.User{
			Username: username,
			Email:    username + "@example.com",
			Password: string(hash),
		})
	}
	if len(users) == 0 {
		return users, nil
	}
	if err := s.db.CreateInBatches(users, 100).Error; err != nil {
		return nil, fmt.Errorf("create users: %w", err)
	}
	return users, nil
}

// Posts creates n posts spread across authors and, per GroupRatio, groups.
func (s *Seeder) Posts(authors []*models.User, groups []*models.Group, n int) ([]*models.Post, error) {
	if len(authors) == 0 || n == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := authors[s.rng.Intn(len(authors))]
		post := &models.Post{
			Text:     s.faker.Paragraph(1, 3, 12, " "),
			AuthorID: author.ID,
			PubDate:  s.pubDate(),
		}
		if len(groups) > 0 && s.rng.Float64() < s.opts.GroupRatio {
			group := groups[s.rng.Intn(len(groups))]
			post.GroupID = &group.ID
		}
		posts = append(posts, post)
	}

	if err := s.db.Omit("Author", "Group").CreateInBatches(posts, 200).Error; err != nil {
		return nil, fmt.Errorf("create posts: %w", err)
	}
	return posts, nil
}

// Run seeds the built-in groups followed by Users users and Posts posts.
func (s *Seeder) Run() error {
	fixtures, err := BuiltInGroups()
	if err != nil {
		return err
	}
	groups, err := Groups(s.db, fixtures)
	if err != nil {
		return err
	}
	users, err := s.Users(s.opts.Users)
	if err != nil {
		return err
	}
	posts, err := s.Posts(users, groups, s.opts.Posts)
	if err != nil {
		return err
	}

	middleware.Logger.Info("Seeding complete",
		slog.Int("groups", len(groups)),
		slog.Int("users", len(users)),
		slog.Int("posts", len(posts)),
	)
	return nil
}

func (s *Seeder) username(i int) string {
	base := strings.ToLower(s.faker.Username())
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return -1
	}, base)
	if len(base) > 20 {
		base = base[:20]
	}
	if len(base) < 3 {
		base = "user"
	}
	return fmt.Sprintf("%s_%d", base, i)
}

func (s *Seeder) pubDate() time.Time {
	back := time.Duration(s.rng.Intn(s.opts.MaxDays))*24*time.Hour +
		time.Duration(s.rng.Intn(24))*time.Hour +
		time.Duration(s.rng.Intn(60))*time.Minute
	return time.Now().Add(-back)
}
