// Package seed creates demo data for development databases. Not used in
// production.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Every seeded account shares this password so developers can log in as
// anyone.
const seedPassword = "password123"

var categories = []string{"technology", "travel", "food", "journal", "opinion", "howto"}

// Seeder populates the database with generated users, posts, comments and
// upvotes.
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes previously seeded data. Order respects foreign keys.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"upvotes", "comments", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("seed: clearing %s: %w", table, err)
		}
	}
	return nil
}

// Users creates n accounts with the shared development password.
func (s *Seeder) Users(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, &models.User{
			Name:          gofakeit.Name(),
			Email:         fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password:      string(hashed),
			IsPremiumUser: s.r.Intn(10) == 0,
		})
	}
	if err := s.db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("seed: creating users: %w", err)
	}
	return users, nil
}

// Posts creates n posts spread over the last maxDays days, attributed to
// random seeded users.
func (s *Seeder) Posts(users []*models.User, n, maxDays int) ([]*models.Post, error) {
	if maxDays <= 0 {
		maxDays = 90
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.r.Intn(len(users))]
		back := time.Duration(s.r.Intn(maxDays*24)) * time.Hour
		posts = append(posts, &models.Post{
			Title:      gofakeit.Sentence(s.r.Intn(6) + 3),
			Content:    gofakeit.Paragraph(2, 4, 8, "\n\n"),
			CoverImage: fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID()),
			Category:   categories[s.r.Intn(len(categories))],
			UserID:     author.ID,
			CreatedAt:  time.Now().Add(-back),
		})
	}
	if err := s.db.Create(&posts).Error; err != nil {
		return nil, fmt.Errorf("seed: creating posts: %w", err)
	}
	return posts, nil
}

// Engagement attaches comments and upvotes to the seeded posts.
func (s *Seeder) Engagement(users []*models.User, posts []*models.Post) error {
	var comments []*models.Comment
	for _, post := range posts {
		for i := 0; i < s.r.Intn(6); i++ {
			commenter := users[s.r.Intn(len(users))]
			comments = append(comments, &models.Comment{
				Content:    gofakeit.Sentence(s.r.Intn(12) + 3),
				UserID:     commenter.ID,
				AuthorName: commenter.Name,
				PostID:     post.ID,
				CreatedAt:  post.CreatedAt.Add(time.Duration(i+1) * time.Hour),
			})
		}
	}
	if len(comments) > 0 {
		if err := s.db.Create(&comments).Error; err != nil {
			return fmt.Errorf("seed: creating comments: %w", err)
		}
	}

	var upvotes []*models.Upvote
	for _, post := range posts {
		seen := map[uint]bool{}
		for i := 0; i < s.r.Intn(len(users)); i++ {
			voter := users[s.r.Intn(len(users))]
			if seen[voter.ID] {
				continue
			}
			seen[voter.ID] = true
			upvotes = append(upvotes, &models.Upvote{UserID: voter.ID, PostID: post.ID})
		}
	}
	if len(upvotes) > 0 {
		if err := s.db.Create(&upvotes).Error; err != nil {
			return fmt.Errorf("seed: creating upvotes: %w", err)
		}
	}

	return nil
}
