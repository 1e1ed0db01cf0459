package seed

import (
	"fmt"
	"log"

	"chronicle/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder with default options.
func NewSeeder(db *gorm.DB) *Seeder {
	return NewSeederWithOptions(db, Options{})
}

// NewSeederWithOptions creates a Seeder with explicit options.
func NewSeederWithOptions(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll deletes all seeded data. Order matters because of foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []interface{}{
		&models.Comment{},
		&models.Post{},
		&models.Category{},
		&models.Location{},
		&models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// Run seeds users, categories, locations, posts and comments. Roughly
// commentsPerPost comments land on each published post.
func (s *Seeder) Run(numUsers, numCategories, numPosts, commentsPerPost int) error {
	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	categories := make([]*models.Category, 0, numCategories)
	for i := 0; i < numCategories; i++ {
		category, err := s.factory.CreateCategory()
		if err != nil {
			return fmt.Errorf("seed category: %w", err)
		}
		categories = append(categories, category)
	}
	// One hidden category so its posts drop out of public feeds.
	if _, err := s.factory.CreateCategory(func(c *models.Category) {
		c.IsPublished = false
	}); err != nil {
		return fmt.Errorf("seed hidden category: %w", err)
	}
	log.Printf("Seeded %d categories", len(categories)+1)

	locations := make([]*models.Location, 0, 5)
	for i := 0; i < 5; i++ {
		location, err := s.factory.CreateLocation()
		if err != nil {
			return fmt.Errorf("seed location: %w", err)
		}
		locations = append(locations, location)
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[gofakeit.Number(0, len(users)-1)]
		post := s.factory.BuildPost(author, func(p *models.Post) {
			if gofakeit.Bool() {
				category := categories[gofakeit.Number(0, len(categories)-1)]
				p.CategoryID = &category.ID
			}
			if gofakeit.Bool() {
				location := locations[gofakeit.Number(0, len(locations)-1)]
				p.LocationID = &location.ID
			}
		})
		posts = append(posts, post)
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}
	log.Printf("Seeded %d posts", len(posts))

	comments := 0
	for _, post := range posts {
		if !post.IsPublished {
			continue
		}
		n := gofakeit.Number(0, commentsPerPost*2)
		for i := 0; i < n; i++ {
			commenter := users[gofakeit.Number(0, len(users)-1)]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
			comments++
		}
	}
	log.Printf("Seeded %d comments", comments)

	return nil
}
