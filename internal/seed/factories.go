// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"chronicle/internal/models"
	"chronicle/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control seeding behavior.
type Options struct {
	// SkipBcrypt stores a plaintext marker instead of hashing, for fast
	// local seeding where login is not exercised.
	SkipBcrypt bool
	// MaxDays bounds how far into the past generated pub dates spread.
	MaxDays int
	// FutureRatio is the fraction of posts scheduled into the future,
	// exercising the visibility rules. Range 0..1.
	FutureRatio float64
	// DraftRatio is the fraction of posts left unpublished. Range 0..1.
	DraftRatio float64
}

func (o Options) withDefaults() Options {
	if o.MaxDays <= 0 {
		o.MaxDays = 90
	}
	if o.FutureRatio == 0 {
		o.FutureRatio = 0.1
	}
	if o.DraftRatio == 0 {
		o.DraftRatio = 0.1
	}
	return o
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts.withDefaults(),
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:    strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:       gofakeit.Email(),
		DisplayName: gofakeit.Name(),
		Bio:         gofakeit.Sentence(10),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCategory persists a category with a unique routable slug.
func (f *Factory) CreateCategory(overrides ...func(*models.Category)) (*models.Category, error) {
	var noun, slug string
	for {
		noun = strings.ToLower(gofakeit.NounAbstract())
		slug = fmt.Sprintf("%s-%d", strings.ReplaceAll(noun, " ", "-"), gofakeit.Number(10, 9999))
		if validation.ValidateCategorySlug(slug) == nil {
			break
		}
	}
	category := &models.Category{
		Title:       strings.ToUpper(noun[:1]) + noun[1:],
		Slug:        slug,
		Description: gofakeit.Sentence(12),
		IsPublished: true,
	}
	for _, override := range overrides {
		override(category)
	}
	if err := f.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// CreateLocation persists a location.
func (f *Factory) CreateLocation(overrides ...func(*models.Location)) (*models.Location, error) {
	location := &models.Location{
		Name:        gofakeit.City(),
		IsPublished: true,
	}
	for _, override := range overrides {
		override(location)
	}
	if err := f.db.Create(location).Error; err != nil {
		return nil, err
	}
	return location, nil
}

// BuildPost constructs a post without persisting it. Pub dates spread over
// the past MaxDays, with a slice of future-dated and draft posts mixed in
// so listings have something to hide.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:       gofakeit.Sentence(5),
		Content:     gofakeit.Paragraph(2, 4, 8, "\n\n"),
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		AuthorID:    author.ID,
		IsPublished: f.rand.Float64() >= f.opts.DraftRatio,
	}

	daysBack := f.rand.Intn(f.opts.MaxDays)
	offset := time.Duration(daysBack)*24*time.Hour +
		time.Duration(f.rand.Intn(24))*time.Hour +
		time.Duration(f.rand.Intn(60))*time.Minute
	if f.rand.Float64() < f.opts.FutureRatio {
		post.PubDate = time.Now().UTC().Add(offset + time.Hour)
	} else {
		post.PubDate = time.Now().UTC().Add(-offset)
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateComment persists a comment by the given author on the given post.
func (f *Factory) CreateComment(author *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:  gofakeit.Sentence(gofakeit.Number(5, 20)),
		AuthorID: author.ID,
		PostID:   post.ID,
	}
	for _, override := range overrides {
		override(comment)
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}
