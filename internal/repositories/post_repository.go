package repositories

import (
	"github.com/dsavelev/postline/internal/models"
	"gorm.io/gorm"
)

// PostFilter narrows a post listing to zero or one predicate. The
// zero value lists everything. Ordering is always newest-first.
type PostFilter struct {
	GroupID   uint
	AuthorID  uint
	AuthorIDs []uint
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	UpdatePost(post *models.Post) error
	ListPosts(filter PostFilter, offset, limit int) ([]models.Post, error)
	CountPosts(filter PostFilter) (int64, error)
	SearchPosts(query string, groupID uint) ([]models.Post, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").Preload("Group").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

func (r *PostgresPostRepository) applyFilter(filter PostFilter) *gorm.DB {
	q := r.db.Model(&models.Post{})
	switch {
	case filter.GroupID != 0:
		q = q.Where("group_id = ?", filter.GroupID)
	case filter.AuthorID != 0:
		q = q.Where("author_id = ?", filter.AuthorID)
	case filter.AuthorIDs != nil:
		q = q.Where("author_id IN ?", filter.AuthorIDs)
	}
	return q
}

func (r *PostgresPostRepository) ListPosts(filter PostFilter, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.applyFilter(filter).
		Preload("Author").Preload("Group").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountPosts(filter PostFilter) (int64, error) {
	var count int64
	err := r.applyFilter(filter).Count(&count).Error
	return count, err
}

// SearchPosts backs the admin post list: case-insensitive text search
// plus an optional group filter, newest-first, uncapped.
func (r *PostgresPostRepository) SearchPosts(query string, groupID uint) ([]models.Post, error) {
	q := r.db.Model(&models.Post{}).Preload("Author").Preload("Group")
	if query != "" {
		q = q.Where("LOWER(text) LIKE LOWER(?)", "%"+query+"%")
	}
	if groupID != 0 {
		q = q.Where("group_id = ?", groupID)
	}
	var posts []models.Post
	err := q.Order("created_at DESC").Find(&posts).Error
	return posts, err
}
