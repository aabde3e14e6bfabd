package inmemory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dsavelev/postline/internal/models"
	"github.com/dsavelev/postline/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound wraps gorm's not-found error so handlers can treat both
// backends uniformly via errors.Is.
var ErrNotFound = fmt.Errorf("in-memory store: %w", gorm.ErrRecordNotFound)

// Store implements every repository interface in memory. It backs the
// handler tests so they can run without Postgres or MongoDB.
type Store struct {
	mu       sync.RWMutex
	users    map[uint]*models.User
	groups   map[uint]*models.Group
	posts    map[uint]*models.Post
	comments map[uint]*models.Comment
	follows  map[uint]*models.Follow
	images   map[string]*models.Image
	nextID   uint
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:    make(map[uint]*models.User),
		groups:   make(map[uint]*models.Group),
		posts:    make(map[uint]*models.Post),
		comments: make(map[uint]*models.Comment),
		follows:  make(map[uint]*models.Follow),
		images:   make(map[string]*models.Image),
	}
}

func (s *Store) nextIDLocked() uint {
	s.nextID++
	return s.nextID
}

// === UserRepository ===

func (s *Store) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	user.ID = s.nextIDLocked()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *Store) GetUserByID(id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Store) GetUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// === GroupRepository ===

func (s *Store) CreateGroup(group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.groups {
		if g.Slug == group.Slug {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	group.ID = s.nextIDLocked()
	cp := *group
	s.groups[group.ID] = &cp
	return nil
}

func (s *Store) GetGroupByID(id uint) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (s *Store) GetGroupBySlug(slug string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.groups {
		if g.Slug == slug {
			cp := *g
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Store) GetGroups() ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *Store) DeleteGroup(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.groups[id]; !ok {
		return ErrNotFound
	}
	for _, p := range s.posts {
		if p.GroupID != nil && *p.GroupID == id {
			p.GroupID = nil
			p.Group = nil
		}
	}
	delete(s.groups, id)
	return nil
}

// === PostRepository ===

func (s *Store) CreatePost(post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = s.nextIDLocked()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	cp := *post
	s.posts[post.ID] = &cp
	return nil
}

func (s *Store) GetPostByID(id uint) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	s.attachRefs(&cp)
	return &cp, nil
}

func (s *Store) UpdatePost(post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[post.ID]; !ok {
		return ErrNotFound
	}
	cp := *post
	s.posts[post.ID] = &cp
	return nil
}

// attachRefs fills Author and Group the way the Postgres impl preloads
// them. Caller must hold at least a read lock.
func (s *Store) attachRefs(p *models.Post) {
	if u, ok := s.users[p.AuthorID]; ok {
		p.Author = *u
	}
	if p.GroupID != nil {
		if g, ok := s.groups[*p.GroupID]; ok {
			cp := *g
			p.Group = &cp
		}
	}
}

func (s *Store) matchFilter(p *models.Post, filter repositories.PostFilter) bool {
	switch {
	case filter.GroupID != 0:
		return p.GroupID != nil && *p.GroupID == filter.GroupID
	case filter.AuthorID != 0:
		return p.AuthorID == filter.AuthorID
	case filter.AuthorIDs != nil:
		for _, id := range filter.AuthorIDs {
			if p.AuthorID == id {
				return true
			}
		}
		return false
	}
	return true
}

func (s *Store) filteredPostsLocked(filter repositories.PostFilter) []models.Post {
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if s.matchFilter(p, filter) {
			cp := *p
			s.attachRefs(&cp)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) ListPosts(filter repositories.PostFilter, offset, limit int) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.filteredPostsLocked(filter)
	if offset >= len(all) {
		return []models.Post{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *Store) CountPosts(filter repositories.PostFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.filteredPostsLocked(filter))), nil
}

func (s *Store) SearchPosts(query string, groupID uint) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.filteredPostsLocked(repositories.PostFilter{GroupID: groupID})
	if query == "" {
		return all, nil
	}
	out := make([]models.Post, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Text), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

// === CommentRepository ===

func (s *Store) CreateComment(comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment.ID = s.nextIDLocked()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	cp := *comment
	s.comments[comment.ID] = &cp
	return nil
}

func (s *Store) GetCommentsByPostID(postID uint) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Comment, 0)
	for _, c := range s.comments {
		if c.PostID == postID {
			cp := *c
			if u, ok := s.users[c.AuthorID]; ok {
				cp.Author = *u
			}
			out = append(out, cp)
		}
	}
	// Storage order approximated by insertion order.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetComments() ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Comment, 0, len(s.comments))
	for _, c := range s.comments {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// === FollowRepository ===

func (s *Store) CreateFollow(follow *models.Follow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.follows {
		if f.UserID == follow.UserID && f.AuthorID == follow.AuthorID {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	follow.ID = s.nextIDLocked()
	if follow.CreatedAt.IsZero() {
		follow.CreatedAt = time.Now()
	}
	cp := *follow
	s.follows[follow.ID] = &cp
	return nil
}

func (s *Store) DeleteFollow(userID, authorID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, f := range s.follows {
		if f.UserID == userID && f.AuthorID == authorID {
			delete(s.follows, id)
			return nil
		}
	}
	return nil
}

func (s *Store) IsFollowing(userID, authorID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.follows {
		if f.UserID == userID && f.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) GetFollowingIDs(userID uint) ([]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uint, 0)
	for _, f := range s.follows {
		if f.UserID == userID {
			ids = append(ids, f.AuthorID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *Store) GetFollowersCount(authorID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, f := range s.follows {
		if f.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (s *Store) GetFollows() ([]models.Follow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Follow, 0, len(s.follows))
	for _, f := range s.follows {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// FollowCount reports the total number of follow rows; test helper.
func (s *Store) FollowCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.follows)
}

// CommentCount reports the total number of comment rows; test helper.
func (s *Store) CommentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.comments)
}

// === ImageRepository ===

func (s *Store) SaveImage(ctx context.Context, image *models.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if image.ID == "" {
		image.ID = uuid.NewString()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}
	cp := *image
	s.images[image.ID] = &cp
	return nil
}

func (s *Store) GetImageByID(ctx context.Context, id string) (*models.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *img
	return &cp, nil
}
