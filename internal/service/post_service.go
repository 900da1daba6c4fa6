// Package service composes repositories into the operations behind each page.
package service

import (
	"context"
	"fmt"

	"postboard/internal/forms"
	"postboard/internal/models"
	"postboard/internal/observability"
	"postboard/internal/paginate"
	"postboard/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// PostPage is one page of a post listing.
type PostPage = paginate.Page[*models.Post]

type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// Feed returns the requested page of every post.
func (s *PostService) Feed(ctx context.Context, page int) (PostPage, error) {
	ctx, span := observability.StartSpan(ctx, "PostService.Feed", attribute.Int("page", page))
	result, err := s.listPage(ctx, repository.PostFilter{}, page)
	observability.EndSpan(span, err)
	return result, err
}

// GroupPosts resolves the group by slug and returns a page of its posts.
func (s *PostService) GroupPosts(ctx context.Context, slug string, page int) (*models.Group, PostPage, error) {
	ctx, span := observability.StartSpan(ctx, "PostService.GroupPosts", attribute.String("group.slug", slug))
	defer span.End()

	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, PostPage{}, err
	}
	result, err := s.listPage(ctx, repository.PostFilter{GroupID: &group.ID}, page)
	if err != nil {
		return nil, PostPage{}, err
	}
	return group, result, nil
}

// Profile resolves the author by username and returns a page of their posts.
func (s *PostService) Profile(ctx context.Context, username string, page int) (*models.User, PostPage, error) {
	ctx, span := observability.StartSpan(ctx, "PostService.Profile", attribute.String("author.username", username))
	defer span.End()

	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, PostPage{}, err
	}
	result, err := s.listPage(ctx, repository.PostFilter{AuthorID: &author.ID}, page)
	if err != nil {
		return nil, PostPage{}, err
	}
	return author, result, nil
}

// PostDetail resolves a post through its author's username. A post that
// exists under a different author is NOT_FOUND.
func (s *PostService) PostDetail(ctx context.Context, username string, postID uint) (*models.User, *models.Post, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	post, err := s.postRepo.GetByAuthorAndID(ctx, author.ID, postID)
	if err != nil {
		return nil, nil, err
	}
	return author, post, nil
}

// Groups lists the choices offered by the post form.
func (s *PostService) Groups(ctx context.Context) ([]*models.Group, error) {
	return s.groupRepo.List(ctx)
}

// CreatePost validates form and stores a post authored by authorID. The
// author always comes from the caller, never from the form.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, form forms.PostForm) (*models.Post, forms.FieldErrors, error) {
	ctx, span := observability.StartSpan(ctx, "PostService.CreatePost")
	defer span.End()

	if authorID == 0 {
		return nil, nil, models.NewUnauthorizedError("Authentication required")
	}

	delta, fieldErrs, err := form.Validate(ctx, s.groupRepo)
	if err != nil {
		return nil, nil, fmt.Errorf("validate post form: %w", err)
	}
	if fieldErrs.Any() {
		observability.FormRejections.WithLabelValues("post").Inc()
		return nil, fieldErrs, nil
	}

	post := &models.Post{AuthorID: authorID}
	delta.Apply(post)
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, nil, err
	}

	observability.PostsCreated.Inc()
	return post, nil, nil
}

// EditablePost resolves the post at /{username}/{postID}/edit for viewerID.
// The author is resolved first, then ownership is checked, then the post is
// looked up, so a non-owner gets FORBIDDEN even for a post id that does not
// exist.
func (s *PostService) EditablePost(ctx context.Context, viewerID uint, username string, postID uint) (*models.Post, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if viewerID == 0 || viewerID != author.ID {
		observability.OwnershipRedirects.Inc()
		return nil, models.NewForbiddenError("Only the author can edit this post")
	}
	return s.postRepo.GetByAuthorAndID(ctx, author.ID, postID)
}

// UpdatePost applies a validated form to post. Only text and group change.
func (s *PostService) UpdatePost(ctx context.Context, post *models.Post, form forms.PostForm) (forms.FieldErrors, error) {
	ctx, span := observability.StartSpan(ctx, "PostService.UpdatePost", attribute.Int("post.id", int(post.ID)))
	defer span.End()

	delta, fieldErrs, err := form.Validate(ctx, s.groupRepo)
	if err != nil {
		return nil, fmt.Errorf("validate post form: %w", err)
	}
	if fieldErrs.Any() {
		observability.FormRejections.WithLabelValues("post").Inc()
		return fieldErrs, nil
	}

	updated := *post
	delta.Apply(&updated)
	if err := s.postRepo.UpdateContent(ctx, &updated); err != nil {
		return nil, err
	}
	*post = updated

	observability.PostsUpdated.Inc()
	return nil, nil
}

func (s *PostService) listPage(ctx context.Context, filter repository.PostFilter, page int) (PostPage, error) {
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return PostPage{}, err
	}

	window := paginate.New(total, paginate.PageSize, page)
	if total == 0 {
		return paginate.FromWindow[*models.Post](window, nil), nil
	}

	posts, err := s.postRepo.List(ctx, filter, window.Limit, window.Offset)
	if err != nil {
		return PostPage{}, err
	}
	return paginate.FromWindow(window, posts), nil
}
