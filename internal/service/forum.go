package service

import (
	"context"
	"fmt"

	"worklens-backend/internal/domain"
	"worklens-backend/internal/repository"
)

type forumService struct {
	forumRepo repository.ForumRepository
	userRepo  repository.UserRepository
}

func NewForumService(forumRepo repository.ForumRepository, userRepo repository.UserRepository) ForumService {
	return &forumService{
		forumRepo: forumRepo,
		userRepo:  userRepo,
	}
}

func (s *forumService) CreatePost(ctx context.Context, authorID int32, post *domain.ForumPost) error {
	if post.Title == "" || post.Body == "" {
		return fmt.Errorf("%w: title and body are required", domain.ErrValidation)
	}
	post.AuthorID = authorID
	return s.forumRepo.CreatePost(ctx, post)
}

func (s *forumService) GetPost(ctx context.Context, id int32) (*domain.ForumPost, []domain.ForumComment, error) {
	post, err := s.forumRepo.GetPost(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	comments, err := s.forumRepo.ListCommentsByPost(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}

func (s *forumService) ListPosts(ctx context.Context, page, pageSize int32) ([]domain.ForumPost, int32, error) {
	return s.forumRepo.ListPosts(ctx, page, pageSize)
}

func (s *forumService) UpdatePost(ctx context.Context, callerID int32, post *domain.ForumPost) error {
	existing, err := s.forumRepo.GetPost(ctx, post.ID)
	if err != nil {
		return err
	}
	if err := s.requireAuthorOrAdmin(ctx, callerID, existing.AuthorID); err != nil {
		return err
	}
	post.AuthorID = existing.AuthorID
	return s.forumRepo.UpdatePost(ctx, post)
}

func (s *forumService) DeletePost(ctx context.Context, callerID, postID int32) error {
	post, err := s.forumRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.requireAuthorOrAdmin(ctx, callerID, post.AuthorID); err != nil {
		return err
	}
	return s.forumRepo.DeletePostCascade(ctx, postID, "deleted by author")
}

func (s *forumService) AddComment(ctx context.Context, authorID, postID int32, body string) (*domain.ForumComment, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: comment body is required", domain.ErrValidation)
	}
	if _, err := s.forumRepo.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.ForumComment{
		PostID:   postID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.forumRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *forumService) DeleteComment(ctx context.Context, callerID, commentID int32) error {
	comment, err := s.forumRepo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if err := s.requireAuthorOrAdmin(ctx, callerID, comment.AuthorID); err != nil {
		return err
	}
	return s.forumRepo.DeleteComment(ctx, commentID, "deleted by author")
}

func (s *forumService) requireAuthorOrAdmin(ctx context.Context, callerID, authorID int32) error {
	if callerID == authorID {
		return nil
	}
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() {
		return domain.ErrAccessDenied
	}
	return nil
}
