package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/pressroom/pkg/auth"
	appsvcs "github.com/ghuser/pressroom/services/comment/application/services"
	commentdomain "github.com/ghuser/pressroom/services/comment/domain"
	"github.com/ghuser/pressroom/services/comment/infrastructure/persistence/memory"
)

func newService() *appsvcs.CommentService {
	return appsvcs.NewCommentService(memory.NewCommentRepository())
}

func ctxFor(subject auth.Subject) context.Context {
	return auth.WithSubject(context.Background(), subject)
}

func TestCreate_SetsAuthorAndPost(t *testing.T) {
	svc := newService()
	alice := auth.Subject{ID: uuid.New()}
	postID := uuid.New()

	comment, err := svc.Create(ctxFor(alice), postID, "nice post")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if comment.AuthorID != alice.ID || comment.PostID != postID {
		t.Errorf("ids not set: %+v", comment)
	}
}

func TestCreate_WithoutSubjectIsUnauthorized(t *testing.T) {
	svc := newService()

	_, err := svc.Create(context.Background(), uuid.New(), "hi")
	if !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCreate_EmptyTextIsInvalid(t *testing.T) {
	svc := newService()
	alice := auth.Subject{ID: uuid.New()}

	_, err := svc.Create(ctxFor(alice), uuid.New(), "   ")
	if !errors.Is(err, commentdomain.ErrInvalidComment) {
		t.Fatalf("expected ErrInvalidComment, got %v", err)
	}
}

func TestListForPost_OldestFirstAndScoped(t *testing.T) {
	svc := newService()
	alice := auth.Subject{ID: uuid.New()}
	postA, postB := uuid.New(), uuid.New()

	first, _ := svc.Create(ctxFor(alice), postA, "first")
	second, _ := svc.Create(ctxFor(alice), postA, "second")
	if _, err := svc.Create(ctxFor(alice), postB, "other post"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	comments, err := svc.ListForPost(context.Background(), postA)
	if err != nil {
		t.Fatalf("ListForPost: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].ID != first.ID || comments[1].ID != second.ID {
		t.Errorf("unexpected order: %q, %q", comments[0].Text, comments[1].Text)
	}
}

func TestUpdate_ByOwnerOverwritesText(t *testing.T) {
	svc := newService()
	alice := auth.Subject{ID: uuid.New()}

	comment, _ := svc.Create(ctxFor(alice), uuid.New(), "v1")
	updated, err := svc.Update(ctxFor(alice), comment.ID, "v2")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Text != "v2" {
		t.Errorf("Text: %q", updated.Text)
	}
	if updated.UpdatedAt.Before(comment.UpdatedAt) {
		t.Errorf("UpdatedAt not refreshed")
	}
}

func TestUpdate_ByNonOwnerIsForbidden(t *testing.T) {
	svc := newService()
	alice := auth.Subject{ID: uuid.New()}
	bob := auth.Subject{ID: uuid.New()}

	comment, _ := svc.Create(ctxFor(bob), uuid.New(), "bob's remark")
	if _, err := svc.Update(ctxFor(alice), comment.ID, "hijacked"); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	stored, err := svc.Get(context.Background(), comment.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Text != "bob's remark" {
		t.Errorf("comment mutated by forbidden update: %q", stored.Text)
	}
}

func TestDelete_ByNonOwnerIsForbidden(t *testing.T) {
	svc := newService()
	alice := auth.Subject{ID: uuid.New()}
	bob := auth.Subject{ID: uuid.New()}

	comment, _ := svc.Create(ctxFor(bob), uuid.New(), "bob's remark")
	if err := svc.Delete(ctxFor(alice), comment.ID); !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDelete_MissingIDIsNotFound(t *testing.T) {
	svc := newService()
	alice := auth.Subject{ID: uuid.New()}

	if err := svc.Delete(ctxFor(alice), uuid.New()); !errors.Is(err, commentdomain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestDeleteForPost_RemovesAllComments(t *testing.T) {
	svc := newService()
	alice := auth.Subject{ID: uuid.New()}
	postID := uuid.New()

	svc.Create(ctxFor(alice), postID, "one")
	svc.Create(ctxFor(alice), postID, "two")

	if err := svc.DeleteForPost(context.Background(), postID); err != nil {
		t.Fatalf("DeleteForPost: %v", err)
	}
	comments, _ := svc.ListForPost(context.Background(), postID)
	if len(comments) != 0 {
		t.Errorf("expected no comments, got %d", len(comments))
	}
}
