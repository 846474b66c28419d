package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/quillhub/quill/backend/internal/models"
)

func TestAddComment(t *testing.T) {
	app := newTestApp(t)
	alice := app.createUser(t, "alice", "password123")
	bob := app.createUser(t, "bob", "password123")

	post := &models.Post{Text: "discuss", AuthorID: alice.ID}
	if err := app.db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}

	rec := app.postForm("/alice/1/comment", url.Values{"text": {"nice post"}}, app.sessionCookie(t, bob))

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want redirect (body %s)", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/alice/1/" {
		t.Errorf("Location = %q, want the post detail page", loc)
	}

	var comment models.Comment
	if err := app.db.First(&comment).Error; err != nil {
		t.Fatalf("no comment persisted: %v", err)
	}
	if comment.Text != "nice post" || comment.AuthorID != bob.ID || comment.PostID != post.ID {
		t.Errorf("stored comment = %+v", comment)
	}
	if comment.CreatedAt.IsZero() {
		t.Error("CreatedAt not assigned on insert")
	}
}

func TestAddCommentUnknownPost(t *testing.T) {
	app := newTestApp(t)
	bob := app.createUser(t, "bob", "password123")

	rec := app.postForm("/alice/7/comment", url.Values{"text": {"hello?"}}, app.sessionCookie(t, bob))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for a comment on a missing post", rec.Code)
	}
}

func TestAddCommentEmptyTextPersistsNothing(t *testing.T) {
	app := newTestApp(t)
	alice := app.createUser(t, "alice", "password123")
	bob := app.createUser(t, "bob", "password123")

	post := &models.Post{Text: "discuss", AuthorID: alice.ID}
	if err := app.db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}

	rec := app.postForm("/alice/1/comment", url.Values{"text": {""}}, app.sessionCookie(t, bob))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (re-render, not an error)", rec.Code, http.StatusOK)
	}
	body := decodeBody(t, rec)
	if _, ok := body["errors"]; !ok {
		t.Errorf("body %v carries no field errors", body)
	}

	var count int64
	app.db.Model(&models.Comment{}).Count(&count)
	if count != 0 {
		t.Errorf("comment count = %d, want 0 after validation failure", count)
	}
}

func TestAddCommentRequiresLogin(t *testing.T) {
	app := newTestApp(t)
	alice := app.createUser(t, "alice", "password123")
	if err := app.db.Create(&models.Post{Text: "discuss", AuthorID: alice.ID}).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}

	rec := app.postForm("/alice/1/comment", url.Values{"text": {"anon"}}, nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want redirect to login", rec.Code)
	}

	var count int64
	app.db.Model(&models.Comment{}).Count(&count)
	if count != 0 {
		t.Errorf("comment count = %d, want 0", count)
	}
}
