package handlers_test

import (
	"net/http"
	"testing"

	"github.com/quillhub/quill/backend/internal/models"
)

func TestProfileListsOwnPostsOnly(t *testing.T) {
	app := newTestApp(t)
	alice := app.createUser(t, "alice", "password123")
	bob := app.createUser(t, "bob", "password123")

	if err := app.db.Create(&models.Post{Text: "by alice", AuthorID: alice.ID}).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	if err := app.db.Create(&models.Post{Text: "by bob", AuthorID: bob.ID}).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}

	rec := app.get("/alice/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeBody(t, rec)
	posts := bodyList(t, body, "posts")
	if len(posts) != 1 {
		t.Fatalf("profile has %d posts, want 1", len(posts))
	}
	if posts[0].(map[string]interface{})["text"] != "by alice" {
		t.Errorf("profile post = %v, want alice's post", posts[0])
	}

	profile, ok := body["profile_user"].(map[string]interface{})
	if !ok {
		t.Fatalf("body %v has no profile_user", body)
	}
	if profile["username"] != "alice" {
		t.Errorf("profile_user.username = %v, want alice", profile["username"])
	}

	// anonymous viewers see following=false
	if body["following"] != false {
		t.Errorf("following = %v for anonymous viewer, want false", body["following"])
	}
}

func TestProfileUnknownUser(t *testing.T) {
	app := newTestApp(t)

	rec := app.get("/ghost/", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestProfileFollowerCounts(t *testing.T) {
	app := newTestApp(t)
	viewer := app.createUser(t, "viewer", "password123")
	app.createUser(t, "author", "password123")
	cookie := app.sessionCookie(t, viewer)

	if rec := app.get("/author/follow/", cookie); rec.Code != http.StatusFound {
		t.Fatalf("follow: status = %d", rec.Code)
	}

	body := decodeBody(t, app.get("/author/", cookie))
	if body["followers_count"].(float64) != 1 {
		t.Errorf("followers_count = %v, want 1", body["followers_count"])
	}
	if body["following_count"].(float64) != 0 {
		t.Errorf("following_count = %v, want 0", body["following_count"])
	}
}
