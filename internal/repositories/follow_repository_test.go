package repositories

import (
	"testing"

	"github.com/quillhub/quill/backend/internal/models"
)

func TestCreateFollowIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	follower := mustCreateUser(t, db, "follower")
	author := mustCreateUser(t, db, "author")

	// repeated follows must leave exactly one edge
	for i := 0; i < 3; i++ {
		if err := repo.CreateFollow(&models.Follow{UserID: follower.ID, AuthorID: author.ID}); err != nil {
			t.Fatalf("follow attempt %d: %v", i+1, err)
		}
	}

	var count int64
	if err := db.Model(&models.Follow{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("edge count after repeated follows = %d, want 1", count)
	}

	following, err := repo.IsFollowing(follower.ID, author.ID)
	if err != nil {
		t.Fatalf("IsFollowing: %v", err)
	}
	if !following {
		t.Error("IsFollowing = false, want true")
	}
}

func TestDeleteFollowIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	follower := mustCreateUser(t, db, "follower")
	author := mustCreateUser(t, db, "author")

	// unfollow with no prior edge is a no-op, not an error
	if err := repo.DeleteFollow(follower.ID, author.ID); err != nil {
		t.Fatalf("unfollow without edge: %v", err)
	}

	if err := repo.CreateFollow(&models.Follow{UserID: follower.ID, AuthorID: author.ID}); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if err := repo.DeleteFollow(follower.ID, author.ID); err != nil {
		t.Fatalf("unfollow: %v", err)
	}

	var count int64
	if err := db.Model(&models.Follow{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("edge count after unfollow = %d, want 0", count)
	}

	// and once more on the now-absent edge
	if err := repo.DeleteFollow(follower.ID, author.ID); err != nil {
		t.Fatalf("second unfollow: %v", err)
	}
}

func TestFollowDirectionality(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")

	if err := repo.CreateFollow(&models.Follow{UserID: alice.ID, AuthorID: bob.ID}); err != nil {
		t.Fatalf("follow: %v", err)
	}

	// the edge points one way only
	if following, _ := repo.IsFollowing(bob.ID, alice.ID); following {
		t.Error("reverse direction reported as following")
	}

	ids, err := repo.GetFollowingIDs(alice.ID)
	if err != nil {
		t.Fatalf("GetFollowingIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != bob.ID {
		t.Errorf("GetFollowingIDs = %v, want [%d]", ids, bob.ID)
	}

	followers, _ := repo.GetFollowersCount(bob.ID)
	if followers != 1 {
		t.Errorf("bob followers = %d, want 1", followers)
	}
	followingCount, _ := repo.GetFollowingCount(bob.ID)
	if followingCount != 0 {
		t.Errorf("bob following = %d, want 0", followingCount)
	}
}
