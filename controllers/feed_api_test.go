package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Linkup/auth"
	"Linkup/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func createPost(t *testing.T, db *gorm.DB, author *models.User, content string) *models.Post {
	t.Helper()
	post := models.Post{
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Content:        content,
	}
	post.Prepare()
	saved, err := post.SavePost(db)
	if err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	return saved
}

func feedContents(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	items := body["response"].([]interface{})
	contents := make([]string, 0, len(items))
	for _, item := range items {
		contents = append(contents, item.(map[string]interface{})["content"].(string))
	}
	return contents
}

func TestFeedHidesPrivateAuthorsFromAnonymousViewers(t *testing.T) {
	server := setupServer(t)
	alice := createUser(t, server.DB, "alice", false)
	bob := createUser(t, server.DB, "bob", true)
	createPost(t, server.DB, alice, "public post")
	createPost(t, server.DB, bob, "private post")

	r := gin.Default()
	r.GET("/posts", server.GetFeed)

	w := performRequest(r, http.MethodGet, "/posts", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	contents := feedContents(t, w)
	assert.Contains(t, contents, "public post")
	assert.NotContains(t, contents, "private post")
}

func TestFeedShowsPrivatePostsToAcceptedFollowers(t *testing.T) {
	t.Setenv("API_SECRET", "feed-test-secret")

	server := setupServer(t)
	alice := createUser(t, server.DB, "alice", false)
	bob := createUser(t, server.DB, "bob", true)
	createPost(t, server.DB, bob, "private post")

	// alice requests, bob accepts.
	_, err := models.RequestFollow(server.DB, alice, bob)
	assert.NoError(t, err)
	pending, err := models.PendingRequest(server.DB, alice.ID, bob.ID)
	assert.NoError(t, err)
	_, err = models.AcceptFollowRequest(server.DB, pending.ID)
	assert.NoError(t, err)

	token, err := auth.CreateToken(alice)
	assert.NoError(t, err)

	r := gin.Default()
	r.GET("/posts", server.GetFeed)

	w := performRequest(r, http.MethodGet, "/posts?token="+token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, feedContents(t, w), "private post")
}

func TestFeedShowsOwnPrivatePosts(t *testing.T) {
	t.Setenv("API_SECRET", "feed-test-secret")

	server := setupServer(t)
	bob := createUser(t, server.DB, "bob", true)
	createPost(t, server.DB, bob, "my own post")

	token, err := auth.CreateToken(bob)
	assert.NoError(t, err)

	r := gin.Default()
	r.GET("/posts", server.GetFeed)

	w := performRequest(r, http.MethodGet, "/posts?token="+token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, feedContents(t, w), "my own post")
}

func TestFeedHidesPrivateAuthorsFromNonFollowers(t *testing.T) {
	t.Setenv("API_SECRET", "feed-test-secret")

	server := setupServer(t)
	alice := createUser(t, server.DB, "alice", false)
	bob := createUser(t, server.DB, "bob", true)
	createPost(t, server.DB, bob, "private post")

	// alice has only a pending request, not an accepted follow.
	_, err := models.RequestFollow(server.DB, alice, bob)
	assert.NoError(t, err)

	token, err := auth.CreateToken(alice)
	assert.NoError(t, err)

	r := gin.Default()
	r.GET("/posts", server.GetFeed)

	w := performRequest(r, http.MethodGet, "/posts?token="+token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, feedContents(t, w), "private post")
}

func TestGetUserPostsRespectsPrivacy(t *testing.T) {
	t.Setenv("API_SECRET", "feed-test-secret")

	server := setupServer(t)
	alice := createUser(t, server.DB, "alice", false)
	bob := createUser(t, server.DB, "bob", true)
	createPost(t, server.DB, bob, "private post")

	r := gin.Default()
	r.GET("/posts/:id", server.GetUserPosts)

	// Anonymous viewers are refused.
	w := performRequest(r, http.MethodGet, "/posts/"+bob.PublicID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A non-follower is refused too.
	aliceToken, err := auth.CreateToken(alice)
	assert.NoError(t, err)
	w = performRequest(r, http.MethodGet, "/posts/"+bob.PublicID+"?token="+aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// After an accepted follow the posts are readable.
	_, err = models.RequestFollow(server.DB, alice, bob)
	assert.NoError(t, err)
	pending, err := models.PendingRequest(server.DB, alice.ID, bob.ID)
	assert.NoError(t, err)
	_, err = models.AcceptFollowRequest(server.DB, pending.ID)
	assert.NoError(t, err)

	w = performRequest(r, http.MethodGet, "/posts/"+bob.PublicID+"?token="+aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, feedContents(t, w), "private post")
}
