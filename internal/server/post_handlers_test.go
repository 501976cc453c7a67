package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPostVia(t *testing.T, s *Server, authorID uint, title string) *models.Post {
	t.Helper()
	post, err := s.postService.Create(context.Background(), service.PostInput{
		Title:    title,
		Subtitle: "A subtitle",
		Body:     "<p>Hello readers.</p>",
		ImageURL: "https://example.com/cover.png",
		AuthorID: authorID,
	})
	require.NoError(t, err)
	return post
}

func TestListPosts(t *testing.T) {
	s, app, _, _ := setupServerTest(t)
	admin := registerUser(t, s, "alice", "alice@example.com")
	createPostVia(t, s, admin.ID, "First Post")
	createPostVia(t, s, admin.ID, "Second Post")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), testTimeoutMs)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "First Post")
	assert.Contains(t, body, "Second Post")
	assert.Contains(t, body, "alice")
}

func TestShowPost(t *testing.T) {
	s, app, _, _ := setupServerTest(t)
	admin := registerUser(t, s, "alice", "alice@example.com")
	post := createPostVia(t, s, admin.ID, "First Post")

	_, err := s.commentService.Create(context.Background(), service.CreateCommentInput{
		AuthorID: admin.ID,
		PostID:   post.ID,
		Text:     "A thoughtful remark",
	})
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/post/"+itoa(post.ID), nil), testTimeoutMs)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "First Post")
	assert.Contains(t, body, "Hello readers.")
	assert.Contains(t, body, "A thoughtful remark")
	assert.Contains(t, body, "gravatar.com/avatar/")
}

func TestShowPost_Missing(t *testing.T) {
	_, app, _, _ := setupServerTest(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/post/999", nil), testTimeoutMs)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp2, err := app.Test(httptest.NewRequest(http.MethodGet, "/post/not-a-number", nil), testTimeoutMs)
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestCreateComment_RequiresLogin(t *testing.T) {
	s, app, db, _ := setupServerTest(t)
	admin := registerUser(t, s, "alice", "alice@example.com")
	post := createPostVia(t, s, admin.ID, "First Post")

	form := url.Values{"text": {"drive-by comment"}}
	resp, err := app.Test(formRequest("/post/"+itoa(post.ID), form), testTimeoutMs)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.True(t, hasSetCookie(resp, flashCookie))

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateComment_Authenticated(t *testing.T) {
	s, app, db, _ := setupServerTest(t)
	admin := registerUser(t, s, "alice", "alice@example.com")
	bob := registerUser(t, s, "bob", "bob@example.com")
	post := createPostVia(t, s, admin.ID, "First Post")

	req := formRequest("/post/"+itoa(post.ID), url.Values{"text": {"well said"}})
	req.AddCookie(sessionCookieFor(t, s, bob.ID))
	resp, err := app.Test(req, testTimeoutMs)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/post/"+itoa(post.ID), resp.Header.Get("Location"))

	var comment models.Comment
	require.NoError(t, db.Where("post_id = ?", post.ID).First(&comment).Error)
	assert.Equal(t, "well said", comment.Text)
	assert.Equal(t, bob.ID, comment.AuthorID)
}

func TestAdminRoutes_HiddenFromNonAdmins(t *testing.T) {
	s, app, _, _ := setupServerTest(t)
	admin := registerUser(t, s, "alice", "alice@example.com")
	bob := registerUser(t, s, "bob", "bob@example.com")
	post := createPostVia(t, s, admin.ID, "First Post")

	paths := []string{
		"/new-post",
		"/edit-post/" + itoa(post.ID),
		"/delete/" + itoa(post.ID),
	}

	for _, path := range paths {
		t.Run("anonymous "+path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), testTimeoutMs)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		})

		t.Run("non-admin "+path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.AddCookie(sessionCookieFor(t, s, bob.ID))
			resp, err := app.Test(req, testTimeoutMs)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestNewPostForm_AdminSees(t *testing.T) {
	s, app, _, _ := setupServerTest(t)
	admin := registerUser(t, s, "alice", "alice@example.com")

	req := httptest.NewRequest(http.MethodGet, "/new-post", nil)
	req.AddCookie(sessionCookieFor(t, s, admin.ID))
	resp, err := app.Test(req, testTimeoutMs)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "New Post")
	assert.Contains(t, body, `name="title"`)
}

func TestCreatePost_Admin(t *testing.T) {
	s, app, db, _ := setupServerTest(t)
	admin := registerUser(t, s, "alice", "alice@example.com")

	form := url.Values{
		"title":    {"Fresh Post"},
		"subtitle": {"Hot off the press"},
		"img_url":  {"https://example.com/cover.png"},
		"body":     {"<p>Words.</p>"},
	}
	req := formRequest("/new-post", form)
	req.AddCookie(sessionCookieFor(t, s, admin.ID))
	resp, err := app.Test(req, testTimeoutMs)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	var post models.Post
	require.NoError(t, db.Where("title = ?", "Fresh Post").First(&post).Error)
	assert.Equal(t, admin.ID, post.AuthorID)
	assert.NotEmpty(t, post.Date)
}

func TestCreatePost_InvalidImageURL(t *testing.T) {
	s, app, db, _ := setupServerTest(t)
	admin := registerUser(t, s, "alice", "alice@example.com")

	form := url.Values{
		"title":    {"Fresh Post"},
		"subtitle": {"Hot off the press"},
		"img_url":  {"not a url"},
		"body":     {"<p>Words.</p>"},
	}
	req := formRequest("/new-post", form)
	req.AddCookie(sessionCookieFor(t, s, admin.ID))
	resp, err := app.Test(req, testTimeoutMs)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "invalid URL")

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdatePost_Admin(t *testing.T) {
	s, app, _, _ := setupServerTest(t)
	admin := registerUser(t, s, "alice", "alice@example.com")
	post := createPostVia(t, s, admin.ID, "Original Title")

	form := url.Values{
		"title":    {"Updated Title"},
		"subtitle": {"Updated subtitle"},
		"img_url":  {"https://example.com/new.png"},
		"body":     {"<p>Rewritten.</p>"},
	}
	req := formRequest("/edit-post/"+itoa(post.ID), form)
	req.AddCookie(sessionCookieFor(t, s, admin.ID))
	resp, err := app.Test(req, testTimeoutMs)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/post/"+itoa(post.ID), resp.Header.Get("Location"))

	updated, err := s.postService.Get(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", updated.Title)
	assert.Equal(t, post.Date, updated.Date)
}

func TestDeletePost_RemovesPostAndComments(t *testing.T) {
	s, app, db, _ := setupServerTest(t)
	admin := registerUser(t, s, "alice", "alice@example.com")
	post := createPostVia(t, s, admin.ID, "Doomed Post")

	_, err := s.commentService.Create(context.Background(), service.CreateCommentInput{
		AuthorID: admin.ID,
		PostID:   post.ID,
		Text:     "soon gone",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/delete/"+itoa(post.ID), nil)
	req.AddCookie(sessionCookieFor(t, s, admin.ID))
	resp, err := app.Test(req, testTimeoutMs)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	var posts, comments int64
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Zero(t, posts)
	assert.Zero(t, comments)
}
