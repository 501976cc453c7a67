package service

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Create(t *testing.T) {
	repos := setupTestRepos(t)
	postSvc := NewPostService(repos.post, repos.comment)
	svc := NewCommentService(repos.comment, repos.post)
	ctx := context.Background()

	author := createServiceUser(t, repos, "alice", "alice@example.com")
	post, err := postSvc.Create(ctx, PostInput{
		Title: "Hello", Subtitle: "s", Body: "b",
		ImageURL: "https://example.com/1.png", AuthorID: author.ID,
	})
	require.NoError(t, err)

	comment, err := svc.Create(ctx, CreateCommentInput{AuthorID: author.ID, PostID: post.ID, Text: "great read"})
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)

	comments, err := svc.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "great read", comments[0].Text)
}

func TestCommentService_CreateValidation(t *testing.T) {
	repos := setupTestRepos(t)
	postSvc := NewPostService(repos.post, repos.comment)
	svc := NewCommentService(repos.comment, repos.post)
	ctx := context.Background()

	author := createServiceUser(t, repos, "alice", "alice@example.com")
	post, err := postSvc.Create(ctx, PostInput{
		Title: "Hello", Subtitle: "s", Body: "b",
		ImageURL: "https://example.com/1.png", AuthorID: author.ID,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateCommentInput{AuthorID: author.ID, PostID: post.ID, Text: ""})
	assert.True(t, models.IsValidation(err))

	_, err = svc.Create(ctx, CreateCommentInput{AuthorID: author.ID, PostID: post.ID, Text: strings.Repeat("x", 10001)})
	assert.True(t, models.IsValidation(err))
}

func TestCommentService_CreateOnMissingPost(t *testing.T) {
	repos := setupTestRepos(t)
	svc := NewCommentService(repos.comment, repos.post)

	author := createServiceUser(t, repos, "alice", "alice@example.com")
	_, err := svc.Create(context.Background(), CreateCommentInput{AuthorID: author.ID, PostID: 999, Text: "hello?"})
	assert.True(t, models.IsNotFound(err))
}
