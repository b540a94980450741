package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	postKeyPrefix = "post:%d"
	// postsListScope namespaces the newest-first listing pages. Each page
	// size gets its own key so a small page never shadows a larger one.
	postsListScope = "posts:list"
)

const (
	PostTTL      = 30 * time.Minute
	PostsListTTL = 5 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

// PostsListKey serves the newest-first listing page for one page size.
func PostsListKey(limit int) string {
	return fmt.Sprintf("%s:%d", postsListScope, limit)
}

// Invalidate drops a key; a nil client makes this a no-op.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePost signals that a single post's view must refresh
// (a comment or upvote landed).
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidatePostsList signals that every cached listing page must refresh
// (a new post landed). Deletion is best-effort, like Invalidate.
func InvalidatePostsList(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, postsListScope+":*", 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
