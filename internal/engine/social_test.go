package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/prediction-market-poc/internal/engine"
	"github.com/radieske/prediction-market-poc/internal/store/memstore"
)

func TestFollowUserMirrorsBothLists(t *testing.T) {
	s := memstore.New()
	e := engine.New(s, zap.NewNop())
	ctx := context.Background()

	_, err := e.Apply(ctx, "bob", t0, engine.FollowUser{User: "alice"})
	require.NoError(t, err)

	following, _ := s.Following(ctx, "bob")
	followers, _ := s.Followers(ctx, "alice")
	assert.Equal(t, []string{"alice"}, following)
	assert.Equal(t, []string{"bob"}, followers)

	// seguir de novo é no-op, não duplica
	_, err = e.Apply(ctx, "bob", t0, engine.FollowUser{User: "alice"})
	require.NoError(t, err)
	followers, _ = s.Followers(ctx, "alice")
	assert.Len(t, followers, 1)

	_, err = e.Apply(ctx, "bob", t0, engine.UnfollowUser{User: "alice"})
	require.NoError(t, err)
	following, _ = s.Following(ctx, "bob")
	followers, _ = s.Followers(ctx, "alice")
	assert.Empty(t, following)
	assert.Empty(t, followers)
}

func TestPostCommentCreatesFeedItem(t *testing.T) {
	s := memstore.New()
	e := engine.New(s, zap.NewNop())
	ctx := context.Background()
	id := newMarket(t, e, "alice")

	resp, err := e.Apply(ctx, "bob", t0, engine.PostComment{MarketID: id, Content: "nice odds"})
	require.NoError(t, err)
	feedID := resp.(engine.CommentPosted).FeedID

	item, err := s.GetFeedItem(ctx, feedID)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, engine.FeedComment, item.ItemType)
	assert.Equal(t, "bob", item.Author)
	assert.Equal(t, "nice odds", item.Content)
	require.NotNil(t, item.MarketID)
	assert.Equal(t, id, *item.MarketID)
}

func TestPostCommentUnknownMarket(t *testing.T) {
	e := newTestEngine()
	_, err := e.Apply(context.Background(), "bob", t0, engine.PostComment{MarketID: 99, Content: "x"})
	assert.ErrorIs(t, err, engine.ErrMarketNotFound)
}

func TestLikeFeedItemIdempotentPerUser(t *testing.T) {
	s := memstore.New()
	e := engine.New(s, zap.NewNop())
	ctx := context.Background()
	id := newMarket(t, e, "alice")

	resp, err := e.Apply(ctx, "bob", t0, engine.PostComment{MarketID: id, Content: "gl"})
	require.NoError(t, err)
	feedID := resp.(engine.CommentPosted).FeedID

	for i := 0; i < 3; i++ {
		_, err = e.Apply(ctx, "carol", t0, engine.LikeFeedItem{ItemID: feedID})
		require.NoError(t, err)
	}
	_, err = e.Apply(ctx, "dave", t0, engine.LikeFeedItem{ItemID: feedID})
	require.NoError(t, err)

	item, err := s.GetFeedItem(ctx, feedID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), item.LikesCount)
}

func TestTradesFeedTheSocialFeed(t *testing.T) {
	s := memstore.New()
	e := engine.New(s, zap.NewNop())
	ctx := context.Background()

	id := newMarket(t, e, "alice") // feed 0: MARKET_CREATED
	buy(t, e, "bob", id, true, 100, 1000)

	item, err := s.GetFeedItem(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, engine.FeedTrade, item.ItemType)
	assert.Equal(t, "Bought 100 YES shares", item.Content)
}
