package engine

import (
	"context"
	"time"

	"github.com/holiman/uint256"
)

// Agentes de trading são metadado de copy-trading (estratégia declarada e
// seguidores); nenhuma execução autônoma acontece aqui.

func (e *Engine) createAgent(ctx context.Context, caller string, now time.Time, op CreateAgent) (Response, error) {
	id, err := e.store.NextAgentID(ctx)
	if err != nil {
		return nil, err
	}

	agent := &TradingAgent{
		ID:          id,
		Owner:       caller,
		Name:        op.Name,
		Strategy:    op.Strategy,
		Config:      op.Config,
		Capital:     op.InitialCapital,
		TotalVolume: new(uint256.Int),
		IsActive:    true,
		CreatedAt:   now,
	}

	if err := e.store.PutAgent(ctx, agent); err != nil {
		return nil, err
	}

	return AgentCreated{Agent: agent}, nil
}

func (e *Engine) updateAgentConfig(ctx context.Context, caller string, op UpdateAgentConfig) (Response, error) {
	agent, err := e.store.GetAgent(ctx, op.AgentID)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, ErrAgentNotFound
	}
	if agent.Owner != caller {
		return nil, ErrNotAuthorized
	}

	agent.Config = op.Config
	if err := e.store.PutAgent(ctx, agent); err != nil {
		return nil, err
	}
	return Ack{}, nil
}

func (e *Engine) toggleAgent(ctx context.Context, caller string, op ToggleAgent) (Response, error) {
	agent, err := e.store.GetAgent(ctx, op.AgentID)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, ErrAgentNotFound
	}
	if agent.Owner != caller {
		return nil, ErrNotAuthorized
	}

	agent.IsActive = op.Active
	if err := e.store.PutAgent(ctx, agent); err != nil {
		return nil, err
	}
	return Ack{}, nil
}

func (e *Engine) followAgent(ctx context.Context, caller string, now time.Time, op FollowAgent) (Response, error) {
	agent, err := e.store.GetAgent(ctx, op.AgentID)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, ErrAgentNotFound
	}

	follower := &AgentFollower{
		AgentID:    op.AgentID,
		Follower:   caller,
		Allocation: op.Allocation,
		CopyTrades: true,
		StartedAt:  now,
	}
	if err := e.store.PutFollower(ctx, follower); err != nil {
		return nil, err
	}

	agent.FollowersCount++
	if err := e.store.PutAgent(ctx, agent); err != nil {
		return nil, err
	}
	return Ack{}, nil
}

func (e *Engine) unfollowAgent(ctx context.Context, caller string, op UnfollowAgent) (Response, error) {
	agent, err := e.store.GetAgent(ctx, op.AgentID)
	if err != nil {
		return nil, err
	}
	if agent == nil {
		return nil, ErrAgentNotFound
	}

	if err := e.store.RemoveFollower(ctx, op.AgentID, caller); err != nil {
		return nil, err
	}

	if agent.FollowersCount > 0 {
		agent.FollowersCount--
	}
	if err := e.store.PutAgent(ctx, agent); err != nil {
		return nil, err
	}
	return Ack{}, nil
}

func (e *Engine) postComment(ctx context.Context, caller string, now time.Time, op PostComment) (Response, error) {
	market, err := e.store.GetMarket(ctx, op.MarketID)
	if err != nil {
		return nil, err
	}
	if market == nil {
		return nil, ErrMarketNotFound
	}

	feedID, err := e.createFeedItem(ctx, caller, FeedComment, &op.MarketID, op.Content, now)
	if err != nil {
		return nil, err
	}
	return CommentPosted{FeedID: feedID}, nil
}

// followUser mantém as duas listas do grafo social em espelho; seguir quem
// já se segue é no-op.
func (e *Engine) followUser(ctx context.Context, caller string, op FollowUser) (Response, error) {
	following, err := e.store.Following(ctx, caller)
	if err != nil {
		return nil, err
	}
	if contains(following, op.User) {
		return Ack{}, nil
	}

	following = append(following, op.User)
	if err := e.store.PutFollowing(ctx, caller, following); err != nil {
		return nil, err
	}

	followers, err := e.store.Followers(ctx, op.User)
	if err != nil {
		return nil, err
	}
	followers = append(followers, caller)
	if err := e.store.PutFollowers(ctx, op.User, followers); err != nil {
		return nil, err
	}
	return Ack{}, nil
}

func (e *Engine) unfollowUser(ctx context.Context, caller string, op UnfollowUser) (Response, error) {
	following, err := e.store.Following(ctx, caller)
	if err != nil {
		return nil, err
	}
	if err := e.store.PutFollowing(ctx, caller, remove(following, op.User)); err != nil {
		return nil, err
	}

	followers, err := e.store.Followers(ctx, op.User)
	if err != nil {
		return nil, err
	}
	if err := e.store.PutFollowers(ctx, op.User, remove(followers, caller)); err != nil {
		return nil, err
	}
	return Ack{}, nil
}

// likeFeedItem é idempotente por usuário: cada caller conta no máximo uma vez.
func (e *Engine) likeFeedItem(ctx context.Context, caller string, op LikeFeedItem) (Response, error) {
	item, err := e.store.GetFeedItem(ctx, op.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrFeedItemNotFound
	}

	likes, err := e.store.ItemLikes(ctx, op.ItemID)
	if err != nil {
		return nil, err
	}
	if contains(likes, caller) {
		return Ack{}, nil
	}

	likes = append(likes, caller)
	item.LikesCount++

	if err := e.store.PutItemLikes(ctx, op.ItemID, likes); err != nil {
		return nil, err
	}
	if err := e.store.PutFeedItem(ctx, item); err != nil {
		return nil, err
	}
	return Ack{}, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func remove(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
