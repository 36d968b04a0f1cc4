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

func newAgent(t *testing.T, e *engine.Engine, owner string) *engine.TradingAgent {
	t.Helper()
	resp, err := e.Apply(context.Background(), owner, t0, engine.CreateAgent{
		Name:           "momentum bot",
		Strategy:       engine.StrategyMomentum,
		Config:         `{"window":10}`,
		InitialCapital: u64(1000),
	})
	require.NoError(t, err)
	return resp.(engine.AgentCreated).Agent
}

func TestCreateAgent(t *testing.T) {
	e := newTestEngine()
	agent := newAgent(t, e, "alice")

	assert.Equal(t, "alice", agent.Owner)
	assert.Equal(t, engine.StrategyMomentum, agent.Strategy)
	assert.True(t, agent.IsActive)
	assert.Zero(t, agent.FollowersCount)
}

func TestAgentConfigAndToggleOwnerOnly(t *testing.T) {
	e := newTestEngine()
	agent := newAgent(t, e, "alice")

	_, err := e.Apply(context.Background(), "bob", t0, engine.UpdateAgentConfig{
		AgentID: agent.ID, Config: `{}`,
	})
	assert.ErrorIs(t, err, engine.ErrNotAuthorized)

	_, err = e.Apply(context.Background(), "alice", t0, engine.UpdateAgentConfig{
		AgentID: agent.ID, Config: `{"window":20}`,
	})
	require.NoError(t, err)

	_, err = e.Apply(context.Background(), "bob", t0, engine.ToggleAgent{AgentID: agent.ID, Active: false})
	assert.ErrorIs(t, err, engine.ErrNotAuthorized)

	_, err = e.Apply(context.Background(), "alice", t0, engine.ToggleAgent{AgentID: agent.ID, Active: false})
	require.NoError(t, err)
}

func TestFollowAgentCountsFollowers(t *testing.T) {
	s := memstore.New()
	e := engine.New(s, zap.NewNop())
	agent := newAgent(t, e, "alice")

	_, err := e.Apply(context.Background(), "bob", t0, engine.FollowAgent{
		AgentID: agent.ID, Allocation: u64(100),
	})
	require.NoError(t, err)
	_, err = e.Apply(context.Background(), "carol", t0, engine.FollowAgent{
		AgentID: agent.ID, Allocation: u64(50),
	})
	require.NoError(t, err)

	got, err := s.GetAgent(context.Background(), agent.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.FollowersCount)

	_, err = e.Apply(context.Background(), "bob", t0, engine.UnfollowAgent{AgentID: agent.ID})
	require.NoError(t, err)

	got, err = s.GetAgent(context.Background(), agent.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.FollowersCount)
}

func TestFollowUnknownAgent(t *testing.T) {
	e := newTestEngine()
	_, err := e.Apply(context.Background(), "bob", t0, engine.FollowAgent{AgentID: 7, Allocation: u64(1)})
	assert.ErrorIs(t, err, engine.ErrAgentNotFound)
}
