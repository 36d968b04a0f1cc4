package engine

import (
	"context"

	"github.com/holiman/uint256"
)

// Store é o contrato de armazenamento que o núcleo espera do ambiente:
// coleções chaveadas com get/put/remove e contadores densos por entidade.
// Leituras e escritas são síncronas e consistentes dentro de uma operação.
//
// Gets retornam (nil, nil) quando a chave não existe; o núcleo traduz a
// ausência para o erro NotFound da entidade.
type Store interface {
	GetMarket(ctx context.Context, id uint64) (*Market, error)
	PutMarket(ctx context.Context, m *Market) error
	// NextMarketID incrementa e devolve o contador de mercados (denso, nunca reusado)
	NextMarketID(ctx context.Context) (uint64, error)

	GetPosition(ctx context.Context, owner string, marketID uint64) (*Position, error)
	PutPosition(ctx context.Context, p *Position) error

	GetOrder(ctx context.Context, id uint64) (*LimitOrder, error)
	PutOrder(ctx context.Context, o *LimitOrder) error
	NextOrderID(ctx context.Context) (uint64, error)

	GetCombo(ctx context.Context, id uint64) (*Combo, error)
	PutCombo(ctx context.Context, c *Combo) error
	NextComboID(ctx context.Context) (uint64, error)
	// ListCombos devolve todos os combos armazenados, em ordem de id.
	// A cascata de resolução varre a lista inteira a cada mercado resolvido.
	ListCombos(ctx context.Context) ([]*Combo, error)

	GetAgent(ctx context.Context, id uint64) (*TradingAgent, error)
	PutAgent(ctx context.Context, a *TradingAgent) error
	NextAgentID(ctx context.Context) (uint64, error)

	PutFollower(ctx context.Context, f *AgentFollower) error
	RemoveFollower(ctx context.Context, agentID uint64, follower string) error

	GetFeedItem(ctx context.Context, id uint64) (*FeedItem, error)
	PutFeedItem(ctx context.Context, item *FeedItem) error
	NextFeedID(ctx context.Context) (uint64, error)

	// Grafo social: listas por usuário, ausência equivale a lista vazia
	Following(ctx context.Context, user string) ([]string, error)
	PutFollowing(ctx context.Context, user string, following []string) error
	Followers(ctx context.Context, user string) ([]string, error)
	PutFollowers(ctx context.Context, user string, followers []string) error

	ItemLikes(ctx context.Context, itemID uint64) ([]string, error)
	PutItemLikes(ctx context.Context, itemID uint64, likes []string) error

	TotalVolume(ctx context.Context) (*uint256.Int, error)
	SetTotalVolume(ctx context.Context, v *uint256.Int) error
}
