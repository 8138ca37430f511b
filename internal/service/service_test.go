package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"iDrone/internal/data"
	"iDrone/internal/model"
	"iDrone/internal/mq"
	"iDrone/internal/repository"
	"iDrone/internal/session"
	"iDrone/internal/testutil"
	"iDrone/pkg/wechat"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixture 一套接在内存SQLite和miniredis上的仓库
type fixture struct {
	db       *gorm.DB
	rdb      *redis.Client
	users    repository.UserRepository
	carts    repository.CartRepository
	goods    repository.GoodsRepository
	orders   repository.OrderRepository
	videos   repository.VideoRepository
	sessions repository.SessionRepository
	uow      data.UnitOfWork
	issuer   *session.Issuer
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	_, rdb := testutil.NewRedis(t)
	f := &fixture{
		db:       db,
		rdb:      rdb,
		users:    repository.NewUserRepository(db),
		carts:    repository.NewCartRepository(db),
		goods:    repository.NewGoodsRepository(db),
		orders:   repository.NewOrderRepository(db),
		videos:   repository.NewVideoRepository(db, rdb),
		sessions: repository.NewSessionRepository(rdb, 30*time.Minute),
		issuer:   session.NewIssuer("test-secret", 30*time.Minute),
	}
	f.uow = data.NewUnitOfWork(db, f.users, f.carts, f.goods, f.orders)
	return f
}

func (f *fixture) createGoods(t testing.TB, title string, stock int) *model.Goods {
	t.Helper()
	goods := &model.Goods{
		Title:   title,
		Price:   decimal.RequireFromString("12.50"),
		Freight: decimal.Zero,
		Stock:   stock,
		Image:   "cover.jpg",
	}
	require.NoError(t, f.goods.Create(context.Background(), goods))
	return goods
}

type fakeExchanger struct {
	session *wechat.Session
	err     error
	calls   int
}

func (f *fakeExchanger) Code2Session(ctx context.Context, code string) (*wechat.Session, error) {
	f.calls++
	return f.session, f.err
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []mq.OrderCreatedMessage
	err  error
}

func (p *recordingPublisher) PublishOrderCreated(ctx context.Context, msg mq.OrderCreatedMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return p.err
}
