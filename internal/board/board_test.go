package board

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monadArcade/internal/model"
	"monadArcade/internal/retry"
	"monadArcade/internal/revert"
)

type fakeBoard struct {
	mu        sync.Mutex
	posts     []model.Post
	failing   map[uint64]bool
	top       []uint64
	nicknames map[common.Address]string

	createErrs []error
	creates    []string
	likes      []uint64
	nickSet    []string
	likeErr    error
}

func (f *fakeBoard) PostCount(context.Context) (uint64, error) {
	return uint64(len(f.posts)), nil
}

func (f *fakeBoard) Post(_ context.Context, id uint64) (model.Post, error) {
	if f.failing[id] {
		return model.Post{}, fmt.Errorf("post %d unavailable", id)
	}
	if id >= uint64(len(f.posts)) {
		return model.Post{}, errors.New("out of range")
	}
	return f.posts[id], nil
}

func (f *fakeBoard) TopPosts(context.Context) ([]uint64, error) {
	return f.top, nil
}

func (f *fakeBoard) Nickname(_ context.Context, user common.Address) (string, error) {
	return f.nicknames[user], nil
}

func (f *fakeBoard) CreatePost(_ context.Context, _ *bind.TransactOpts, title, content string, monAmount *big.Int) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	f.creates = append(f.creates, title+"|"+content+"|"+monAmount.String())
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

func (f *fakeBoard) LikePost(_ context.Context, _ *bind.TransactOpts, id uint64) (*types.Receipt, error) {
	if f.likeErr != nil {
		return nil, f.likeErr
	}
	f.likes = append(f.likes, id)
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

func (f *fakeBoard) SetNickname(_ context.Context, _ *bind.TransactOpts, nickname string) (*types.Receipt, error) {
	f.nickSet = append(f.nickSet, nickname)
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

type fakeSigner struct{}

func (fakeSigner) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	return &bind.TransactOpts{Context: ctx}, nil
}

type fakeToken map[common.Address]*big.Int

func (f fakeToken) BalanceOf(_ context.Context, owner common.Address) (*big.Int, error) {
	if v, ok := f[owner]; ok {
		return v, nil
	}
	return new(big.Int), nil
}

func postsFixture(n int) []model.Post {
	posts := make([]model.Post, n)
	for i := range posts {
		posts[i] = model.Post{ID: uint64(i), Title: fmt.Sprintf("post %d", i), Timestamp: uint64(1000 + i)}
	}
	return posts
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.BatchDelay = 0
	cfg.PostRetry.Delay = time.Millisecond
	cfg.NicknameRetry.Delay = time.Millisecond
	return cfg
}

func TestPageBounds(t *testing.T) {
	cases := []struct {
		total      uint64
		page       int
		start, end uint64
	}{
		{total: 25, page: 0, start: 15, end: 25},
		{total: 25, page: 1, start: 5, end: 15},
		{total: 25, page: 2, start: 0, end: 5},
		{total: 25, page: 3, start: 0, end: 0},
		{total: 7, page: 0, start: 0, end: 7},
		{total: 0, page: 0, start: 0, end: 0},
	}
	for _, tc := range cases {
		start, end := PageBounds(tc.total, tc.page, 10)
		assert.Equal(t, tc.start, start, "total=%d page=%d", tc.total, tc.page)
		assert.Equal(t, tc.end, end, "total=%d page=%d", tc.total, tc.page)
	}
}

func TestPageNewestFirst(t *testing.T) {
	contract := &fakeBoard{posts: postsFixture(25)}
	svc := NewService(testConfig(), contract, nil, nil, nil)

	page, err := svc.Page(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, page.Posts, 10)
	assert.Equal(t, uint64(25), page.Total)
	assert.True(t, page.HasMore)
	assert.Equal(t, uint64(24), page.Posts[0].ID)
	assert.Equal(t, uint64(15), page.Posts[9].ID)

	last, err := svc.Page(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, last.Posts, 5)
	assert.False(t, last.HasMore)
	assert.Equal(t, uint64(4), last.Posts[0].ID)
}

func TestPageSkipsFailedPosts(t *testing.T) {
	contract := &fakeBoard{posts: postsFixture(10), failing: map[uint64]bool{3: true, 7: true}}
	svc := NewService(testConfig(), contract, nil, nil, nil)

	page, err := svc.Page(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, page.Posts, 8)
	for _, p := range page.Posts {
		assert.NotEqual(t, uint64(3), p.ID)
		assert.NotEqual(t, uint64(7), p.ID)
	}
}

func TestPageBeyondEnd(t *testing.T) {
	svc := NewService(testConfig(), &fakeBoard{posts: postsFixture(3)}, nil, nil, nil)
	page, err := svc.Page(context.Background(), 4)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.False(t, page.HasMore)

	_, err = svc.Page(context.Background(), -1)
	require.Error(t, err)
}

func TestTopPostsKeepsContractOrder(t *testing.T) {
	contract := &fakeBoard{posts: postsFixture(5), top: []uint64{2, 0, 4}}
	svc := NewService(testConfig(), contract, nil, nil, nil)

	posts, err := svc.TopPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []uint64{2, 0, 4}, []uint64{posts[0].ID, posts[1].ID, posts[2].ID})
}

func TestValidatePost(t *testing.T) {
	cases := []struct {
		title, content string
		code           revert.Code
	}{
		{"", "body", revert.CodeTitleEmpty},
		{"   ", "body", revert.CodeTitleEmpty},
		{"title", "", revert.CodeContentEmpty},
		{strings.Repeat("a", 31), "body", revert.CodeTitleTooLong},
		{"title", strings.Repeat("b", 201), revert.CodeContentTooLong},
	}
	for _, tc := range cases {
		err := ValidatePost(tc.title, tc.content)
		require.Error(t, err)
		assert.True(t, revert.Is(err, tc.code), "title=%q: %v", tc.title, err)
	}
	assert.NoError(t, ValidatePost(strings.Repeat("가", 30), strings.Repeat("b", 200)))
}

func TestCreateRetriesRateLimit(t *testing.T) {
	contract := &fakeBoard{createErrs: []error{errors.New("request limit reached"), nil}}
	svc := NewService(testConfig(), contract, nil, fakeSigner{}, nil)

	_, err := svc.Create(context.Background(), "hello", "world", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello|world|0"}, contract.creates)
}

func TestCreateClassifiesRevert(t *testing.T) {
	contract := &fakeBoard{createErrs: []error{errors.New("execution reverted: Title too long")}}
	svc := NewService(testConfig(), contract, nil, fakeSigner{}, nil)

	_, err := svc.Create(context.Background(), "hello", "world", big.NewInt(5))
	require.Error(t, err)
	assert.True(t, revert.Is(err, revert.CodeTitleTooLong))
	assert.Empty(t, contract.creates)
}

func TestCreateWithoutSigner(t *testing.T) {
	svc := NewService(testConfig(), &fakeBoard{}, nil, nil, nil)
	_, err := svc.Create(context.Background(), "hello", "world", nil)
	require.Error(t, err)
}

func TestLikeAlreadyLiked(t *testing.T) {
	contract := &fakeBoard{likeErr: errors.New("execution reverted: Already liked")}
	svc := NewService(testConfig(), contract, nil, fakeSigner{}, nil)

	_, err := svc.Like(context.Background(), 3)
	require.Error(t, err)
	assert.True(t, revert.Is(err, revert.CodeAlreadyLiked))
	assert.Equal(t, "you already liked this post", err.Error())
}

func TestSetNickname(t *testing.T) {
	contract := &fakeBoard{}
	svc := NewService(testConfig(), contract, nil, fakeSigner{}, nil)

	_, err := svc.SetNickname(context.Background(), strings.Repeat("n", 21))
	require.Error(t, err)
	assert.True(t, revert.Is(err, revert.CodeNicknameTooLong))

	_, err = svc.SetNickname(context.Background(), "monad")
	require.NoError(t, err)
	assert.Equal(t, []string{"monad"}, contract.nickSet)
}

func TestNicknameAndBalance(t *testing.T) {
	user := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	contract := &fakeBoard{nicknames: map[common.Address]string{user: "alice"}}
	token := fakeToken{user: big.NewInt(42)}
	svc := NewService(testConfig(), contract, token, nil, nil)

	name, err := svc.Nickname(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	bal, err := svc.MonBalance(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(42), bal.Int64())
}

func TestDefaultConfigRetries(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 3*time.Second, cfg.PostRetry.Delay)
	assert.Equal(t, 2*time.Second, cfg.NicknameRetry.Delay)
	assert.Equal(t, 2, cfg.PostRetry.MaxRetries)
	assert.True(t, cfg.PostRetry.RetryIf(errors.New(retry.RateLimitMessage)))
}
