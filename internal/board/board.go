// Package board implements the message board: paging posts, writing, likes and nicknames.
package board

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"monadArcade/internal/model"
	"monadArcade/internal/retry"
	"monadArcade/internal/revert"
)

const (
	MaxTitleLength    = 30
	MaxContentLength  = 200
	MaxNicknameLength = 20
)

// Contract is the subset of the Board binding the service uses.
type Contract interface {
	PostCount(ctx context.Context) (uint64, error)
	Post(ctx context.Context, id uint64) (model.Post, error)
	TopPosts(ctx context.Context) ([]uint64, error)
	Nickname(ctx context.Context, user common.Address) (string, error)
	CreatePost(ctx context.Context, opts *bind.TransactOpts, title, content string, monAmount *big.Int) (*types.Receipt, error)
	LikePost(ctx context.Context, opts *bind.TransactOpts, id uint64) (*types.Receipt, error)
	SetNickname(ctx context.Context, opts *bind.TransactOpts, nickname string) (*types.Receipt, error)
}

// BalanceReader reads a token balance.
type BalanceReader interface {
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
}

// Signer produces transaction options for the acting account.
type Signer interface {
	TransactOpts(ctx context.Context) (*bind.TransactOpts, error)
}

// Config controls paging and retry behavior.
type Config struct {
	PageSize      int
	BatchSize     int
	BatchDelay    time.Duration
	PostRetry     retry.Policy
	NicknameRetry retry.Policy
}

// DefaultConfig pages 10 posts, fetched 5 at a time with a 100ms pause.
func DefaultConfig() Config {
	post := retry.RateLimited()
	post.Delay = 3 * time.Second
	return Config{
		PageSize:      10,
		BatchSize:     5,
		BatchDelay:    100 * time.Millisecond,
		PostRetry:     post,
		NicknameRetry: retry.RateLimited(),
	}
}

// Service drives the Board contract.
type Service struct {
	cfg      Config
	contract Contract
	token    BalanceReader
	signer   Signer
	logger   *zap.Logger
}

// NewService builds a Service. signer may be nil for read-only use.
func NewService(cfg Config, contract Contract, token BalanceReader, signer Signer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 5
	}
	return &Service{cfg: cfg, contract: contract, token: token, signer: signer, logger: logger}
}

// PageBounds returns the half-open index range [start, end) of a newest-first page.
func PageBounds(total uint64, page, pageSize int) (start, end uint64) {
	size := uint64(pageSize)
	offset := uint64(page) * size
	if offset >= total {
		return 0, 0
	}
	end = total - offset
	if end > size {
		start = end - size
	}
	return start, end
}

// Page loads one newest-first page. Posts that fail to load are logged and skipped.
func (s *Service) Page(ctx context.Context, page int) (model.PostPage, error) {
	if page < 0 {
		return model.PostPage{}, fmt.Errorf("page must be >= 0")
	}
	total, err := s.contract.PostCount(ctx)
	if err != nil {
		return model.PostPage{}, fmt.Errorf("post count: %w", err)
	}

	start, end := PageBounds(total, page, s.cfg.PageSize)
	out := model.PostPage{Page: page, Total: total, Posts: []model.Post{}, HasMore: start > 0}
	if end <= start {
		out.HasMore = false
		return out, nil
	}

	ids := make([]uint64, 0, end-start)
	for id := start; id < end; id++ {
		ids = append(ids, id)
	}

	posts, err := s.fetchPosts(ctx, ids)
	if err != nil {
		return model.PostPage{}, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Timestamp != posts[j].Timestamp {
			return posts[i].Timestamp > posts[j].Timestamp
		}
		return posts[i].ID > posts[j].ID
	})
	out.Posts = posts
	return out, nil
}

func (s *Service) fetchPosts(ctx context.Context, ids []uint64) ([]model.Post, error) {
	posts := make([]model.Post, 0, len(ids))
	for i := 0; i < len(ids); i += s.cfg.BatchSize {
		if i > 0 && s.cfg.BatchDelay > 0 {
			timer := time.NewTimer(s.cfg.BatchDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		batch := ids[i:min(i+s.cfg.BatchSize, len(ids))]
		results := make([]*model.Post, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		for j, id := range batch {
			j, id := j, id
			g.Go(func() error {
				post, err := s.contract.Post(gctx, id)
				if err != nil {
					s.logger.Warn("load post failed", zap.Uint64("post_id", id), zap.Error(err))
					return nil
				}
				results[j] = &post
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, post := range results {
			if post != nil {
				posts = append(posts, *post)
			}
		}
	}
	return posts, nil
}

// TopPosts loads the posts the contract ranks highest, in its order.
func (s *Service) TopPosts(ctx context.Context) ([]model.Post, error) {
	ids, err := s.contract.TopPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("top posts: %w", err)
	}
	return s.fetchPosts(ctx, ids)
}

// Nickname returns the nickname registered for user, empty when unset.
func (s *Service) Nickname(ctx context.Context, user common.Address) (string, error) {
	return s.contract.Nickname(ctx, user)
}

// MonBalance returns the MON token balance of user.
func (s *Service) MonBalance(ctx context.Context, user common.Address) (*big.Int, error) {
	if s.token == nil {
		return nil, fmt.Errorf("mon token is not configured")
	}
	return s.token.BalanceOf(ctx, user)
}

// ValidatePost checks title and content against the board limits.
func ValidatePost(title, content string) error {
	switch {
	case strings.TrimSpace(title) == "":
		return revert.New(revert.CodeTitleEmpty, "title cannot be empty")
	case strings.TrimSpace(content) == "":
		return revert.New(revert.CodeContentEmpty, "content cannot be empty")
	case utf8.RuneCountInString(title) > MaxTitleLength:
		return revert.New(revert.CodeTitleTooLong, fmt.Sprintf("title is too long (max %d characters)", MaxTitleLength))
	case utf8.RuneCountInString(content) > MaxContentLength:
		return revert.New(revert.CodeContentTooLong, fmt.Sprintf("content is too long (max %d characters)", MaxContentLength))
	}
	return nil
}

// ValidateNickname checks a nickname against the board limits.
func ValidateNickname(nickname string) error {
	switch {
	case strings.TrimSpace(nickname) == "":
		return revert.New(revert.CodeNicknameEmpty, "nickname cannot be empty")
	case utf8.RuneCountInString(nickname) > MaxNicknameLength:
		return revert.New(revert.CodeNicknameTooLong, fmt.Sprintf("nickname is too long (max %d characters)", MaxNicknameLength))
	}
	return nil
}

// Create writes a post. A nil monAmount attaches no MON.
func (s *Service) Create(ctx context.Context, title, content string, monAmount *big.Int) (*types.Receipt, error) {
	if err := ValidatePost(title, content); err != nil {
		return nil, err
	}
	if monAmount == nil {
		monAmount = new(big.Int)
	}
	if monAmount.Sign() < 0 {
		return nil, fmt.Errorf("mon amount must not be negative")
	}

	receipt, err := s.send(ctx, s.cfg.PostRetry, "create post", func(opts *bind.TransactOpts) (*types.Receipt, error) {
		return s.contract.CreatePost(ctx, opts, title, content, monAmount)
	})
	if err != nil {
		return nil, revert.Classify(err, "failed to create post")
	}
	s.logger.Info("post created", zap.String("tx", receipt.TxHash.Hex()), zap.String("title", title))
	return receipt, nil
}

// Like likes post id once per account.
func (s *Service) Like(ctx context.Context, id uint64) (*types.Receipt, error) {
	receipt, err := s.send(ctx, retry.Policy{}, "like post", func(opts *bind.TransactOpts) (*types.Receipt, error) {
		return s.contract.LikePost(ctx, opts, id)
	})
	if err != nil {
		return nil, revert.Classify(err, "failed to like post")
	}
	s.logger.Info("post liked", zap.Uint64("post_id", id), zap.String("tx", receipt.TxHash.Hex()))
	return receipt, nil
}

// SetNickname registers the acting account's nickname.
func (s *Service) SetNickname(ctx context.Context, nickname string) (*types.Receipt, error) {
	if err := ValidateNickname(nickname); err != nil {
		return nil, err
	}
	receipt, err := s.send(ctx, s.cfg.NicknameRetry, "set nickname", func(opts *bind.TransactOpts) (*types.Receipt, error) {
		return s.contract.SetNickname(ctx, opts, nickname)
	})
	if err != nil {
		return nil, revert.Classify(err, "failed to set nickname")
	}
	s.logger.Info("nickname set", zap.String("nickname", nickname), zap.String("tx", receipt.TxHash.Hex()))
	return receipt, nil
}

func (s *Service) send(ctx context.Context, policy retry.Policy, action string, fn func(*bind.TransactOpts) (*types.Receipt, error)) (*types.Receipt, error) {
	if s.signer == nil {
		return nil, fmt.Errorf("%s: no signer configured", action)
	}
	policy.OnRetry = func(attempt int, err error) {
		s.logger.Warn("retrying after rate limit", zap.String("action", action), zap.Int("attempt", attempt), zap.Error(err))
	}
	return retry.Value(ctx, policy, func(ctx context.Context) (*types.Receipt, error) {
		opts, err := s.signer.TransactOpts(ctx)
		if err != nil {
			return nil, err
		}
		return fn(opts)
	})
}
