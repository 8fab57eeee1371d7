// Package loginguard tracks failed login attempts per client in Redis and
// temporarily bans clients that keep failing.
package loginguard

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	maxStrikes  = 5
	strikeTTL   = 15 * time.Minute
	banDuration = 15 * time.Minute
)

// Guard counts login failures per client IP. A nil *Guard is valid and
// disables the guard, for deployments without Redis.
type Guard struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Guard {
	return &Guard{rdb: rdb}
}

func (g *Guard) IsBanned(ctx context.Context, ip string) bool {
	if g == nil || g.rdb == nil {
		return false
	}
	exists, err := g.rdb.Exists(ctx, banKey(ip)).Result()
	return err == nil && exists > 0
}

// RecordFailure adds a strike for ip and bans it once it reaches the limit.
// Returns the current strike count.
func (g *Guard) RecordFailure(ctx context.Context, ip string) int {
	if g == nil || g.rdb == nil {
		return 0
	}
	strikes, err := g.rdb.Incr(ctx, strikeKey(ip)).Result()
	if err != nil {
		return 0
	}
	g.rdb.Expire(ctx, strikeKey(ip), strikeTTL)

	if strikes >= maxStrikes {
		g.rdb.Set(ctx, banKey(ip), strikes, banDuration)
	}
	return int(strikes)
}

// Reset clears the strikes for ip after a successful login.
func (g *Guard) Reset(ctx context.Context, ip string) {
	if g == nil || g.rdb == nil {
		return
	}
	g.rdb.Del(ctx, strikeKey(ip))
}

func strikeKey(ip string) string {
	return fmt.Sprintf("loginguard:strikes:%s", ip)
}

func banKey(ip string) string {
	return fmt.Sprintf("loginguard:ban:%s", ip)
}
