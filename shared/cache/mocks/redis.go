package mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// FakeRedis answers INCR, EXPIRE and DEL in memory through a client hook, on a clock
// the test moves by hand. No server is dialled.
type FakeRedis struct {
	mu          sync.Mutex
	now         time.Time
	counters    map[string]int64
	expiresAt   map[string]time.Time
	FailExpire  bool
	ExpireCalls int
}

func NewFakeRedis() *FakeRedis {
	return &FakeRedis{
		now:       time.Unix(0, 0),
		counters:  map[string]int64{},
		expiresAt: map[string]time.Time{},
	}
}

// Client returns a go-redis client whose commands are served by f.
func (f *FakeRedis) Client() *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: "fake-redis:6379"})
	client.AddHook(f)

	return client
}

// Advance moves the fake clock forward.
func (f *FakeRedis) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(d)
}

// Counter returns the live value at key, or false when it is absent or expired.
func (f *FakeRedis) Counter(key string) (int64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.evict(key)

	count, ok := f.counters[key]

	return count, ok
}

func (f *FakeRedis) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (f *FakeRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (f *FakeRedis) ProcessHook(_ redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		f.mu.Lock()
		defer f.mu.Unlock()

		args := cmd.Args()
		if len(args) < 2 { //nolint:mnd
			return fmt.Errorf("unsupported command %q", cmd.Name())
		}

		key := fmt.Sprint(args[1])
		f.evict(key)

		switch cmd.Name() {
		case "incr":
			f.counters[key]++
			cmd.(*redis.IntCmd).SetVal(f.counters[key])
		case "expire":
			f.ExpireCalls++

			if f.FailExpire {
				err := errors.New("expire refused")
				cmd.SetErr(err)

				return err
			}

			seconds, _ := args[2].(int64)
			f.expiresAt[key] = f.now.Add(time.Duration(seconds) * time.Second)
			cmd.(*redis.BoolCmd).SetVal(true)
		case "del":
			_, existed := f.counters[key]
			delete(f.counters, key)
			delete(f.expiresAt, key)

			if existed {
				cmd.(*redis.IntCmd).SetVal(1)
			}
		default:
			return fmt.Errorf("unsupported command %q", cmd.Name())
		}

		return nil
	}
}

func (f *FakeRedis) evict(key string) {
	if expiresAt, ok := f.expiresAt[key]; ok && !f.now.Before(expiresAt) {
		delete(f.counters, key)
		delete(f.expiresAt, key)
	}
}
