package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/thinqor/ats-assistant/internal/core/domain"
)

type memoryAuditRepo struct {
	mu        sync.Mutex
	exchanges []domain.ChatExchange
	err       error
	block     chan struct{}
}

func (r *memoryAuditRepo) InsertExchange(_ context.Context, e *domain.ChatExchange) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exchanges = append(r.exchanges, *e)
	return r.err
}

func (r *memoryAuditRepo) byUser(userID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, e := range r.exchanges {
		if e.UserID.String() == userID {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func TestDispatcher_WritesInOrderPerUser(t *testing.T) {
	repo := &memoryAuditRepo{}
	d := NewDispatcher(3, repo, zerolog.Nop())
	d.Start(context.Background())

	for _, id := range []string{"a1", "b1", "a2", "b2", "a3"} {
		user := "alice"
		if id[0] == 'b' {
			user = "bob"
		}
		d.Enqueue(domain.ChatExchange{ID: id, UserID: domain.ID(user)})
	}
	d.Close()

	if got := repo.byUser("alice"); len(got) != 3 || got[0] != "a1" || got[1] != "a2" || got[2] != "a3" {
		t.Errorf("alice exchanges out of order: %v", got)
	}
	if got := repo.byUser("bob"); len(got) != 2 || got[0] != "b1" || got[1] != "b2" {
		t.Errorf("bob exchanges out of order: %v", got)
	}
}

func TestDispatcher_WriteErrorDoesNotStopWorker(t *testing.T) {
	repo := &memoryAuditRepo{err: errors.New("mongo down")}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())

	d.Enqueue(domain.ChatExchange{ID: "1", UserID: "u"})
	d.Enqueue(domain.ChatExchange{ID: "2", UserID: "u"})
	d.Close()

	if got := repo.byUser("u"); len(got) != 2 {
		t.Errorf("expected both writes attempted, got %v", got)
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	repo := &memoryAuditRepo{block: make(chan struct{})}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())

	// one exchange is held by the blocked worker, channelBuffer fill the
	// queue, the rest must be dropped without blocking
	for i := 0; i < channelBuffer+10; i++ {
		d.Enqueue(domain.ChatExchange{ID: "x", UserID: "u"})
	}
	close(repo.block)
	d.Close()

	if got := len(repo.byUser("u")); got > channelBuffer+1 || got < channelBuffer {
		t.Errorf("expected about %d writes, got %d", channelBuffer, got)
	}
}

func TestDispatcher_EnqueueAfterCloseIsNoop(t *testing.T) {
	repo := &memoryAuditRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())
	d.Start(context.Background())
	d.Close()
	d.Close()

	d.Enqueue(domain.ChatExchange{ID: "late", UserID: "u"})
	if got := repo.byUser("u"); len(got) != 0 {
		t.Errorf("expected no writes after close, got %v", got)
	}
}

func TestShardIndex_Deterministic(t *testing.T) {
	d := NewDispatcher(5, &memoryAuditRepo{}, zerolog.Nop())
	for _, u := range []string{"", "1", "alice", "u-rec-42"} {
		i := d.shardIndex(u)
		if i < 0 || i >= 5 || d.shardIndex(u) != i {
			t.Errorf("bad shard %d for %q", i, u)
		}
	}
}
