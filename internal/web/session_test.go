package web

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JonMunkholm/formnav/internal/core"
)

func newTestStore(idle time.Duration, max int) (*SessionStore, *time.Time) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	st := NewSessionStore(idle, max, func(context.Context) *core.Navigator {
		return core.NewNavigator(testRecords(3))
	}, nil)
	st.now = func() time.Time { return now }
	return st, &now
}

func TestSessionStore_GetRefreshesLastSeen(t *testing.T) {
	st, now := newTestStore(time.Minute, 0)
	sess := st.Create(context.Background())

	*now = now.Add(50 * time.Second)
	if _, err := st.Get(sess.ID); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	*now = now.Add(50 * time.Second)
	if _, err := st.Get(sess.ID); err != nil {
		t.Errorf("Get() after refresh error = %v, want nil", err)
	}
}

func TestSessionStore_ExpiresIdle(t *testing.T) {
	st, now := newTestStore(time.Minute, 0)
	sess := st.Create(context.Background())

	*now = now.Add(2 * time.Minute)
	if _, err := st.Get(sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() error = %v, want ErrSessionNotFound", err)
	}
	if st.Len() != 0 {
		t.Errorf("Len() = %d, want 0", st.Len())
	}
}

func TestSessionStore_RejectsMalformedID(t *testing.T) {
	st, _ := newTestStore(time.Minute, 0)
	for _, id := range []string{"", "abc", "../../etc"} {
		if _, err := st.Get(id); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Get(%q) error = %v, want ErrSessionNotFound", id, err)
		}
	}
}

func TestSessionStore_EvictsLeastRecentlyUsed(t *testing.T) {
	st, now := newTestStore(time.Hour, 2)
	ctx := context.Background()

	first := st.Create(ctx)
	*now = now.Add(time.Second)
	second := st.Create(ctx)
	*now = now.Add(time.Second)
	st.Get(first.ID) // first is now the most recent
	*now = now.Add(time.Second)
	st.Create(ctx)

	if st.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", st.Len())
	}
	if _, err := st.Get(second.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Error("least recently used session should be evicted")
	}
	if _, err := st.Get(first.ID); err != nil {
		t.Errorf("recently used session evicted: %v", err)
	}
}

func TestSessionStore_Sweep(t *testing.T) {
	st, now := newTestStore(time.Minute, 0)
	ctx := context.Background()
	st.Create(ctx)
	st.Create(ctx)
	*now = now.Add(30 * time.Second)
	keep := st.Create(ctx)

	*now = now.Add(45 * time.Second)
	if n := st.Sweep(); n != 2 {
		t.Errorf("Sweep() = %d, want 2", n)
	}
	if _, err := st.Get(keep.ID); err != nil {
		t.Errorf("fresh session swept: %v", err)
	}
}

func TestSession_DoSerializesAccess(t *testing.T) {
	st, _ := newTestStore(time.Minute, 0)
	sess := st.Create(context.Background())

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			sess.Do(func(nav *core.Navigator) error {
				nav.SelectAll()
				nav.SelectNone()
				return nil
			})
			done <- struct{}{}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	if got := len(sess.View().Selected); got != 0 {
		t.Errorf("Selected = %d, want 0", got)
	}
}
