package rules

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/mesh-intelligence/roster/pkg/backend"
	"github.com/mesh-intelligence/roster/pkg/types"
)

func benchService(b *testing.B, kind string) *Service {
	b.Helper()
	cupboard, err := backend.Open(types.Config{Backend: kind})
	if err != nil {
		b.Fatalf("open %s: %v", kind, err)
	}
	b.Cleanup(func() { cupboard.Detach() })
	tables, err := cupboard.Tables()
	if err != nil {
		b.Fatalf("tables: %v", err)
	}
	return New(tables, DefaultOptions(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// seedGraph creates n users, each subscribed to the first one and owning
// one post.
func seedGraph(b *testing.B, s *Service, n int) types.User {
	b.Helper()
	hub, err := s.CreateUser(UserInput{FirstName: "hub"})
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < n; i++ {
		u, err := s.CreateUser(UserInput{FirstName: fmt.Sprintf("user-%d", i)})
		if err != nil {
			b.Fatal(err)
		}
		if _, err := s.Subscribe(u.ID, hub.ID); err != nil {
			b.Fatal(err)
		}
		if _, err := s.CreatePost(PostInput{UserID: u.ID, Title: "p"}); err != nil {
			b.Fatal(err)
		}
	}
	return hub
}

func BenchmarkListSubscribers(b *testing.B) {
	for _, kind := range backends {
		for _, n := range []int{10, 100, 1000} {
			b.Run(fmt.Sprintf("%s/%d", kind, n), func(b *testing.B) {
				s := benchService(b, kind)
				hub := seedGraph(b, s, n)
				filter := types.Contains(types.FieldSubscribedToUserIDs, hub.ID)

				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, err := s.ListUsers(filter); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkDeleteUser(b *testing.B) {
	for _, kind := range backends {
		for _, n := range []int{10, 100} {
			b.Run(fmt.Sprintf("%s/%d", kind, n), func(b *testing.B) {
				s := benchService(b, kind)
				for i := 0; i < b.N; i++ {
					b.StopTimer()
					hub := seedGraph(b, s, n)
					b.StartTimer()
					if _, err := s.DeleteUser(hub.ID); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
