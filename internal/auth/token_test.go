package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToken_Valid(t *testing.T) {
	tests := []struct {
		name  string
		token *Token
		want  bool
	}{
		{
			name:  "nil token",
			token: nil,
			want:  false,
		},
		{
			name:  "empty access token",
			token: &Token{},
			want:  false,
		},
		{
			name: "no expiry set",
			token: &Token{
				AccessToken: "token",
			},
			want: true,
		},
		{
			name: "plenty of time left",
			token: &Token{
				AccessToken: "token",
				ExpiresAt:   time.Now().Add(time.Hour),
			},
			want: true,
		},
		{
			name: "already expired",
			token: &Token{
				AccessToken: "token",
				ExpiresAt:   time.Now().Add(-time.Hour),
			},
			want: false,
		},
		{
			name: "inside the expiry buffer",
			token: &Token{
				AccessToken: "token",
				ExpiresAt:   time.Now().Add(10 * time.Second),
			},
			want: false,
		},
		{
			name: "just outside the expiry buffer",
			token: &Token{
				AccessToken: "token",
				ExpiresAt:   time.Now().Add(2 * time.Minute),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.token.Valid())
		})
	}
}

func TestTokenStore(t *testing.T) {
	t.Run("get and set", func(t *testing.T) {
		store := NewTokenStore()
		assert.Nil(t, store.Get())

		token := &Token{AccessToken: "token"}
		store.Set(token)
		assert.Equal(t, token, store.Get())
	})

	t.Run("clear", func(t *testing.T) {
		store := NewTokenStore()
		store.Set(&Token{AccessToken: "token"})
		store.Clear()
		assert.Nil(t, store.Get())
	})

	t.Run("concurrent access", func(t *testing.T) {
		store := NewTokenStore()

		var wg sync.WaitGroup

		for i := 0; i < 50; i++ {
			wg.Add(2)

			go func() {
				defer wg.Done()

				store.Set(&Token{AccessToken: "token"})
			}()

			go func() {
				defer wg.Done()

				_ = store.Get()
			}()
		}

		wg.Wait()
		assert.Equal(t, "token", store.Get().AccessToken)
	})
}
