package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
)

func TestInitRedisConnects(t *testing.T) {
	mr := miniredis.RunT(t)

	for _, addr := range []string{mr.Addr(), "redis://" + mr.Addr() + "/0"} {
		client := InitRedis(context.Background(), addr, zerolog.Nop())
		if client == nil {
			t.Fatalf("expected client for %s", addr)
		}
		if err := client.Set(context.Background(), "k", "v", 0).Err(); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		_ = client.Close()
	}
}

func TestInitRedisDegrades(t *testing.T) {
	if c := InitRedis(context.Background(), "", zerolog.Nop()); c != nil {
		t.Fatal("expected nil client without address")
	}
	if c := InitRedis(context.Background(), "redis://%zz", zerolog.Nop()); c != nil {
		t.Fatal("expected nil client for invalid URL")
	}

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	if c := InitRedis(context.Background(), addr, zerolog.Nop()); c != nil {
		t.Fatal("expected nil client for unreachable server")
	}
}
