package database

import (
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/huabuyu/geoai/internal/config"
)

func TestNewRedis_EmptyURL(t *testing.T) {
	client, err := NewRedis(config.RedisConfig{})
	if err != nil || client != nil {
		t.Fatalf("expected (nil, nil) without a URL, got (%v, %v)", client, err)
	}
}

func TestNewRedis_Connects(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedis(config.RedisConfig{URL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()
}

func TestNewRedis_BadURL(t *testing.T) {
	if _, err := NewRedis(config.RedisConfig{URL: "http://nope"}); err == nil {
		t.Fatal("expected an error for a non-redis URL")
	}
}

func TestNewRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedis(config.RedisConfig{URL: "redis://" + addr}); err == nil {
		t.Fatal("expected a ping error")
	}
}
