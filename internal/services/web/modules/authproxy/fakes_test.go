package authproxy

import (
	"context"
	"sync/atomic"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
)

type countingProfiles struct {
	calls atomic.Int32
}

func (c *countingProfiles) Profile(context.Context) (*backend.UserProfile, error) {
	c.calls.Add(1)
	return &backend.UserProfile{ID: "7"}, nil
}
