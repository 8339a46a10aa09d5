package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/phambaophuc/image-delivery/internal/models"
	"github.com/redis/go-redis/v9"
)

var (
	ErrAPIKeyRequired = errors.New("api key required")
	ErrAPIKeyInvalid  = errors.New("invalid api key")
)

// KeyValidator accepts keys listed in configuration or stored in a Redis set.
// With neither source configured every non-empty key is accepted.
type KeyValidator struct {
	static      map[string]struct{}
	redisClient *redis.Client
	setKey      string
}

// NewKeyValidator builds a validator. redisClient may be nil.
func NewKeyValidator(keys []string, redisClient *redis.Client, setKey string) *KeyValidator {
	static := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		static[k] = struct{}{}
	}
	return &KeyValidator{static: static, redisClient: redisClient, setKey: setKey}
}

func (v *KeyValidator) Validate(ctx context.Context, apiKey string) error {
	if apiKey == "" {
		return ErrAPIKeyRequired
	}

	if len(v.static) == 0 && v.redisClient == nil {
		return nil
	}

	if _, ok := v.static[apiKey]; ok {
		return nil
	}

	if v.redisClient != nil {
		member, err := v.redisClient.SIsMember(ctx, v.setKey, apiKey).Result()
		if err != nil {
			return fmt.Errorf("api key lookup failed: %w", err)
		}
		if member {
			return nil
		}
	}

	return ErrAPIKeyInvalid
}

// RejectionMessage maps a Validate error to the 403 message shown to the
// caller. ok is false for lookup failures, which are server errors.
func RejectionMessage(err error) (message string, ok bool) {
	switch {
	case errors.Is(err, ErrAPIKeyRequired):
		return models.MsgAPIKeyRequired, true
	case errors.Is(err, ErrAPIKeyInvalid):
		return models.MsgAPIKeyInvalid, true
	default:
		return "", false
	}
}
