package oauthstate

import "errors"

var (
	ErrFailedToParseConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady           = errors.New("redis did not become ready within the given time period")
	ErrStateNotFound           = errors.New("oauth state not found or already consumed")
)
