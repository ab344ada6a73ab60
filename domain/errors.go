package domain

import "errors"

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExists        = errors.New("session already exists")
	ErrEmptyStoryboard      = errors.New("session has an empty storyboard")
	ErrNoStoryboardJSON     = errors.New("no storyboard JSON object in model reply")
	ErrFrameIndexOutOfRange = errors.New("frame index out of range")
	ErrSourceTooShort       = errors.New("extracted source text below minimum length")

	// ErrRateLimited marks a generation failure caused by provider quota
	// exhaustion. The pipeline aborts the remaining steps of a stage when it
	// sees this instead of retrying, so one throttled call does not burn the
	// quota another N times.
	ErrRateLimited = errors.New("generation capability rate limited")
)
