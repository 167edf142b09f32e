package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrGenerationBlocked  = errors.New("generation blocked")
	ErrGenerationEmpty    = errors.New("generation returned no image")
	ErrGenerationFailed   = errors.New("generation failed")
	ErrNothingGenerated   = errors.New("no images were generated")
	ErrStaleGeneration    = errors.New("generation superseded by a newer request")
	ErrAssetTooLarge      = errors.New("asset too large")
	ErrAssetUnreadable    = errors.New("asset unreadable")
	ErrTransientImage     = errors.New("transient image must be inlined before persistence")
	ErrElementHidden      = errors.New("element has no content")
	ErrUnknownElement     = errors.New("unknown element kind")
)

// ValidationError reports the first failing wizard phase.
type ValidationError struct {
	Phase   Phase
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// GenerationError names the aspect ratio a generation failed for. Reason is
// one of ErrGenerationBlocked, ErrGenerationEmpty or ErrGenerationFailed.
type GenerationError struct {
	Reason      error
	AspectRatio AspectRatio
	Detail      string
	Err         error
}

func (e *GenerationError) Error() string {
	msg := fmt.Sprintf("failed to generate ad for size %s", e.AspectRatio)
	switch {
	case errors.Is(e.Reason, ErrGenerationBlocked):
		msg = fmt.Sprintf("request for size %s was blocked", e.AspectRatio)
		if e.Detail != "" {
			msg += " due to " + e.Detail
		}
	case errors.Is(e.Reason, ErrGenerationEmpty):
		msg = fmt.Sprintf("no image was returned for size %s", e.AspectRatio)
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GenerationError) Is(target error) bool {
	return target == e.Reason
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
