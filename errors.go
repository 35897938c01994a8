package bower

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error below matches one of these with
// errors.Is.
var (
	// ErrNotInitialized is returned when a node, context or search result is
	// accessed before its lifecycle reaches ready.
	ErrNotInitialized = errors.New("bower: not initialized")

	// ErrNotFound is returned when a labeled lookup has no match.
	ErrNotFound = errors.New("bower: not found")

	// ErrDestroyed is returned by lifecycle calls on a destroyed element.
	ErrDestroyed = errors.New("bower: element destroyed")

	// ErrAssetLoad is returned when any pending asset load fails.
	ErrAssetLoad = errors.New("bower: asset load failed")

	// ErrUnhandledCase marks a preset, direction or fill outside its closed set.
	ErrUnhandledCase = errors.New("bower: unhandled case")

	// ErrUnsupportedFormat marks a layout amount or color that cannot be parsed.
	ErrUnsupportedFormat = errors.New("bower: unsupported format")
)

// NotInitializedError names what was accessed too early and where.
type NotInitializedError struct {
	Host   string
	Target string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("bower: %s not initialized inside %s", e.Target, e.Host)
}

func (e *NotInitializedError) Is(target error) bool { return target == ErrNotInitialized }

// NotFoundError reports a labeled lookup miss.
type NotFoundError struct {
	Host  string
	Label string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bower: %q not found inside %s", e.Label, e.Host)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AssetLoadError wraps the failure of a single named asset request.
type AssetLoadError struct {
	Field string
	Name  string
	Err   error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("bower: load asset %q for %s: %v", e.Name, e.Field, e.Err)
}

func (e *AssetLoadError) Is(target error) bool { return target == ErrAssetLoad }

func (e *AssetLoadError) Unwrap() error { return e.Err }

// UnhandledCaseError is the panic value raised when a closed enum receives a
// value outside its set. It indicates a programming defect.
type UnhandledCaseError struct {
	Kind  string
	Value int
}

func (e *UnhandledCaseError) Error() string {
	return fmt.Sprintf("bower: unhandled layout %s: %d", e.Kind, e.Value)
}

func (e *UnhandledCaseError) Is(target error) bool { return target == ErrUnhandledCase }

// UnsupportedFormatError reports an input string that is not a recognized
// layout amount or color.
type UnsupportedFormatError struct {
	Kind  string
	Input string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("bower: unsupported %s format: %q", e.Kind, e.Input)
}

func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

func notInitialized(host, target string) error {
	return &NotInitializedError{Host: host, Target: target}
}
