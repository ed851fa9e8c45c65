package negotiation

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinels identifying the failure kinds. Errors built by Fail and Wrap match
// their sentinel with both the standard library errors.Is and
// github.com/cockroachdb/errors.Is, through any amount of further wrapping.
var (
	ErrPlatform               = errors.New("platform error")
	ErrNoCompatibleDevice     = errors.New("no compatible device")
	ErrIncompleteQueueSupport = errors.New("incomplete queue support")
	ErrResourceCreation       = errors.New("resource creation failed")
)

// Kind classifies a fatal startup failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindPlatform
	KindNoCompatibleDevice
	KindIncompleteQueueSupport
	KindResourceCreation
)

func (k Kind) String() string {
	switch k {
	case KindPlatform:
		return "PlatformError"
	case KindNoCompatibleDevice:
		return "NoCompatibleDeviceError"
	case KindIncompleteQueueSupport:
		return "IncompleteQueueSupportError"
	case KindResourceCreation:
		return "ResourceCreationError"
	}
	return "UnknownError"
}

var kindSentinels = []struct {
	kind     Kind
	sentinel error
}{
	{KindPlatform, ErrPlatform},
	{KindNoCompatibleDevice, ErrNoCompatibleDevice},
	{KindIncompleteQueueSupport, ErrIncompleteQueueSupport},
	{KindResourceCreation, ErrResourceCreation},
}

// KindOf returns the Kind of the outermost classified error in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind
	}
	return KindUnknown
}

// Fail builds a new error of the given kind.
func Fail(kind Kind, format string, args ...interface{}) error {
	return &kindError{cause: errors.NewWithDepthf(1, format, args...), kind: kind}
}

// Wrap tags cause with kind and prefixes it with the formatted message.
// A nil cause returns nil.
func Wrap(cause error, kind Kind, format string, args ...interface{}) error {
	if cause == nil {
		return nil
	}
	return &kindError{cause: errors.WrapWithDepthf(1, cause, format, args...), kind: kind}
}

func (k Kind) sentinel() error {
	for _, ks := range kindSentinels {
		if ks.kind == k {
			return ks.sentinel
		}
	}
	return nil
}

// kindError carries a Kind without changing the message of the error it wraps.
type kindError struct {
	cause error
	kind  Kind
}

func (e *kindError) Error() string { return e.cause.Error() }
func (e *kindError) Unwrap() error { return e.cause }

func (e *kindError) Is(target error) bool {
	sentinel := e.kind.sentinel()
	return sentinel != nil && target == sentinel
}

func (e *kindError) Format(s fmt.State, verb rune) { errors.FormatError(e, s, verb) }

func (e *kindError) FormatError(p errors.Printer) error {
	if p.Detail() {
		p.Printf("kind: %s", e.kind)
	}
	return e.cause
}
