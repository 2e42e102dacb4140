package internal

import "errors"

var (
	ErrInvalidDimension  = errors.New("invalid dimension")
	ErrUnknownPreset     = errors.New("unknown preset")
	ErrDegenerateTarget  = errors.New("degenerate target")
	ErrUnsupportedMode   = errors.New("unsupported pixel mode")
	ErrDecodeFailure     = errors.New("image decode failure")
	ErrPolicyRequired    = errors.New("aspect ratios differ, choose `stretch`, `crop` or `pad`")
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrUnknownFilter     = errors.New("unknown resampling filter")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrEncodeFailure     = errors.New("image encode failure")
)

var errorReasons = []struct {
	err    error
	reason string
}{
	{ErrInvalidDimension, "invalid_dimension"},
	{ErrUnknownPreset, "unknown_preset"},
	{ErrDegenerateTarget, "degenerate_target"},
	{ErrUnsupportedMode, "unsupported_mode"},
	{ErrDecodeFailure, "decode_failure"},
	{ErrPolicyRequired, "policy_required"},
	{ErrUnsupportedFormat, "unsupported_format"},
	{ErrUnknownFilter, "unknown_filter"},
	{ErrInvalidRequest, "invalid_request"},
	{ErrEncodeFailure, "encode_failure"},
}

// ErrorReason maps err to a short label for the failures metric.
func ErrorReason(err error) string {
	for _, r := range errorReasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return "internal"
}
