package codecvt

import "github.com/wippyai/codecvt/endian"

// ByteOrder is the byte order of a UTF-16 or UTF-32 buffer.
type ByteOrder = endian.Order

const (
	HostEndian   = endian.Host
	BigEndian    = endian.Big
	LittleEndian = endian.Little
)

// Option adjusts a single conversion.
type Option func(*options)

type options struct {
	from endian.Order
	to   endian.Order
}

// From sets the byte order of a UTF-16 or UTF-32 source.
func From(o ByteOrder) Option {
	return func(opts *options) { opts.from = o }
}

// To sets the byte order of a UTF-16 or UTF-32 result.
func To(o ByteOrder) Option {
	return func(opts *options) { opts.to = o }
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
