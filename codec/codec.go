// Package codec converts the plain content of standard sub-structures to
// and from their textual wire forms (RFC3339 timestamps, severity names).
package codec

import "context"

// Codec converts between a wire form A and a domain form B.
type Codec[A, B any] interface {
	Decode(ctx context.Context, a A) (B, error)
	Encode(ctx context.Context, b B) (A, error)
}
