// SPDX-License-Identifier: EPL-2.0

package block

import (
	"fmt"

	"github.com/ik5/grblocks/stream"
)

// Kind is the item type flowing through a block port.
type Kind int

const (
	KindNone Kind = iota
	KindFloat
	KindComplex
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindComplex:
		return "complex"
	default:
		return "none"
	}
}

// ItemSize is the size in bytes of one item of this kind.
func (k Kind) ItemSize() int {
	switch k {
	case KindFloat:
		return 4
	case KindComplex:
		return 8
	default:
		return 0
	}
}

// IOSignature describes the streams a block accepts or produces.
type IOSignature struct {
	MinStreams int
	MaxStreams int
	Kind       Kind
}

func MakeIOSignature(minStreams, maxStreams int, kind Kind) IOSignature {
	return IOSignature{MinStreams: minStreams, MaxStreams: maxStreams, Kind: kind}
}

var (
	FloatStream   = MakeIOSignature(1, 1, KindFloat)
	ComplexStream = MakeIOSignature(1, 1, KindComplex)
	NoStream      = MakeIOSignature(0, 0, KindNone)
)

func (s IOSignature) String() string {
	return fmt.Sprintf("%s[%d,%d]", s.Kind, s.MinStreams, s.MaxStreams)
}

// KindOf maps a sample type to its Kind.
func KindOf[T stream.Sample]() Kind {
	var zero T
	switch any(zero).(type) {
	case float32:
		return KindFloat
	case complex64:
		return KindComplex
	}
	return KindNone
}
