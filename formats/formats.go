// SPDX-License-Identifier: EPL-2.0

// Package formats maps file extensions to the decoders in its sub-packages.
package formats

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ik5/grblocks/formats/aiff"
	"github.com/ik5/grblocks/formats/mp3"
	"github.com/ik5/grblocks/formats/vorbis"
	"github.com/ik5/grblocks/formats/wav"
	"github.com/ik5/grblocks/stream"
)

// Registry returns a decoder registry keyed by lower case extension
// without the dot.
func Registry() *stream.Registry {
	r := stream.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	return r
}

// ForPath picks the decoder for path by its extension.
func ForPath(r *stream.Registry, path string) (stream.Decoder, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	d, ok := r.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return d, nil
}
