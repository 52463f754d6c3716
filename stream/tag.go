// SPDX-License-Identifier: EPL-2.0

package stream

// Tag annotates the sample at an absolute stream offset with a key/value
// pair. Blocks attach tags to their output; downstream consumers read them
// alongside the samples.
type Tag struct {
	Offset uint64
	Key    string
	Value  any
	Source string
}

// Tagged is implemented by sources that emit tags. Tags returns every tag
// produced since the previous call, ordered by offset.
type Tagged interface {
	Tags() []Tag
}

// DrainTags returns pending tags when src emits any.
func DrainTags(src any) []Tag {
	if t, ok := src.(Tagged); ok {
		return t.Tags()
	}
	return nil
}
