// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 into stereo float streams using go-mp3.
package mp3
