// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis into float streams using oggvorbis.
package vorbis
