// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into float streams using go-audio/aiff.
package aiff
