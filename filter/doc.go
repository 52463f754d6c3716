// SPDX-License-Identifier: EPL-2.0

// Package filter holds the recursive filter blocks.
//
// IIRFilterCCF runs complex samples through real feed-forward and feedback
// taps. FrequencyResponse and MagnitudeDB evaluate a tap set without
// running samples through it.
package filter
