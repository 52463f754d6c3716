// SPDX-License-Identifier: EPL-2.0

// Package digital holds the M-PSK SNR estimator block and the estimators it
// is built on.
//
// Four estimators are available, selected by SNREstType: a simple
// mean/variance estimator, the same with a skewness correction, the M2M4
// moment estimator and the signal-to-variation ratio estimator. All of them
// average their statistics with a one-pole filter of weight alpha.
package digital
