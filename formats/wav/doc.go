// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes PCM WAV files.
//
// Decoder accepts 16, 24 and 32-bit integer PCM with any channel count and
// returns a stream.Float in [-1,1). Chunks other than fmt and data are
// skipped.
//
// Two writers are available. Encoder streams float samples into a seekable
// target and fixes the header sizes on Close:
//
//	f, _ := os.Create("out.wav")
//	n, err := wav.Encode(f, src)
//
// WriteWAV16 writes a complete file from int16 samples already in memory
// and works with any io.Writer.
package wav
