// SPDX-License-Identifier: EPL-2.0

// Package stream provides the sample streams that signal processing blocks
// read from and produce.
//
// # Source Interface
//
// Source is generic over the sample type so real (float32) and baseband
// (complex64) signals share one pull model:
//
//	type Source[T Sample] interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []T) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Float and Complex name the two instantiations. Format decoders produce
// Float sources; NewIQSource pairs the two channels of a stereo Float
// source into a Complex one and NewIQInterleaver goes back.
//
// # Resampling and Mixing
//
//	resampler := stream.NewResampler(source, 16000)
//	mono := stream.NewMonoMixer(resampler)
//
// # Tags
//
// A Tag marks an absolute sample offset with a key and value. Sources that
// carry tags implement Tagged; DrainTags collects them from any source.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available. A read may
// return n > 0 together with io.EOF for the final samples:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package stream
