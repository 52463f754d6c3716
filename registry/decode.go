// SPDX-License-Identifier: EPL-2.0

package registry

import (
	"fmt"
	"reflect"

	"github.com/ik5/grblocks/digital"
	"github.com/mitchellh/mapstructure"
)

var snrEstTypeOf = reflect.TypeOf(digital.SNREstType(0))

// snrEstTypeHook accepts estimator names such as "m2m4" for SNREstType
// fields.
func snrEstTypeHook(from, to reflect.Type, data any) (any, error) {
	if to != snrEstTypeOf || from.Kind() != reflect.String {
		return data, nil
	}
	return digital.ParseSNREstType(reflect.ValueOf(data).String())
}

// decode fills out from params. Values are converted loosely, so "0.5" and
// 0.5 both fill a float64, but keys that match no field are an error.
func decode(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       snrEstTypeHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return nil
}
