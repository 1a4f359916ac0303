package audio

import (
	"fmt"
	"reflect"
)

// Initer is implemented by anything that needs the stream parameters before
// the first callback.
type Initer interface {
	InitAudio(Params)
}

// Params are the stream parameters negotiated with the backend.
type Params struct {
	SampleRate float64
	BufferSize int // frames per callback; 0 if the backend varies it
}

func (p *Params) InitAudio(q Params) { *p = q }

// Init calls InitAudio on x and, recursively, on every struct field, slice
// element and interface value reachable from x that implements Initer.
func Init(x interface{}, p Params) {
	if err := initVal(reflect.ValueOf(x), p); err != nil {
		panic("audio.Init: " + err.Error())
	}
}

var initerType = reflect.TypeOf(new(Initer)).Elem()

func initVal(v reflect.Value, p Params) (err error) {
	if !v.IsValid() || (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) && v.IsNil() || !v.CanInterface() {
		return
	}
	if v.Kind() == reflect.Interface {
		return initVal(v.Elem(), p)
	}

	if v.Kind() != reflect.Ptr && v.CanAddr() && v.Type().Name() != "" {
		v = v.Addr()
	}
	if x, ok := v.Interface().(Initer); ok {
		x.InitAudio(p)
		return
	}

	defer func() {
		if err != nil {
			// append v to the Init stack trace
			err = fmt.Errorf("%s\n\t%#v", err, v)
		}
	}()
	if t := v.Type(); t.Kind() != reflect.Ptr && reflect.PtrTo(t).Implements(initerType) {
		return fmt.Errorf("%s does not implement audio.Initer but *%s does.\nInit stack:", t, t)
	}

	v = reflect.Indirect(v)
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if err = initVal(v.Field(i), p); err != nil {
				return
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err = initVal(v.Index(i), p); err != nil {
				return
			}
		}
	}
	return
}
