package pattrns

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Pattern is an opaque handle to a pattern owned by the loaded library.
// Handles become invalid when dropped or when the library is unloaded.
type Pattern uintptr

// NewPatternFromFile compiles the pattern script at fileName with the
// given time base. A nil instrument leaves the instrument id unset.
func NewPatternFromFile(tb Timebase, instrument *uint32, fileName string) (p Pattern, err error) {
	err = takeError(rawNewPatternFromFile.Func()(&tb, instrument, fileName, &p))
	return
}

// NewPatternFromString compiles the pattern script in content, named
// contentName in error messages, with the given time base.
func NewPatternFromString(tb Timebase, instrument *uint32, content, contentName string) (p Pattern, err error) {
	err = takeError(rawNewPatternFromString.Func()(&tb, instrument, content, contentName, &p))
	return
}

// NewInstance creates a fresh, reset clone of the pattern with the given
// time base.
func (p Pattern) NewInstance(tb Timebase) (n Pattern, err error) {
	err = takeError(rawNewPatternInstance.Func()(p, &tb, &n))
	return
}

// Drop releases the pattern inside the library. The handle must not be
// used afterwards.
func (p Pattern) Drop() {
	rawDropPattern.Func()(p)
}

// Parameters decodes the pattern's input parameter descriptors. The
// library owned set is released before returning.
func (p Pattern) Parameters() (params []Parameter, err error) {
	var set parameterSet
	if err = takeError(rawPatternParameters.Func()(p, &set)); err != nil {
		return
	}
	if set == 0 {
		return
	}
	defer rawDropParameterSet.Func()(set)
	raw := (*rawParameterSet)(unsafe.Pointer(uintptr(set)))
	if raw.params.ptr == 0 || raw.params.len == 0 {
		return
	}
	items := unsafe.Slice((*rawParameter)(unsafe.Pointer(raw.params.ptr)), raw.params.len)
	params = make([]Parameter, 0, len(items))
	for i := range items {
		params = append(params, decodeParameter(&items[i]))
	}
	return
}

// SetParameterValue sets a single input parameter of the pattern. The
// library rejects unknown ids and out of range values.
func (p Pattern) SetParameterValue(id string, value float64) error {
	return takeError(rawSetPatternParameterValue.Func()(p, id, value))
}

// SamplesPerStep is the length in samples of one pattern step.
func (p Pattern) SamplesPerStep() (samples float64, err error) {
	err = takeError(rawPatternSamplesPerStep.Func()(p, &samples))
	return
}

// StepCount is the length of the pattern's rhythm, a full cycle in steps.
func (p Pattern) StepCount() (count uint32, err error) {
	err = takeError(rawPatternStepCount.Func()(p, &count))
	return
}

// SetTimebase sets a new time base for the pattern.
func (p Pattern) SetTimebase(tb Timebase) error {
	return takeError(rawSetPatternTimeBase.Func()(p, &tb))
}

// SetTriggerEvent sets the notes triggering the pattern. An empty slice
// clears the trigger.
func (p Pattern) SetTriggerEvent(events []NoteEvent) error {
	var ptr *NoteEvent
	if len(events) > 0 {
		ptr = &events[0]
	}
	return takeError(rawSetPatternTriggerEvent.Func()(p, ptr, uint32(len(events))))
}

// Run generates and consumes the single next due event. The Event passed
// to fn is a decoded copy and stays valid after fn returns.
func (p Pattern) Run(fn func(*Event)) error {
	playbackHandler = fn
	defer func() { playbackHandler = nil }()
	return takeError(rawRunPattern.Func()(p, 0, playbackCallback()))
}

// RunUntilTime generates and consumes all events due up to the given
// sample time.
func (p Pattern) RunUntilTime(time uint64, fn func(*Event)) error {
	playbackHandler = fn
	defer func() { playbackHandler = nil }()
	return takeError(rawRunPatternUntilTime.Func()(p, time, 0, playbackCallback()))
}

// AdvanceUntilTime seeks the pattern, discarding all events up to the
// given sample time.
func (p Pattern) AdvanceUntilTime(time uint64) error {
	return takeError(rawAdvancePatternUntilTime.Func()(p, time))
}

// The C callback is created once for the whole process: purego callbacks
// are a finite resource which is never reclaimed. Dispatch goes through
// playbackHandler, which is safe under the package's single-threaded
// lifecycle contract.
var (
	playbackHandler func(*Event)
	playbackOnce    sync.Once
	playbackAddr    uintptr
)

func playbackCallback() uintptr {
	playbackOnce.Do(func() {
		playbackAddr = purego.NewCallback(func(_, event uintptr) uintptr {
			if playbackHandler != nil && event != 0 {
				playbackHandler(decodeEvent(event))
			}
			return 0
		})
	})
	return playbackAddr
}
