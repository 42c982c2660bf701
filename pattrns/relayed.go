package pattrns

import (
	"errors"

	"github.com/pattrns/relay"
)

type (
	// errstr is an error string allocated by the library, 0 means ok. Taken
	// strings must be released through drop_error_string.
	errstr uintptr
	// parameterSet is an opaque handle to a parameter set allocated by the
	// library, released through drop_parameter_set.
	parameterSet uintptr
)

// One slot per pattrns entry point. The raw signatures are the flat C
// surface of the API: out parameters for values, errstr for failures,
// callbacks as plain code addresses.
var (
	registry = relay.NewRegistry()
	library  = relay.NewLibrary(registry)

	rawInitialize       = relay.Define[func(alloc, dealloc uintptr) errstr](registry, "initialize")
	rawFinalize         = relay.Define[func() errstr](registry, "finalize")
	rawDropErrorString  = relay.Define[func(errstr)](registry, "drop_error_string")
	rawDropPattern      = relay.Define[func(Pattern)](registry, "drop_pattern")
	rawDropParameterSet = relay.Define[func(parameterSet)](registry, "drop_parameter_set")

	rawNewPatternFromFile = relay.Define[func(tb *Timebase, instrument *uint32, fileName string, out *Pattern) errstr](
		registry, "new_pattern_from_file")
	rawNewPatternFromString = relay.Define[func(tb *Timebase, instrument *uint32, content, contentName string, out *Pattern) errstr](
		registry, "new_pattern_from_string")
	rawNewPatternInstance = relay.Define[func(p Pattern, tb *Timebase, out *Pattern) errstr](
		registry, "new_pattern_instance")

	rawPatternParameters = relay.Define[func(p Pattern, out *parameterSet) errstr](
		registry, "pattern_parameters")
	rawSetPatternParameterValue = relay.Define[func(p Pattern, id string, value float64) errstr](
		registry, "set_pattern_parameter_value")
	rawPatternSamplesPerStep = relay.Define[func(p Pattern, out *float64) errstr](
		registry, "pattern_samples_per_step")
	rawPatternStepCount = relay.Define[func(p Pattern, out *uint32) errstr](
		registry, "pattern_step_count")
	rawSetPatternTimeBase = relay.Define[func(p Pattern, tb *Timebase) errstr](
		registry, "set_pattern_time_base")
	rawSetPatternTriggerEvent = relay.Define[func(p Pattern, events *NoteEvent, count uint32) errstr](
		registry, "set_pattern_trigger_event")

	rawRunPattern = relay.Define[func(p Pattern, ctx, callback uintptr) errstr](
		registry, "run_pattern")
	rawRunPatternUntilTime = relay.Define[func(p Pattern, time uint64, ctx, callback uintptr) errstr](
		registry, "run_pattern_until_time")
	rawAdvancePatternUntilTime = relay.Define[func(p Pattern, time uint64) errstr](
		registry, "advance_pattern_until_time")
)

// takeError converts a C error string to a Go error and releases it.
func takeError(e errstr) error {
	if e == 0 {
		return nil
	}
	msg := goString(uintptr(e))
	rawDropErrorString.Func()(e)
	return errors.New(msg)
}
