package pattrns

import "unsafe"

// Note values with special meaning inside a NoteEvent.
const (
	// EmptyNote marks an empty, undefined note.
	EmptyNote uint8 = 0xFE
	// NoteOff turns off notes playing on the same column.
	NoteOff uint8 = 0xFF
)

const (
	// NoInstrument marks an unset instrument id.
	NoInstrument uint32 = 0xFFFFFFFF
	// NoParameter marks an empty, undefined parameter id in a change event.
	NoParameter uint32 = 0xFFFFFFFF
)

// NoGlide marks an unset glide value.
const NoGlide float32 = -1.0

// Timebase is the beat time base patterns run in. Layout matches the C API.
type Timebase struct {
	BPM        float32 //beats per minute
	BPB        uint32  //beats per bar
	SampleRate uint32  //samples per second
}

// NoteEvent is a single triggered or played back note. Layout matches the
// C API.
type NoteEvent struct {
	Note       uint8
	Instrument uint32
	Glide      float32
	Volume     float32
	Panning    float32
	Delay      float32
}

// NewNoteEvent creates an empty note event: no note, no instrument, no
// glide, full volume, centered panning.
func NewNoteEvent() NoteEvent {
	return NoteEvent{Note: EmptyNote, Instrument: NoInstrument, Glide: NoGlide, Volume: 1}
}

// ParameterChange is a played back parameter change. Layout matches the
// C API.
type ParameterChange struct {
	Parameter uint32
	Value     float32
}

// Event is one decoded playback event as handed to the Run callbacks.
// Slices are copies; they stay valid after the callback returns.
type Event struct {
	SampleTime uint64
	Duration   uint64 //duration in samples
	Notes      []NoteEvent
	Parameters []ParameterChange
}

// ParameterType of a pattern input parameter.
type ParameterType uint32

const (
	ParameterBoolean ParameterType = iota
	ParameterInteger
	ParameterFloat
	ParameterEnum
)

// Parameter describes one pattern input parameter, decoded from the C
// parameter set.
type Parameter struct {
	ID           string
	Name         string
	Description  string
	Type         ParameterType
	Min          float64
	Max          float64
	Default      float64
	Value        float64
	ValueStrings []string //display strings for enum parameters
}

// Raw C layouts, read in place from library owned memory.
type (
	rawList struct { //generic {ptr, len} array header
		ptr uintptr
		len uint32
	}
	rawPlaybackEvent struct {
		sampleTime uint64
		duration   uint64
		notes      rawList //NoteEvent items
		params     rawList //ParameterChange items
	}
	rawParameter struct {
		id          uintptr //C string
		name        uintptr //C string
		description uintptr //C string
		typ         ParameterType
		min         float64
		max         float64
		def         float64
		value       float64
		strings     rawList //C string items
	}
	rawParameterSet struct {
		params rawList //rawParameter items
	}
)

// goString copies a NUL terminated C string.
func goString(c uintptr) string {
	if c == 0 {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Pointer(c + uintptr(n))) != 0 {
		n++
	}
	if n == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(c)), n))
}

func decodeEvent(p uintptr) *Event {
	raw := (*rawPlaybackEvent)(unsafe.Pointer(p))
	ev := &Event{SampleTime: raw.sampleTime, Duration: raw.duration}
	if raw.notes.ptr != 0 && raw.notes.len > 0 {
		notes := unsafe.Slice((*NoteEvent)(unsafe.Pointer(raw.notes.ptr)), raw.notes.len)
		ev.Notes = append([]NoteEvent(nil), notes...)
	}
	if raw.params.ptr != 0 && raw.params.len > 0 {
		params := unsafe.Slice((*ParameterChange)(unsafe.Pointer(raw.params.ptr)), raw.params.len)
		ev.Parameters = append([]ParameterChange(nil), params...)
	}
	return ev
}

func decodeParameter(raw *rawParameter) (p Parameter) {
	p.ID = goString(raw.id)
	p.Name = goString(raw.name)
	p.Description = goString(raw.description)
	p.Type = raw.typ
	p.Min = raw.min
	p.Max = raw.max
	p.Default = raw.def
	p.Value = raw.value
	if raw.strings.ptr != 0 && raw.strings.len > 0 {
		for _, c := range unsafe.Slice((*uintptr)(unsafe.Pointer(raw.strings.ptr)), raw.strings.len) {
			p.ValueStrings = append(p.ValueStrings, goString(c))
		}
	}
	return
}
