package domain

// Flag is a tri-state boolean: Unknown, False, or True.
// The zero value is Unknown, so a field that was never observed can
// never be mistaken for an observed false.
type Flag uint8

const (
	FlagUnknown Flag = iota
	FlagFalse
	FlagTrue
)

// FlagOf converts an observed boolean into a Flag.
func FlagOf(v bool) Flag {
	if v {
		return FlagTrue
	}
	return FlagFalse
}

// Known reports whether the flag carries an observed value.
func (f Flag) Known() bool {
	return f != FlagUnknown
}

// True reports whether the flag is known and true.
func (f Flag) True() bool {
	return f == FlagTrue
}

// False reports whether the flag is known and false.
func (f Flag) False() bool {
	return f == FlagFalse
}

// Value returns the observed boolean or nil when unknown.
// Used when mirroring flags into JSON signal maps.
func (f Flag) Value() any {
	switch f {
	case FlagTrue:
		return true
	case FlagFalse:
		return false
	default:
		return nil
	}
}

func (f Flag) String() string {
	switch f {
	case FlagTrue:
		return "true"
	case FlagFalse:
		return "false"
	default:
		return "unknown"
	}
}
