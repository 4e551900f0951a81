package option

import "errors"

// ErrNoMatch is returned when a key has no entry in the Choices map and no
// fallback (Else) was provided.
var ErrNoMatch = errors.New("option: no match for key and no fallback")

// Of wraps a key value for subsequent matching. The key is typically a
// small enum, e.g. a core/length.Mode.
type Of struct {
	key interface{}
}

// Key wraps a value for matching with Match or Choices.
func Key(key interface{}) Of {
	return Of{key: key}
}

// Choices maps concrete key values to thunks producing a result. An entry
// under key Else, if present, is used when no concrete key matches.
type Choices map[interface{}]func() interface{}

// Else is a sentinel key for a fallback entry in a Choices map.
const Else = "option.Else"

// Match looks up of's key in choices and invokes the matching thunk. If no
// concrete entry matches, the Else entry runs; if that's absent too, Match
// panics, since an exhaustive Choices table is the caller's responsibility
// (this mirrors the teacher's stance that internal invariant violations are
// fatal, not every-caller-checks-the-error).
func (of Of) Match(choices Choices) interface{} {
	if thunk, ok := choices[of.key]; ok {
		return thunk()
	}
	if thunk, ok := choices[Else]; ok {
		return thunk()
	}
	panic(ErrNoMatch)
}

// TryMatch is the non-panicking variant of Match.
func (of Of) TryMatch(choices Choices) (interface{}, error) {
	if thunk, ok := choices[of.key]; ok {
		return thunk(), nil
	}
	if thunk, ok := choices[Else]; ok {
		return thunk(), nil
	}
	return nil, ErrNoMatch
}
