package bitfields

// FlagState maps flag names to their decoded boolean values.
type FlagState map[string]bool

// Decode expands a packed column value into the boolean state of every flag
// in the assignment. A negative packed value signals a storage contract
// violation upstream.
func Decode(a *Assignment, packed int64) (FlagState, error) {
	if packed < 0 {
		return nil, &InvalidPackedValueError{Value: packed}
	}
	state := make(FlagState, len(a.ordered))
	for _, name := range a.ordered {
		weight := a.weights[name]
		state[name] = uint64(packed)&weight == weight
	}
	return state, nil
}

// Encode folds the desired flag values into packed, leaving every bit not
// mentioned in desired unchanged. The result is the closed-form
// (packed | set) &^ clear that the SQL builder renders as an update
// right-hand side.
func Encode(a *Assignment, packed int64, desired FlagState) (int64, error) {
	if packed < 0 {
		return 0, &InvalidPackedValueError{Value: packed}
	}
	var set, clear uint64
	for _, flag := range a.FlagsOf(desired) {
		weight, err := a.WeightOf(flag.Name)
		if err != nil {
			return 0, err
		}
		if flag.Value {
			set |= weight
		} else {
			clear |= weight
		}
	}
	return int64((uint64(packed) | set) &^ clear), nil
}
