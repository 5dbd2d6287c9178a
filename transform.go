package keyswap

import "strconv"

// Tokenize returns a copy of v in which every object key found in forward is
// replaced by its token. Keys missing from forward are kept as they are.
// Arrays keep their order and length; scalars and Opaque values pass through.
//
// Tokenize fails before building anything if forward has an unsafe key or an
// unsafe target, or if v holds an unsafe key at any depth (*StructuralError
// with the key's path). Neither v nor forward is modified.
func Tokenize(v Value, forward map[string]string) (Value, error) {
	return apply(v, forward)
}

// Detokenize is the inverse of Tokenize given the matching reverse map.
func Detokenize(v Value, reverse map[string]string) (Value, error) {
	return apply(v, reverse)
}

func apply(v Value, mapping map[string]string) (Value, error) {
	if err := ValidateKeys(mapping); err != nil {
		return nil, err
	}
	if err := validateTargets(mapping); err != nil {
		return nil, err
	}
	if err := ValidateStructure(v, RootPath); err != nil {
		return nil, err
	}
	return walk(v, mapping, RootPath)
}

// walk rebuilds v with substituted keys, re-checking every key it writes.
func walk(v Value, mapping map[string]string, path string) (Value, error) {
	switch tv := v.(type) {
	case Array:
		out := make(Array, len(tv))
		for i, elem := range tv {
			mapped, err := walk(elem, mapping, path+"["+strconv.Itoa(i)+"]")
			if err != nil {
				return nil, err
			}
			out[i] = mapped
		}
		return out, nil
	case *Object:
		if tv == nil {
			return Null{}, nil
		}
		out := NewSafeContainer()
		var err error
		tv.Range(func(k string, elem Value) bool {
			childPath := path + "." + k
			if cause := checkKey("key", k); cause != nil {
				err = newStructuralError(childPath, k, cause)
				return false
			}
			target := k
			if mapped, ok := mapping[k]; ok {
				target = mapped
			}
			var child Value
			if child, err = walk(elem, mapping, childPath); err != nil {
				return false
			}
			err = SafeAssign(out, target, child)
			return err == nil
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	case nil:
		return Null{}, nil
	default:
		return v, nil
	}
}
