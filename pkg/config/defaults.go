package config

import "sort"

// Defaults is the read-only set of schema defaults. It is computed once at
// startup and shared by every validation; nothing can modify it after
// construction.
type Defaults struct {
	values Document
}

// NewDefaults wraps a deep copy of values
func NewDefaults(values Document) (Defaults, error) {
	copied, err := values.Clone()
	if err != nil {
		return Defaults{}, err
	}
	return Defaults{values: copied}, nil
}

// Get returns the default for key
func (d Defaults) Get(key string) (any, bool) {
	value, ok := d.values[key]
	return value, ok
}

// Len returns the number of keys with a default
func (d Defaults) Len() int {
	return len(d.values)
}

// Keys returns the defaulted keys in sorted order
func (d Defaults) Keys() []string {
	keys := make([]string, 0, len(d.values))
	for key := range d.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Document returns a mutable deep copy of the defaults
func (d Defaults) Document() Document {
	// values was produced by Clone, so it always encodes
	copied, _ := d.values.Clone()
	return copied
}

// ByPrefix returns the defaults under prefix with the prefix stripped
func (d Defaults) ByPrefix(prefix string) Document {
	return GetByPrefix(d.Document(), prefix)
}
