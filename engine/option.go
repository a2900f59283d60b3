// Copyright (C) 2025 Brigham Skarda

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package engine

import (
	"strconv"
	"strings"
)

// OptionType is one of the typed engine option kinds. File, Path, Reset,
// and Save are XBoard-only extras.
type OptionType uint8

const (
	OptionCheck OptionType = iota
	OptionSpin
	OptionCombo
	OptionButton
	OptionString
	OptionFile
	OptionPath
	OptionReset
	OptionSave
)

func (t OptionType) String() string {
	switch t {
	case OptionCheck:
		return "check"
	case OptionSpin:
		return "spin"
	case OptionCombo:
		return "combo"
	case OptionButton:
		return "button"
	case OptionString:
		return "string"
	case OptionFile:
		return "file"
	case OptionPath:
		return "path"
	case OptionReset:
		return "reset"
	case OptionSave:
		return "save"
	default:
		return "unknown"
	}
}

// Option describes one engine-declared option: its name, type, default, and
// (for spin) range or (for combo) allowed values.
type Option struct {
	Name    string
	Type    OptionType
	Default string
	Min     *int
	Max     *int
	Var     []string
}

// managedOptions is the fixed, case-insensitive set of options the driver
// controls automatically and forbids the caller from setting directly.
// The spelling matches UCI convention, not the fork-specific
// "uci_cchess960" spelling some engines use.
var managedOptions = map[string]bool{
	"uci_chess960": true,
	"uci_variant":  true,
	"multipv":      true,
	"ponder":       true,
}

// IsManaged reports whether name (compared case-insensitively) is a managed
// option the caller is forbidden from setting directly.
func IsManaged(name string) bool {
	return managedOptions[strings.ToLower(name)]
}

// Parse coerces and range-checks value against o's type, returning the
// canonical string form to send on the wire. Parse is idempotent:
// o.Parse(o.Parse(v)) == o.Parse(v) for any v Parse accepts.
func (o Option) Parse(value string) (string, error) {
	switch o.Type {
	case OptionCheck:
		switch strings.ToLower(value) {
		case "true", "1":
			return "true", nil
		case "false", "0":
			return "false", nil
		default:
			return "", NewEngineError("option %q: %q is not a valid boolean", o.Name, value)
		}
	case OptionSpin:
		n, err := strconv.Atoi(value)
		if err != nil {
			return "", NewEngineError("option %q: %q is not a valid integer", o.Name, value)
		}
		if o.Min != nil && n < *o.Min {
			return "", NewEngineError("option %q: %d is below minimum %d", o.Name, n, *o.Min)
		}
		if o.Max != nil && n > *o.Max {
			return "", NewEngineError("option %q: %d is above maximum %d", o.Name, n, *o.Max)
		}
		return strconv.Itoa(n), nil
	case OptionCombo:
		for _, v := range o.Var {
			if v == value {
				return value, nil
			}
		}
		return "", NewEngineError("option %q: %q is not one of the allowed values %v", o.Name, value, o.Var)
	case OptionButton:
		return "", nil
	default: // String, File, Path, Reset, Save
		if strings.ContainsAny(value, "\r\n") {
			return "", NewEngineError("option %q: value must not contain a line break", o.Name)
		}
		return value, nil
	}
}

// optionMapEntry preserves the first-seen casing of a key alongside its
// value, so callers can iterate options in the casing the engine sent.
type optionMapEntry struct {
	key   string // first-seen casing
	value string
}

// OptionMap is a name-keyed associative container with case-insensitive
// lookup but case-preserving iteration order; equality is case-insensitive.
// Iteration order is insertion order.
type OptionMap struct {
	order []string // lowercased keys, insertion order
	data  map[string]optionMapEntry
}

// NewOptionMap returns an empty OptionMap, ready to use.
func NewOptionMap() *OptionMap {
	return &OptionMap{data: make(map[string]optionMapEntry)}
}

// Set stores value under name, preserving name's casing if it is the first
// time this key (case-insensitively) is seen.
func (m *OptionMap) Set(name, value string) {
	if m.data == nil {
		m.data = make(map[string]optionMapEntry)
	}
	lower := strings.ToLower(name)
	if existing, ok := m.data[lower]; ok {
		m.data[lower] = optionMapEntry{key: existing.key, value: value}
		return
	}
	m.data[lower] = optionMapEntry{key: name, value: value}
	m.order = append(m.order, lower)
}

// Get returns the value stored under name (case-insensitive) and whether it
// was present.
func (m *OptionMap) Get(name string) (string, bool) {
	if m.data == nil {
		return "", false
	}
	e, ok := m.data[strings.ToLower(name)]
	return e.value, ok
}

// Delete removes name (case-insensitive) from m.
func (m *OptionMap) Delete(name string) {
	lower := strings.ToLower(name)
	if _, ok := m.data[lower]; !ok {
		return
	}
	delete(m.data, lower)
	for i, k := range m.order {
		if k == lower {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries in m.
func (m *OptionMap) Len() int { return len(m.order) }

// Keys returns the keys in insertion (case-preserved) order.
func (m *OptionMap) Keys() []string {
	keys := make([]string, 0, len(m.order))
	for _, lower := range m.order {
		keys = append(keys, m.data[lower].key)
	}
	return keys
}

// Range calls f for every entry in insertion order, stopping early if f
// returns false.
func (m *OptionMap) Range(f func(name, value string) bool) {
	for _, lower := range m.order {
		e := m.data[lower]
		if !f(e.key, e.value) {
			return
		}
	}
}

// Equal reports whether m and other contain the same keys (case-insensitive)
// mapped to the same values, regardless of iteration order or casing.
func (m *OptionMap) Equal(other *OptionMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	equal := true
	m.Range(func(name, value string) bool {
		ov, ok := other.Get(name)
		if !ok || ov != value {
			equal = false
			return false
		}
		return true
	})
	return equal
}

// Clone returns an independent copy of m.
func (m *OptionMap) Clone() *OptionMap {
	clone := NewOptionMap()
	m.Range(func(name, value string) bool {
		clone.Set(name, value)
		return true
	})
	return clone
}
