package sync

import "strings"

// SerialRule extracts a manufacturer serial number from a raw device
// identifier.
type SerialRule func(deviceID string) string

// PrefixRule handles identifiers that embed the serial as the first
// underscore-delimited segment, optionally preceded by the manufacturer's
// own tag: "ET123456_device001" and "edgetech_ET-12345_a1b2c3d4_A" both
// resolve to the serial under PrefixRule("edgetech").
func PrefixRule(tag string) SerialRule {
	prefix := strings.ToLower(tag) + "_"
	return func(deviceID string) string {
		id := deviceID
		if len(id) >= len(prefix) && strings.EqualFold(id[:len(prefix)], prefix) {
			id = id[len(prefix):]
		}
		if i := strings.IndexByte(id, '_'); i >= 0 {
			return id[:i]
		}
		return id
	}
}

// SerialRegistry resolves per-manufacturer extraction rules. Manufacturer
// tags compare case-insensitively. Unknown manufacturers keep the device
// identifier unchanged.
type SerialRegistry struct {
	rules map[string]SerialRule
}

// NewSerialRegistry returns a registry preloaded with the built-in rules.
func NewSerialRegistry() *SerialRegistry {
	registry := &SerialRegistry{rules: make(map[string]SerialRule)}
	registry.Register("edgetech", PrefixRule("edgetech"))
	return registry
}

// Register adds or replaces the rule for a manufacturer.
func (r *SerialRegistry) Register(manufacturer string, rule SerialRule) {
	r.rules[strings.ToLower(manufacturer)] = rule
}

// Extract returns the serial number for a device of the given
// manufacturer.
func (r *SerialRegistry) Extract(manufacturer, deviceID string) string {
	rule, ok := r.rules[strings.ToLower(manufacturer)]
	if !ok {
		return deviceID
	}
	return rule(deviceID)
}
