// Package domain contains the core entities shared across the analyzer:
// the per-signal status enums, the per-domain ProbeResult and the final
// Report. These types carry no infrastructure concerns so the probes,
// the resolver and the report sinks can all depend on them.
package domain
