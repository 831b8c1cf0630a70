package contracts

// DeviceInfo describes a MIDI 1.0 input source that can be captured as UMP.
type DeviceInfo struct {
	Name         string // Source name.
	Manufacturer string // Device manufacturer.
	EntityName   string // Name of the entity the source belongs to.
}
