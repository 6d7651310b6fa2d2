// Package network declares the Pin/Net/Instance/Port collaborator the core
// references by opaque identity only (spec §3, §6). Netlist parsing and the
// concrete connectivity database are out of scope: this package is the
// interface surface a front end implements, plus identity-only value types
// the core stores in maps and sets.
package network

import "context"

// Direction is a pin or port's signal direction.
type Direction int

const (
	DirUnknown Direction = iota
	DirInput
	DirOutput
	DirBidirect
	DirInternal
	DirTristate
)

func (d Direction) String() string {
	switch d {
	case DirInput:
		return "input"
	case DirOutput:
		return "output"
	case DirBidirect:
		return "bidirect"
	case DirInternal:
		return "internal"
	case DirTristate:
		return "tristate"
	default:
		return "unknown"
	}
}

// IsBidirect reports whether d requires two timing-graph vertices (§4.1).
func (d Direction) IsBidirect() bool { return d == DirBidirect }

// Pin, Net, Instance and Port are opaque identities: the core never
// dereferences their contents, only compares and hashes them. A front end's
// concrete types satisfy these via an ID() method; network.ID is what the
// core actually stores and indexes by.
type ID string

// Pin identifies one connection point of an instance or top-level port.
type Pin struct{ ID ID }

// Net identifies one electrically connected set of pins.
type Net struct{ ID ID }

// Instance identifies one netlist cell instantiation.
type Instance struct{ ID ID }

// Port identifies one Liberty cell port template (as opposed to a Pin,
// which is a Port realized on a specific Instance, or a top-level Pin).
type Port struct{ ID ID }

// Network is the connectivity collaborator: pin/net/instance/port
// enumeration, connectivity, direction, cell lookup, hierarchical path
// names, and equality (spec §6). The core calls through this interface and
// never assumes a concrete backing store.
type Network interface {
	// PinDirection returns the signal direction of pin.
	PinDirection(pin Pin) Direction

	// PathName returns the hierarchical path name of pin, for diagnostics.
	PathName(pin Pin) string

	// Net returns the net pin is connected to, or false if pin is
	// unconnected.
	Net(pin Pin) (Net, bool)

	// NetConnectedPins iterates every pin connected to net, including pin
	// itself if it is a member. Corresponds to netConnectedPinIterator.
	NetConnectedPins(ctx context.Context, net Net) ([]Pin, error)

	// Drivers returns the driver pins of net (could be more than one in a
	// multiply-driven or bus-keeper scenario).
	Drivers(net Net) []Pin

	// Loads returns the load pins of net.
	Loads(net Net) []Pin

	// Instance returns the owning instance of pin, or false for a
	// top-level port pin.
	Instance(pin Pin) (Instance, bool)

	// IsTopLevelPort reports whether pin is a top-level port rather than an
	// instance pin.
	IsTopLevelPort(pin Pin) bool

	// Port returns the Liberty port template realized by pin, if the
	// instance's cell is a Liberty cell.
	Port(pin Pin) (Port, bool)

	// Equal reports whether two pins refer to the same connection point.
	Equal(a, b Pin) bool
}
