// Package connectivity answers whether the device currently has a usable
// network, which backend clients use to word transport failures.
package connectivity

import (
	"context"
	"net"
)

type Prober interface {
	Reachable(ctx context.Context) bool
}

type ProberFunc func(ctx context.Context) bool

func (f ProberFunc) Reachable(ctx context.Context) bool {
	return f(ctx)
}

// Static always reports the same answer.
type Static bool

func (s Static) Reachable(context.Context) bool {
	return bool(s)
}

var (
	Online  Prober = Static(true)
	Offline Prober = Static(false)
)

// InterfaceLister lists network interfaces with their addresses.
type InterfaceLister func() ([]Interface, error)

type Interface struct {
	Name     string
	Up       bool
	Loopback bool
	Addrs    int
}

// Interfaces reports reachable when at least one interface other than
// loopback is up and has an address assigned.
type Interfaces struct {
	list InterfaceLister
}

func NewInterfaces(list InterfaceLister) *Interfaces {
	if list == nil {
		list = SystemInterfaces
	}

	return &Interfaces{list: list}
}

func (p *Interfaces) Reachable(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}

	ifaces, err := p.list()
	if err != nil {
		return false
	}

	for _, iface := range ifaces {
		if iface.Up && !iface.Loopback && iface.Addrs > 0 {
			return true
		}
	}

	return false
}

func SystemInterfaces() ([]Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	out := make([]Interface, 0, len(ifaces))

	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		out = append(out, Interface{
			Name:     iface.Name,
			Up:       iface.Flags&net.FlagUp != 0,
			Loopback: iface.Flags&net.FlagLoopback != 0,
			Addrs:    len(addrs),
		})
	}

	return out, nil
}
