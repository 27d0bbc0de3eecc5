package network

import (
	"fmt"
	"net"
	"strings"

	"github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"
)

/*
	HostAddr strings: 	"localhost:9042", ":9042", "192.168.0.1:9042"
	MultiAddr strings: 	"/dns4/localhost/tcp/9042", "/ip4/192.168.0.1/tcp/9042"
*/

// Address represents a cluster node network address.
type Address struct {
	ma multiaddr.Multiaddr
}

// LocalAddressSource is an interface of local
// network address container with read access.
type LocalAddressSource interface {
	LocalAddress() Address
}

// String returns multiaddr string.
func (a Address) String() string {
	if a.ma == nil {
		return ""
	}

	return a.ma.String()
}

// Equal compares Address's.
func (a Address) Equal(addr Address) bool {
	if a.ma == nil || addr.ma == nil {
		return a.ma == nil && addr.ma == nil
	}

	return a.ma.Equal(addr.ma)
}

// HostAddr returns host address in string format.
//
// Panics if host address cannot be fetched from Address.
func (a Address) HostAddr() string {
	_, host, err := manet.DialArgs(a.ma)
	if err != nil {
		// the only correct way to construct Address is FromString
		// which makes this error appear unexpected
		panic(fmt.Errorf("could not get host addr: %w", err))
	}

	return host
}

// FromString restores Address from a string representation.
//
// Supports MultiAddr and HostAddr strings.
func (a *Address) FromString(s string) error {
	var err error

	a.ma, err = multiaddr.NewMultiaddr(s)
	if err != nil {
		var s2 string

		s2, err = multiaddrStringFromHostAddr(s)
		if err == nil {
			a.ma, err = multiaddr.NewMultiaddr(s2)
		}
	}

	return err
}

// AddressFromString parses s into an Address the same way FromString does.
func AddressFromString(s string) (Address, error) {
	var a Address

	err := a.FromString(s)
	if err != nil {
		return Address{}, err
	}

	return a, nil
}

// multiaddrStringFromHostAddr converts "localhost:9042" to "/dns4/localhost/tcp/9042".
func multiaddrStringFromHostAddr(host string) (string, error) {
	endpoint, port, err := net.SplitHostPort(host)
	if err != nil {
		return "", err
	}

	// Empty address in host `:9042` generates `/dns4//tcp/9042` multiaddr
	// which is invalid. It could be `/tcp/9042` but this breaks
	// `manet.DialArgs`. The solution is to manually parse it as 0.0.0.0
	if endpoint == "" {
		return "/ip4/0.0.0.0/tcp/" + port, nil
	}

	var (
		prefix = "/dns4"
		addr   = endpoint
	)

	if ip := net.ParseIP(endpoint); ip != nil {
		addr = ip.String()
		if ip.To4() == nil {
			prefix = "/ip6"
		} else {
			prefix = "/ip4"
		}
	}

	const l4Protocol = "tcp"

	return strings.Join([]string{prefix, addr, l4Protocol, port}, "/"), nil
}

// IsLocalAddress returns true if addr is the address announced
// by the local address source.
func IsLocalAddress(src LocalAddressSource, addr Address) bool {
	return src.LocalAddress().Equal(addr)
}

type staticLocalAddress struct {
	addr Address
}

func (s staticLocalAddress) LocalAddress() Address {
	return s.addr
}

// NewStaticLocalAddress wraps a fixed Address into a LocalAddressSource.
func NewStaticLocalAddress(a Address) LocalAddressSource {
	return staticLocalAddress{addr: a}
}
