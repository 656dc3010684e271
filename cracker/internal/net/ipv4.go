package net

import (
	"github.com/pkg/errors"
	"net"
)

var ErrNoValidNetworkInterfaceFound = errors.New("no valid network interface found")

// AdvertiseAddr returns configured when set and otherwise the first IPv4
// address of an interface that is up and not a loopback.
func AdvertiseAddr(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", errors.Wrap(err, "list network interfaces")
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			return "", errors.Wrapf(err, "addresses of %s", iface.Name)
		}
		if ip := firstIPv4(addrs); ip != "" {
			return ip, nil
		}
	}
	return "", ErrNoValidNetworkInterfaceFound
}

func firstIPv4(addrs []net.Addr) string {
	for _, addr := range addrs {
		if ipNet, ok := addr.(*net.IPNet); ok {
			if ip4 := ipNet.IP.To4(); ip4 != nil {
				return ip4.String()
			}
		}
	}
	return ""
}
