package api

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// ErrPortRangeExhausted reports that every port in the configured range was
// already in use. The CLI maps it to exit status 2.
var ErrPortRangeExhausted = errors.New("no free port in configured range")

// Listen binds host:port, advancing one port at a time while the address is
// in use, up to and including lastPort. It returns the bound listener and
// the port that was actually bound.
//
// Only "address already in use" triggers a retry; any other bind failure is
// returned unchanged.
func Listen(host string, port, lastPort int) (net.Listener, int, error) {
	first := port
	for {
		addr := net.JoinHostPort(host, strconv.Itoa(port))

		ln, err := net.Listen("tcp", addr)
		if err == nil {
			log.Infof("Listening on %s", addr)
			return ln, port, nil
		}

		if !errors.Is(err, syscall.EADDRINUSE) {
			return nil, 0, err
		}

		if port >= lastPort {
			log.Errorf("No free port between %d and %d on %s", first, lastPort, host)
			return nil, 0, fmt.Errorf("%w: %d-%d", ErrPortRangeExhausted, first, lastPort)
		}

		log.Warnf("Port %d in use, trying %d", port, port+1)
		port++
	}
}
