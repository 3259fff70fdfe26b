// Command serial2udp reads AIVDM/AIVDO lines off a serial AIS receiver
// and forwards each one, unmodified, to one or more UDP destinations
// (normally an aisdecoded instance). It performs no decoding itself —
// it is the external transport collaborator the decode pipeline
// expects upstream of it.
package main

import (
	"bufio"
	"flag"
	"io"
	"log"
	"net"
	"strings"
	"time"

	"go.bug.st/serial"
)

func main() {
	serialPort := flag.String("serial-port", "/dev/ttyUSB0", "Serial port device")
	baud := flag.Int("baud", 38400, "Baud rate")
	udpAddrs := flag.String("udp", "127.0.0.1:8101", "Comma-separated UDP destinations")
	debug := flag.Bool("debug", false, "Enable debug logging of forwarded data")
	reconnectDelay := flag.Duration("reconnect-delay", 2*time.Second, "Delay before retrying a failed serial open/read")
	flag.Parse()

	dests := splitAndTrim(*udpAddrs, ",")
	conns := dialAll(dests)
	defer closeAll(conns)

	for {
		if err := forwardUntilError(*serialPort, *baud, *debug, conns); err != nil {
			log.Printf("serial link error: %v; retrying in %s", err, *reconnectDelay)
		}
		time.Sleep(*reconnectDelay)
	}
}

func dialAll(dests []string) []*net.UDPConn {
	conns := make([]*net.UDPConn, 0, len(dests))
	for _, d := range dests {
		addr, err := net.ResolveUDPAddr("udp", d)
		if err != nil {
			log.Fatalf("Invalid UDP addr %q: %v", d, err)
		}
		c, err := net.DialUDP("udp", nil, addr)
		if err != nil {
			log.Fatalf("Dial %s: %v", addr, err)
		}
		log.Printf("Forwarding to %s", addr)
		conns = append(conns, c)
	}
	return conns
}

func closeAll(conns []*net.UDPConn) {
	for _, c := range conns {
		c.Close()
	}
}

// forwardUntilError opens the serial port and forwards lines until the
// port errors, at which point it closes the port and returns so the
// caller can retry. It never returns nil.
func forwardUntilError(serialPort string, baud int, debug bool, conns []*net.UDPConn) error {
	mode := &serial.Mode{BaudRate: baud}
	port, err := serial.Open(serialPort, mode)
	if err != nil {
		return err
	}
	defer port.Close()
	log.Printf("Listening on %s @ %d baud", serialPort, baud)

	reader := bufio.NewReader(port)
	for {
		frame, err := reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				time.Sleep(10 * time.Millisecond)
				continue
			}
			return err
		}
		if debug {
			log.Printf("Forwarding: %q", frame)
		}
		for _, c := range conns {
			c.Write(frame) // best-effort, no retry per destination
		}
	}
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := parts[:0]
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
