// Package feed speaks the line-oriented protocol between the pipeline and
// the helper reader/writer processes, and converts feed records to and
// from domain entities.
//
// Inbound: the client sends the file name as a line and the server replies
// with one record per request; the literal "EOF" ends the stream.
// Outbound: the client sends the file name and waits for "success";
// thereafter each record line is acknowledged with "success"; teardown
// sends "EOF".
package feed

import (
	"bufio"
	"fmt"
	"net"
	"strings"

	"treasury_go/internal/domain"
)

const (
	eofSentinel = "EOF"
	ackToken    = "success"
)

// Subscriber drives an inbound feed to its EOF sentinel.
type Subscriber struct {
	name string
	conn net.Conn
	br   *bufio.Reader
}

// DialSubscriber connects to a reader process serving the named file.
func DialSubscriber(addr, fileName string) (*Subscriber, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, domain.NewNetworkError("connect "+addr, err)
	}
	return NewSubscriber(conn, fileName), nil
}

// NewSubscriber wraps an established connection, for tests and
// non-TCP transports.
func NewSubscriber(conn net.Conn, fileName string) *Subscriber {
	return &Subscriber{name: fileName, conn: conn, br: bufio.NewReader(conn)}
}

// Run requests records one at a time until EOF, handing each line to
// handle. A handler error aborts the feed.
func (s *Subscriber) Run(handle func(line string) error) error {
	for {
		if err := writeLine(s.conn, s.name); err != nil {
			return domain.NewNetworkError("request "+s.name, err)
		}
		line, err := readLine(s.br)
		if err != nil {
			return domain.NewNetworkError("read "+s.name, err)
		}
		if line == eofSentinel {
			return nil
		}
		if err := handle(line); err != nil {
			return err
		}
	}
}

// Close releases the channel.
func (s *Subscriber) Close() error {
	return s.conn.Close()
}

// Publisher writes an outbound feed, one acknowledged line per record.
type Publisher struct {
	name string
	conn net.Conn
	br   *bufio.Reader
}

// DialPublisher connects to a writer process and completes the file-name
// handshake.
func DialPublisher(addr, fileName string) (*Publisher, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, domain.NewNetworkError("connect "+addr, err)
	}
	p := &Publisher{name: fileName, conn: conn, br: bufio.NewReader(conn)}
	if err := p.handshake(); err != nil {
		conn.Close()
		return nil, err
	}
	return p, nil
}

// NewPublisher wraps an established connection and completes the
// handshake, for tests and non-TCP transports.
func NewPublisher(conn net.Conn, fileName string) (*Publisher, error) {
	p := &Publisher{name: fileName, conn: conn, br: bufio.NewReader(conn)}
	if err := p.handshake(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) handshake() error {
	if err := writeLine(p.conn, p.name); err != nil {
		return domain.NewNetworkError("handshake "+p.name, err)
	}
	return p.readAck()
}

// Send writes one record line and waits for its acknowledgement.
func (p *Publisher) Send(line string) error {
	if err := writeLine(p.conn, line); err != nil {
		return domain.NewNetworkError("write "+p.name, err)
	}
	return p.readAck()
}

// Close signals end-of-stream to the sink and releases the channel.
func (p *Publisher) Close() error {
	if err := writeLine(p.conn, eofSentinel); err != nil {
		p.conn.Close()
		return domain.NewNetworkError("teardown "+p.name, err)
	}
	return p.conn.Close()
}

func (p *Publisher) readAck() error {
	ack, err := readLine(p.br)
	if err != nil {
		return domain.NewNetworkError("ack "+p.name, err)
	}
	if ack != ackToken {
		return domain.NewNetworkError("ack "+p.name, fmt.Errorf("unexpected ack %q", ack))
	}
	return nil
}

func writeLine(conn net.Conn, line string) error {
	_, err := conn.Write([]byte(line + "\n"))
	return err
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
