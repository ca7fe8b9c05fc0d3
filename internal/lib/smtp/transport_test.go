package smtp

import (
	"bufio"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/membership-engine/internal/config"
)

// fakeServer отвечает на минимальный набор команд SMTP без STARTTLS и сохраняет тело письма.
func fakeServer(t *testing.T) (host string, port int, bodies chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	bodies = make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		write := func(s string) { _, _ = io.WriteString(conn, s+"\r\n") }

		write("220 fake ESMTP")
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"):
				write("250-fake")
				write("250 8BITMIME")
			case cmd == "DATA":
				write("354 go ahead")
				var sb strings.Builder
				for {
					l, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if l == ".\r\n" {
						break
					}
					sb.WriteString(l)
				}
				bodies <- sb.String()
				write("250 OK")
			case cmd == "QUIT":
				write("221 bye")
				return
			default:
				write("250 OK")
			}
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), addr.Port, bodies
}

func TestTransport_ConnectWithoutTLS(t *testing.T) {
	host, port, _ := fakeServer(t)
	tr := NewTransport(config.SMTP{Host: host, Port: port, From: "billing@dojo.example"}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	client, err := tr.Connect()
	require.NoError(t, err)
	require.NoError(t, client.Mail(tr.From()))
	require.NoError(t, client.Quit())
	_ = client.Close()
}

func TestTransport_DialError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	tr := NewTransport(config.SMTP{Host: "127.0.0.1", Port: port}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err = tr.Connect()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp.Connect")
	assert.Contains(t, err.Error(), strconv.Itoa(port))
}

func TestTransport_FromFallsBackToUser(t *testing.T) {
	tr := NewTransport(config.SMTP{User: "mailer@dojo.example"}, nil)
	assert.Equal(t, "mailer@dojo.example", tr.From())

	tr = NewTransport(config.SMTP{User: "mailer", From: "billing@dojo.example"}, nil)
	assert.Equal(t, "billing@dojo.example", tr.From())
}
