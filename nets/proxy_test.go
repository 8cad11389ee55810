package nets

import (
	"net"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/scpi/configs"
	"github.com/reusee/scpi/modes"
)

func TestProxyAddr(t *testing.T) {
	loader := configs.NewSourceLoader(func() ([]configs.Source, error) {
		return []configs.Source{
			{Name: "scpi.cue", Content: []byte(`proxy_addr: "socks://127.0.0.1:1080"`)},
		}, nil
	}, "proxy_addr?: string")

	dscope.New(
		modes.ForProduction(),
		new(Module),
		dscope.Provide(loader),
	).Call(func(
		addr ProxyAddr,
		getURL GetProxyURL,
		getDialer GetProxyDialer,
	) {
		if addr != "socks://127.0.0.1:1080" {
			t.Fatalf("got %s", addr)
		}
		u, err := getURL()
		if err != nil {
			t.Fatal(err)
		}
		if u.Scheme != "socks5" || u.Host != "127.0.0.1:1080" {
			t.Fatalf("got %v", u)
		}
		if _, err := getDialer(); err != nil {
			t.Fatal(err)
		}
	})

	// no proxy in development mode
	dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(loader),
	).Call(func(
		addr ProxyAddr,
		getURL GetProxyURL,
	) {
		if addr != "" {
			t.Fatalf("got %s", addr)
		}
		u, err := getURL()
		if err != nil {
			t.Fatal(err)
		}
		if u != nil {
			t.Fatalf("got %v", u)
		}
	})
}

func TestDialerRoute(t *testing.T) {
	loader := configs.NewSourceLoader(func() ([]configs.Source, error) {
		return []configs.Source{
			{Name: "scpi.yaml", Content: []byte("proxy_addr: gopher://127.0.0.1:70\n")},
		}, nil
	}, "proxy_addr?: string")

	dscope.New(
		modes.ForProduction(),
		new(Module),
		dscope.Provide(loader),
	).Call(func(
		dialer Dialer,
	) {
		// remote addresses go through the proxy, which is unusable here
		_, err := dialer.DialContext(t.Context(), "tcp", "8.8.8.8:5025")
		if err == nil || !strings.Contains(err.Error(), "gopher") {
			t.Fatalf("got %v", err)
		}

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatal(err)
		}
		defer listener.Close()
		conn, err := dialer.DialContext(t.Context(), "tcp", listener.Addr().String())
		if err != nil {
			t.Fatal(err)
		}
		conn.Close()
	})
}
