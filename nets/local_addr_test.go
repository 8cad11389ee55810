package nets

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/scpi/configs"
	"github.com/reusee/scpi/modes"
)

func TestIsLocalAddr(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoader(nil, "")),
	).Call(func(
		isLocalAddr IsLocalAddr,
	) {
		for addr, expected := range map[string]bool{
			"127.0.0.1:5025":       true,
			"192.168.1.20:5025":    true,
			"10.0.0.1":             true,
			"169.254.12.7:5025":    true,
			"[fe80::1]:5025":       true,
			"[::ffff:10.0.0.2]:80": true,
			"dmm-12.local:5025":    true,
			"localhost":            true,
			"8.8.8.8:5025":         false,
			"[2001:4860::1]:5025":  false,
		} {
			yes, err := isLocalAddr(t.Context(), addr)
			if err != nil {
				t.Fatal(err)
			}
			if yes != expected {
				t.Fatalf("%s: got %v", addr, yes)
			}
		}
	})
}
