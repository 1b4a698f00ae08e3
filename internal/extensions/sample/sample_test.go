// SPDX-License-Identifier: MPL-2.0

package sample

import (
	"testing"

	"github.com/capreg/capreg/pkg/command"
)

func TestBundle_Exports(t *testing.T) {
	t.Parallel()

	n := NewNet()
	exports, err := Bundle(n).Exports()
	if err != nil {
		t.Fatalf("Exports: %v", err)
	}

	kinds := map[string]command.Kind{}
	ds := map[string]command.Descriptor{}
	for _, exp := range exports {
		d := exp.New()
		if err := d.Bind(exp.Target); err != nil {
			t.Fatalf("Bind %s: %v", d.Key(), err)
		}
		kinds[d.Key().String()] = d.Kind()
		ds[d.Key().String()] = d
	}

	want := map[string]command.Kind{
		"Net/Online": command.KindRaw,
		"Net/Reset":  command.KindButton,
		"Net/Port":   command.KindField,
		"Net/Host":   command.KindProperty,
	}
	for k, kind := range want {
		if kinds[k] != kind {
			t.Errorf("%s kind = %v, want %v", k, kinds[k], kind)
		}
	}

	port := ds["Net/Port"].(*command.Field[int])
	if res, _ := port.Set(0); res != command.Rejected {
		t.Errorf("Set(0) = %v, want Rejected", res)
	}
	if res, _ := port.Set(443); res != command.Applied || n.Port != 443 {
		t.Errorf("Set(443) = %v, port = %d", res, n.Port)
	}

	host := ds["Net/Host"].(*command.Property[string])
	if res, _ := host.Set("  "); res != command.Rejected {
		t.Errorf("Set(blank) = %v, want Rejected", res)
	}
	if res, _ := host.Set("example.org"); res != command.Applied || n.Host() != "example.org" {
		t.Errorf("Set(example.org) = %v, host = %q", res, n.Host())
	}
}

func TestNet_ResetNeedsRefresh(t *testing.T) {
	t.Parallel()

	n := NewNet()
	exports, _ := Bundle(n).Exports()
	var port *command.Field[int]
	var reset command.Invoker
	for _, exp := range exports {
		d := exp.New()
		if err := d.Bind(exp.Target); err != nil {
			t.Fatal(err)
		}
		switch d.Key().Name {
		case "Port":
			port = d.(*command.Field[int])
		case "Reset":
			reset = d.(command.Invoker)
		}
	}

	if _, err := port.Set(9000); err != nil {
		t.Fatal(err)
	}
	if err := reset.Click(); err != nil {
		t.Fatal(err)
	}
	if port.Get() != 9000 {
		t.Errorf("cached value = %d before refresh, want 9000", port.Get())
	}
	v, err := port.Refresh()
	if err != nil || v != DefaultPort {
		t.Errorf("Refresh() = %d, %v, want %d", v, err, DefaultPort)
	}
}
