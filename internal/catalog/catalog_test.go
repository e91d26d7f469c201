package catalog

import (
	"strings"
	"testing"
)

func TestLookupPackage(t *testing.T) {
	c := New()

	s, ok := c.LookupPackage("com.netflix.mediaclient")
	if !ok {
		t.Fatal("expected netflix package to be known")
	}
	if s.Name != "Netflix" || s.Domain != "netflix.com" {
		t.Errorf("got %q/%q, want Netflix/netflix.com", s.Name, s.Domain)
	}

	if _, ok := c.LookupPackage("com.example.unknown"); ok {
		t.Error("unknown package must not resolve")
	}
}

func TestMatchName(t *testing.T) {
	c := New()

	s, ok := c.MatchName("Your Spotify Premium payment is due")
	if !ok || s.Name != "Spotify" {
		t.Fatalf("got %v/%v, want Spotify", s.Name, ok)
	}

	// Case-insensitive
	s, ok = c.MatchName("NETFLIX charged you")
	if !ok || s.Name != "Netflix" {
		t.Fatalf("got %v/%v, want Netflix", s.Name, ok)
	}

	if _, ok := c.MatchName("nothing recognizable here"); ok {
		t.Error("expected no match")
	}
}

func TestMatchNameOrderIsDeterministic(t *testing.T) {
	c := New()

	// Both Adobe and Spotify appear; the scan runs in display-name order so
	// Adobe wins every time.
	s, ok := c.MatchName("Spotify and Adobe charged you")
	if !ok {
		t.Fatal("expected a match")
	}
	if s.Name != "Adobe" {
		t.Errorf("got %q, want Adobe (alphabetical scan order)", s.Name)
	}
}

func TestIsBankPackage(t *testing.T) {
	c := New()

	if !c.IsBankPackage("kz.kaspi.mobile") {
		t.Error("kaspi must be a bank package")
	}
	if c.IsBankPackage("com.netflix.mediaclient") {
		t.Error("netflix must not be a bank package")
	}
}

func TestOverridesReplaceAndAppend(t *testing.T) {
	c := New(
		Service{Package: "com.netflix.mediaclient", Name: "Netflix", Domain: "netflix.kz", Category: CategoryStreaming},
		Service{Package: "kz.example.newservice", Name: "NewService", Domain: "newservice.kz", Category: CategoryOther},
	)

	s, ok := c.LookupPackage("com.netflix.mediaclient")
	if !ok || s.Domain != "netflix.kz" {
		t.Errorf("override must replace builtin entry, got %q", s.Domain)
	}

	if _, ok := c.LookupPackage("kz.example.newservice"); !ok {
		t.Error("override must append new entry")
	}
}

func TestParseOverrides(t *testing.T) {
	yaml := `
services:
  - package: kz.example.app
    name: Example
    domain: example.kz
    category: STREAMING
`
	services, err := ParseOverrides(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("ParseOverrides: %v", err)
	}
	if len(services) != 1 {
		t.Fatalf("got %d services, want 1", len(services))
	}
	if services[0].Name != "Example" || services[0].Category != CategoryStreaming {
		t.Errorf("got %+v", services[0])
	}
}
