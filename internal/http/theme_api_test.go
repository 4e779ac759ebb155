package handlers_test

import (
	"net/http"
	"testing"
)

type themeResp struct {
	Theme string `json:"theme"`
}

func TestThemeDefaultsToLight(t *testing.T) {
	srv := fakeCatalog(t, nil, nil)
	app := newApp(t, srv.URL)

	got := decode[themeResp](t, do(t, app, jsonReq("GET", "/theme", "", "")))
	if got.Theme != "light" {
		t.Fatalf("want light default, got %q", got.Theme)
	}
}

func TestThemeSet(t *testing.T) {
	srv := fakeCatalog(t, nil, nil)
	app := newApp(t, srv.URL)

	got := decode[themeResp](t, do(t, app, jsonReq("PUT", "/theme", `{"theme":"dark"}`, "")))
	if got.Theme != "dark" {
		t.Fatalf("want dark after set, got %q", got.Theme)
	}
	got = decode[themeResp](t, do(t, app, jsonReq("GET", "/theme", "", "")))
	if got.Theme != "dark" {
		t.Fatalf("dark did not stick, got %q", got.Theme)
	}
}

func TestThemeRejectsUnknownMode(t *testing.T) {
	srv := fakeCatalog(t, nil, nil)
	app := newApp(t, srv.URL)

	resp := do(t, app, jsonReq("PUT", "/theme", `{"theme":"sepia"}`, ""))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for unknown mode, got %d", resp.StatusCode)
	}
}
