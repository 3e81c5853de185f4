package service

import (
	"errors"
	"testing"

	"storefront-config-backend/internal/constants"
	"storefront-config-backend/internal/models"
)

func newTestThemeService() (*ThemeService, *memoryStore) {
	store := newMemoryStore()
	return NewThemeService(&memoryThemeRepository{store: store}), store
}

func strPtr(s string) *string { return &s }

func TestGetDraftCreatesDefaultsOnFirstAccess(t *testing.T) {
	svc, store := newTestThemeService()

	settings, err := svc.GetDraft("store-1")
	if err != nil {
		t.Fatalf("GetDraft returned error: %v", err)
	}

	if settings.Variant != constants.VariantDraft {
		t.Fatalf("expected draft variant, got %q", settings.Variant)
	}
	if settings.Colors["primary"] == nil {
		t.Fatalf("expected default colors, got %v", settings.Colors)
	}
	if settings.Typography["body_font"] == nil {
		t.Fatalf("expected default typography, got %v", settings.Typography)
	}
	if len(store.themes) != 1 {
		t.Fatalf("defaults should be persisted, %d theme rows", len(store.themes))
	}

	// A second read returns the stored row, not a fresh default.
	again, err := svc.GetDraft("store-1")
	if err != nil {
		t.Fatalf("GetDraft returned error: %v", err)
	}
	if again.ID != settings.ID {
		t.Fatalf("expected the persisted row back, ids %d != %d", again.ID, settings.ID)
	}
}

func TestUpdateDraftPatchesOnlyProvidedFields(t *testing.T) {
	svc, _ := newTestThemeService()

	colors := models.JSONMap{"primary": "#ff0000"}
	settings, err := svc.UpdateDraft("store-1", models.UpdateThemeRequest{Colors: &colors})
	if err != nil {
		t.Fatalf("UpdateDraft returned error: %v", err)
	}

	if settings.Colors["primary"] != "#ff0000" {
		t.Fatalf("colors not patched: %v", settings.Colors)
	}
	if settings.Typography["body_font"] == nil {
		t.Fatalf("untouched typography should keep its defaults: %v", settings.Typography)
	}
}

func TestUpdateDraftRejectsNonHexColor(t *testing.T) {
	svc, store := newTestThemeService()

	colors := models.JSONMap{"primary": "#ff0000", "accent": "tomato"}
	_, err := svc.UpdateDraft("store-1", models.UpdateThemeRequest{Colors: &colors})
	if !errors.Is(err, ErrInvalidThemeColor) {
		t.Fatalf("expected ErrInvalidThemeColor, got %v", err)
	}

	settings := store.themes[themeKey("store-1", constants.VariantDraft)]
	if settings.Colors["accent"] == "tomato" {
		t.Fatalf("rejected colors must not be stored")
	}
}

func TestUpdateDraftStoresValidCustomCSS(t *testing.T) {
	svc, _ := newTestThemeService()

	css := ".hero { background: #111; padding: 40px; }"
	settings, err := svc.UpdateDraft("store-1", models.UpdateThemeRequest{CustomCSS: &css})
	if err != nil {
		t.Fatalf("UpdateDraft returned error: %v", err)
	}
	if settings.CustomCSS != css {
		t.Fatalf("custom CSS not stored: %q", settings.CustomCSS)
	}
}

func TestUpdateDraftRejectsMalformedCustomCSS(t *testing.T) {
	svc, store := newTestThemeService()

	css := ".hero { background: #111;"
	_, err := svc.UpdateDraft("store-1", models.UpdateThemeRequest{CustomCSS: &css})
	if !errors.Is(err, ErrInvalidCustomCSS) {
		t.Fatalf("expected ErrInvalidCustomCSS, got %v", err)
	}

	settings := store.themes[themeKey("store-1", constants.VariantDraft)]
	if settings.CustomCSS != "" {
		t.Fatalf("rejected CSS must not be stored: %q", settings.CustomCSS)
	}
}

func TestUpdateDraftCarriesCustomJSVerbatim(t *testing.T) {
	svc, _ := newTestThemeService()

	js := "console.log('storefront ready');"
	settings, err := svc.UpdateDraft("store-1", models.UpdateThemeRequest{CustomJS: strPtr(js)})
	if err != nil {
		t.Fatalf("UpdateDraft returned error: %v", err)
	}
	if settings.CustomJS != js {
		t.Fatalf("custom JS not carried: %q", settings.CustomJS)
	}
}

func TestThemeDraftsSeparatePerStore(t *testing.T) {
	svc, _ := newTestThemeService()

	colors := models.JSONMap{"primary": "#00ff00"}
	if _, err := svc.UpdateDraft("store-1", models.UpdateThemeRequest{Colors: &colors}); err != nil {
		t.Fatalf("UpdateDraft returned error: %v", err)
	}

	other, err := svc.GetDraft("store-2")
	if err != nil {
		t.Fatalf("GetDraft returned error: %v", err)
	}
	if other.Colors["primary"] == "#00ff00" {
		t.Fatalf("store-2 must not see store-1's theme")
	}
}
