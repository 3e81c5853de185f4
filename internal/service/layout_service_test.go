package service

import (
	"errors"
	"testing"

	"storefront-config-backend/internal/constants"
	"storefront-config-backend/internal/models"
)

func assertContiguous(t *testing.T, layoutSections []models.Section) {
	t.Helper()
	for i, section := range layoutSections {
		if section.Position != i {
			t.Fatalf("positions not contiguous: index %d has position %d", i, section.Position)
		}
	}
}

func createDraft(t *testing.T, svc *LayoutService, storeID, pageType string) *models.PageLayout {
	t.Helper()
	layout, err := svc.CreateDraft(storeID, models.CreateLayoutRequest{PageType: pageType})
	if err != nil {
		t.Fatalf("CreateDraft returned error: %v", err)
	}
	return layout
}

func TestCreateDraftSeedsDefaultSections(t *testing.T) {
	svc, _ := newTestLayoutService()

	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)

	if len(layout.Sections) < 3 {
		t.Fatalf("expected seeded sections, got %d", len(layout.Sections))
	}
	assertContiguous(t, layout.Sections)

	first := layout.Sections[0]
	last := layout.Sections[len(layout.Sections)-1]
	if first.Type != constants.SectionHeader || !first.Locked {
		t.Fatalf("expected locked header first, got type=%s locked=%v", first.Type, first.Locked)
	}
	if last.Type != constants.SectionFooter || !last.Locked {
		t.Fatalf("expected locked footer last, got type=%s locked=%v", last.Type, last.Locked)
	}
	for _, section := range layout.Sections[1 : len(layout.Sections)-1] {
		if section.Locked {
			t.Fatalf("body section %s should not be locked", section.Type)
		}
		if !section.Visible {
			t.Fatalf("seeded section %s should be visible", section.Type)
		}
	}
}

func TestCreateDraftRejectsDuplicateTarget(t *testing.T) {
	svc, _ := newTestLayoutService()

	createDraft(t, svc, "store-1", constants.PageTypeHome)

	if _, err := svc.CreateDraft("store-1", models.CreateLayoutRequest{PageType: constants.PageTypeHome}); !errors.Is(err, ErrLayoutExists) {
		t.Fatalf("expected ErrLayoutExists, got %v", err)
	}
}

func TestCreateDraftRejectsUnknownPageType(t *testing.T) {
	svc, _ := newTestLayoutService()

	if _, err := svc.CreateDraft("store-1", models.CreateLayoutRequest{PageType: "blog"}); !errors.Is(err, ErrInvalidPageType) {
		t.Fatalf("expected ErrInvalidPageType, got %v", err)
	}
}

func TestAddSectionAppendsByDefault(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	before := len(layout.Sections)

	sections, err := svc.AddSection("store-1", layout.ID, models.AddSectionRequest{Type: constants.SectionRichText})
	if err != nil {
		t.Fatalf("AddSection returned error: %v", err)
	}

	if len(sections) != before+1 {
		t.Fatalf("expected %d sections, got %d", before+1, len(sections))
	}
	assertContiguous(t, sections)
	if sections[len(sections)-1].Type != constants.SectionRichText {
		t.Fatalf("expected new section appended at the end")
	}
}

func TestAddSectionInsertsAtPosition(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)

	sections, err := svc.AddSection("store-1", layout.ID, models.AddSectionRequest{
		Type:     constants.SectionRichText,
		Position: intPtr(1),
	})
	if err != nil {
		t.Fatalf("AddSection returned error: %v", err)
	}

	assertContiguous(t, sections)
	if sections[1].Type != constants.SectionRichText {
		t.Fatalf("expected new section at position 1, got %s", sections[1].Type)
	}
	if sections[0].Type != constants.SectionHeader {
		t.Fatalf("header should stay at position 0")
	}
}

func TestAddSectionClampsOutOfRangePosition(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	before := len(layout.Sections)

	sections, err := svc.AddSection("store-1", layout.ID, models.AddSectionRequest{
		Type:     constants.SectionRichText,
		Position: intPtr(99),
	})
	if err != nil {
		t.Fatalf("AddSection returned error: %v", err)
	}

	assertContiguous(t, sections)
	if sections[before].Type != constants.SectionRichText {
		t.Fatalf("expected out-of-range position clamped to the end")
	}
}

func TestAddSectionRejectsUnknownType(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)

	if _, err := svc.AddSection("store-1", layout.ID, models.AddSectionRequest{Type: "carousel-3000"}); !errors.Is(err, ErrInvalidSectionType) {
		t.Fatalf("expected ErrInvalidSectionType, got %v", err)
	}
}

func TestAddSectionStoresCanonicalType(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)

	updated, err := svc.AddSection("store-1", layout.ID, models.AddSectionRequest{Type: " HERO_BANNER "})
	if err != nil {
		t.Fatalf("AddSection returned error: %v", err)
	}

	added := updated[len(updated)-1]
	if added.Type != constants.SectionHeroBanner {
		t.Fatalf("type stored un-normalized: %q", added.Type)
	}
	if len(added.Settings) == 0 {
		t.Fatalf("canonical type should pick up its default settings")
	}
}

func TestRemoveSectionRenumbers(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	victim := layout.Sections[1]

	sections, err := svc.RemoveSection("store-1", layout.ID, victim.ID)
	if err != nil {
		t.Fatalf("RemoveSection returned error: %v", err)
	}

	if len(sections) != len(layout.Sections)-1 {
		t.Fatalf("expected one section removed")
	}
	assertContiguous(t, sections)
	for _, section := range sections {
		if section.ID == victim.ID {
			t.Fatalf("removed section still present")
		}
	}
}

func TestRemoveSectionRefusesLocked(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	header := layout.Sections[0]

	if _, err := svc.RemoveSection("store-1", layout.ID, header.ID); !errors.Is(err, ErrSectionLocked) {
		t.Fatalf("expected ErrSectionLocked, got %v", err)
	}

	sections, err := svc.GetLayout("store-1", layout.ID)
	if err != nil {
		t.Fatalf("GetLayout returned error: %v", err)
	}
	if len(sections.Sections) != len(layout.Sections) {
		t.Fatalf("layout changed despite refused removal")
	}
	assertContiguous(t, sections.Sections)
}

func TestMoveSectionRefusesLocked(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	footer := layout.Sections[len(layout.Sections)-1]

	if _, err := svc.MoveSection("store-1", layout.ID, footer.ID, 0); !errors.Is(err, ErrSectionLocked) {
		t.Fatalf("expected ErrSectionLocked, got %v", err)
	}
}

func TestMoveSectionWithLockedSiblings(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	mover := layout.Sections[1]

	// Locked header and footer do not prevent moving an unlocked sibling.
	sections, err := svc.MoveSection("store-1", layout.ID, mover.ID, len(layout.Sections)-1)
	if err != nil {
		t.Fatalf("MoveSection returned error: %v", err)
	}

	assertContiguous(t, sections)
	if sections[len(sections)-1].ID != mover.ID {
		t.Fatalf("expected section moved to the end")
	}
}

func TestMoveSectionClampsPosition(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	mover := layout.Sections[2]

	sections, err := svc.MoveSection("store-1", layout.ID, mover.ID, -5)
	if err != nil {
		t.Fatalf("MoveSection returned error: %v", err)
	}

	assertContiguous(t, sections)
	if sections[0].ID != mover.ID {
		t.Fatalf("expected negative position clamped to 0")
	}
}

func TestSetSectionVisibilityKeepsPosition(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	target := layout.Sections[1]

	section, err := svc.SetSectionVisibility("store-1", layout.ID, target.ID, false)
	if err != nil {
		t.Fatalf("SetSectionVisibility returned error: %v", err)
	}
	if section.Visible {
		t.Fatalf("expected section hidden")
	}
	if section.Position != target.Position {
		t.Fatalf("visibility change moved the section: %d != %d", section.Position, target.Position)
	}
}

func TestHideLockedSectionAllowed(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	header := layout.Sections[0]

	section, err := svc.SetSectionVisibility("store-1", layout.ID, header.ID, false)
	if err != nil {
		t.Fatalf("hiding a locked section should be allowed: %v", err)
	}
	if section.Visible {
		t.Fatalf("expected header hidden")
	}
}

func TestUpdateLockedSectionSettingsAllowed(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	header := layout.Sections[0]

	settings := models.JSONMap{"sticky": false}
	section, err := svc.UpdateSection("store-1", layout.ID, header.ID, models.UpdateSectionRequest{
		Settings: &settings,
	})
	if err != nil {
		t.Fatalf("editing a locked section's settings should be allowed: %v", err)
	}
	if section.Settings["sticky"] != false {
		t.Fatalf("settings not applied: %v", section.Settings)
	}
}

func TestDuplicateSectionInsertsCopyAfterOriginal(t *testing.T) {
	svc, store := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	original := layout.Sections[1]

	blocks, err := svc.AddBlock("store-1", layout.ID, original.ID, models.AddBlockRequest{
		Type:    constants.BlockText,
		Content: models.BlockContent{Heading: "Hello"},
	})
	if err != nil {
		t.Fatalf("AddBlock returned error: %v", err)
	}

	sections, err := svc.DuplicateSection("store-1", layout.ID, original.ID)
	if err != nil {
		t.Fatalf("DuplicateSection returned error: %v", err)
	}

	assertContiguous(t, sections)
	copy := sections[original.Position+1]
	if copy.ID == original.ID {
		t.Fatalf("duplicate must get a fresh id")
	}
	if copy.Type != original.Type {
		t.Fatalf("duplicate type mismatch: %s != %s", copy.Type, original.Type)
	}
	if copy.Locked {
		t.Fatalf("duplicates are never locked")
	}

	copiedBlocks := store.blocksOf(copy.ID)
	if len(copiedBlocks) != len(blocks) {
		t.Fatalf("expected %d copied blocks, got %d", len(blocks), len(copiedBlocks))
	}
	for _, block := range copiedBlocks {
		if block.ID == blocks[0].ID {
			t.Fatalf("copied block must get a fresh id")
		}
	}
}

func TestLayoutScopedToStore(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)

	if _, err := svc.GetLayout("store-2", layout.ID); !errors.Is(err, ErrLayoutNotFound) {
		t.Fatalf("expected ErrLayoutNotFound for foreign store, got %v", err)
	}
}

func TestMutationRefusedOnPublishedLayout(t *testing.T) {
	svc, store := newTestLayoutService()

	published := models.PageLayout{
		StoreID:  "store-1",
		PageType: constants.PageTypeHome,
		Variant:  constants.VariantPublished,
	}
	store.nextLayoutID++
	published.ID = store.nextLayoutID
	store.layouts[published.ID] = published

	if _, err := svc.AddSection("store-1", published.ID, models.AddSectionRequest{Type: constants.SectionRichText}); !errors.Is(err, ErrLayoutNotDraft) {
		t.Fatalf("expected ErrLayoutNotDraft, got %v", err)
	}
}

func intPtr(v int) *int { return &v }
