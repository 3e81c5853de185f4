package service

import (
	"errors"
	"os"
	"testing"

	"storefront-config-backend/internal/constants"
	"storefront-config-backend/internal/models"
	"storefront-config-backend/pkg/validator"
)

func TestMain(m *testing.M) {
	validator.Init()
	os.Exit(m.Run())
}

func addTestBlocks(t *testing.T, svc *LayoutService, layoutID uint, sectionID string, count int) []models.Block {
	t.Helper()
	var blocks []models.Block
	for i := 0; i < count; i++ {
		var err error
		blocks, err = svc.AddBlock("store-1", layoutID, sectionID, models.AddBlockRequest{
			Type:    constants.BlockText,
			Content: models.BlockContent{Heading: "Block"},
		})
		if err != nil {
			t.Fatalf("AddBlock returned error: %v", err)
		}
	}
	return blocks
}

func assertBlocksContiguous(t *testing.T, blocks []models.Block) {
	t.Helper()
	for i, block := range blocks {
		if block.Position != i {
			t.Fatalf("block positions not contiguous: index %d has position %d", i, block.Position)
		}
	}
}

func TestAddBlockAppendsAndRenumbers(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	section := layout.Sections[1]

	blocks := addTestBlocks(t, svc, layout.ID, section.ID, 3)
	assertBlocksContiguous(t, blocks)

	inserted, err := svc.AddBlock("store-1", layout.ID, section.ID, models.AddBlockRequest{
		Type:     constants.BlockButton,
		Position: intPtr(0),
		Content:  models.BlockContent{ButtonLabel: "Shop now", ButtonURL: "https://example.com/sale"},
	})
	if err != nil {
		t.Fatalf("AddBlock returned error: %v", err)
	}

	assertBlocksContiguous(t, inserted)
	if inserted[0].Type != constants.BlockButton {
		t.Fatalf("expected button block at position 0, got %s", inserted[0].Type)
	}
	if len(inserted) != 4 {
		t.Fatalf("expected 4 blocks, got %d", len(inserted))
	}
}

func TestAddBlockRejectsUnknownType(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	section := layout.Sections[1]

	if _, err := svc.AddBlock("store-1", layout.ID, section.ID, models.AddBlockRequest{Type: "marquee"}); !errors.Is(err, ErrInvalidBlockType) {
		t.Fatalf("expected ErrInvalidBlockType, got %v", err)
	}
}

func TestAddBlockStoresCanonicalType(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	section := layout.Sections[1]

	blocks, err := svc.AddBlock("store-1", layout.ID, section.ID, models.AddBlockRequest{Type: " TEXT "})
	if err != nil {
		t.Fatalf("AddBlock returned error: %v", err)
	}
	if blocks[0].Type != constants.BlockText {
		t.Fatalf("block type stored un-normalized: %q", blocks[0].Type)
	}
}

func TestAddBlockSanitizesContent(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	section := layout.Sections[1]

	blocks, err := svc.AddBlock("store-1", layout.ID, section.ID, models.AddBlockRequest{
		Type: constants.BlockText,
		Content: models.BlockContent{
			Heading: "Sale<script>alert(1)</script>",
			Body:    "<p>Big deals</p><script>alert(2)</script>",
		},
	})
	if err != nil {
		t.Fatalf("AddBlock returned error: %v", err)
	}

	content := blocks[0].Content
	if content.Heading != "Sale" {
		t.Fatalf("expected heading stripped of markup, got %q", content.Heading)
	}
	if content.Body != "<p>Big deals</p>" {
		t.Fatalf("expected script removed from body, got %q", content.Body)
	}
}

func TestRemoveBlockRenumbers(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	section := layout.Sections[1]
	blocks := addTestBlocks(t, svc, layout.ID, section.ID, 3)

	remaining, err := svc.RemoveBlock("store-1", layout.ID, section.ID, blocks[1].ID)
	if err != nil {
		t.Fatalf("RemoveBlock returned error: %v", err)
	}

	if len(remaining) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(remaining))
	}
	assertBlocksContiguous(t, remaining)
}

func TestMoveBlockClampsPosition(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	section := layout.Sections[1]
	blocks := addTestBlocks(t, svc, layout.ID, section.ID, 3)

	moved, err := svc.MoveBlock("store-1", layout.ID, section.ID, blocks[0].ID, 99)
	if err != nil {
		t.Fatalf("MoveBlock returned error: %v", err)
	}

	assertBlocksContiguous(t, moved)
	if moved[len(moved)-1].ID != blocks[0].ID {
		t.Fatalf("expected block clamped to the end")
	}
}

func TestBlockScopedToSection(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	sectionA := layout.Sections[1]
	sectionB := layout.Sections[2]
	blocks := addTestBlocks(t, svc, layout.ID, sectionA.ID, 1)

	if _, err := svc.RemoveBlock("store-1", layout.ID, sectionB.ID, blocks[0].ID); !errors.Is(err, ErrBlockNotFound) {
		t.Fatalf("expected ErrBlockNotFound for foreign section, got %v", err)
	}
}

func TestSetBlockVisibility(t *testing.T) {
	svc, _ := newTestLayoutService()
	layout := createDraft(t, svc, "store-1", constants.PageTypeHome)
	section := layout.Sections[1]
	blocks := addTestBlocks(t, svc, layout.ID, section.ID, 1)

	block, err := svc.SetBlockVisibility("store-1", layout.ID, section.ID, blocks[0].ID, false)
	if err != nil {
		t.Fatalf("SetBlockVisibility returned error: %v", err)
	}
	if block.Visible {
		t.Fatalf("expected block hidden")
	}
}
