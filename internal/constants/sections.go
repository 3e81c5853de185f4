package constants

import "strings"

const (
	// PageTypeHome identifies the storefront landing page.
	PageTypeHome = "home"
	// PageTypeProduct identifies product detail pages.
	PageTypeProduct = "product"
	// PageTypeCollection identifies collection listing pages.
	PageTypeCollection = "collection"
	// PageTypeCart identifies the cart page.
	PageTypeCart = "cart"
	// PageTypeCheckout identifies the checkout page.
	PageTypeCheckout = "checkout"
)

const (
	// VariantDraft is the editable copy of a layout or theme.
	VariantDraft = "draft"
	// VariantPublished is the copy served to storefront visitors.
	VariantPublished = "published"
)

const (
	// DeviceDesktop is the baseline device; its settings are the source of truth.
	DeviceDesktop = "desktop"
	// DeviceTablet selects the tablet responsive override.
	DeviceTablet = "tablet"
	// DeviceMobile selects the mobile responsive override.
	DeviceMobile = "mobile"
)

const (
	SectionHeroBanner          = "hero_banner"
	SectionFeaturedProducts    = "featured_products"
	SectionFeaturedCollections = "featured_collections"
	SectionImageWithText       = "image_with_text"
	SectionRichText            = "rich_text"
	SectionSlideshow           = "slideshow"
	SectionAnnouncementBar     = "announcement_bar"
	SectionNewsletter          = "newsletter"
	SectionGallery             = "gallery"
	SectionVideo               = "video"
	SectionTestimonials        = "testimonials"
	SectionContactForm         = "contact_form"
	SectionFAQ                 = "faq"
	SectionLogoList            = "logo_list"
	SectionHeader              = "header"
	SectionFooter              = "footer"
	SectionProductDetails      = "product_details"
	SectionProductRecommended  = "product_recommendations"
	SectionCollectionBanner    = "collection_banner"
	SectionCollectionGrid      = "collection_grid"
)

const (
	BlockText       = "text"
	BlockImage      = "image"
	BlockButton     = "button"
	BlockProduct    = "product"
	BlockCollection = "collection"
	BlockVideo      = "video"
)

const (
	// TemplateTypeProduct is the loop template for product detail pages.
	TemplateTypeProduct = "product"
	// TemplateTypeCollection is the loop template for collection pages.
	TemplateTypeCollection = "collection"
)

const (
	WidgetTitle       = "title"
	WidgetPrice       = "price"
	WidgetDescription = "description"
	WidgetMediaGrid   = "media_grid"
	WidgetVariantPick = "variant_picker"
	WidgetAddToCart   = "add_to_cart"
	WidgetBreadcrumbs = "breadcrumbs"
	WidgetRichText    = "rich_text"
	WidgetSeparator   = "separator"
	WidgetProductGrid = "product_grid"
)

// ConfigVersion is stamped into every canonical page config document so
// consumers can detect shape changes.
const ConfigVersion = "2.0"

var pageTypes = map[string]bool{
	PageTypeHome:       true,
	PageTypeProduct:    true,
	PageTypeCollection: true,
	PageTypeCart:       true,
	PageTypeCheckout:   true,
}

var sectionTypes = map[string]bool{
	SectionHeroBanner:          true,
	SectionFeaturedProducts:    true,
	SectionFeaturedCollections: true,
	SectionImageWithText:       true,
	SectionRichText:            true,
	SectionSlideshow:           true,
	SectionAnnouncementBar:     true,
	SectionNewsletter:          true,
	SectionGallery:             true,
	SectionVideo:               true,
	SectionTestimonials:        true,
	SectionContactForm:         true,
	SectionFAQ:                 true,
	SectionLogoList:            true,
	SectionHeader:              true,
	SectionFooter:              true,
	SectionProductDetails:      true,
	SectionProductRecommended:  true,
	SectionCollectionBanner:    true,
	SectionCollectionGrid:      true,
}

// lockedSectionTypes are structurally mandatory and cannot be deleted or
// dragged to a new position. Visibility and settings remain editable.
var lockedSectionTypes = map[string]bool{
	SectionHeader: true,
	SectionFooter: true,
}

var blockTypes = map[string]bool{
	BlockText:       true,
	BlockImage:      true,
	BlockButton:     true,
	BlockProduct:    true,
	BlockCollection: true,
	BlockVideo:      true,
}

var templateTypes = map[string]bool{
	TemplateTypeProduct:    true,
	TemplateTypeCollection: true,
}

var widgetTypes = map[string]bool{
	WidgetTitle:       true,
	WidgetPrice:       true,
	WidgetDescription: true,
	WidgetMediaGrid:   true,
	WidgetVariantPick: true,
	WidgetAddToCart:   true,
	WidgetBreadcrumbs: true,
	WidgetRichText:    true,
	WidgetSeparator:   true,
	WidgetProductGrid: true,
}

// Canonical returns the canonical form of an enum value, the form the lookup
// maps and the seeded defaults are keyed by. Callers that store a type must
// store this form, not the raw input.
func Canonical(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// IsValidPageType reports whether pageType belongs to the closed page type enum.
func IsValidPageType(pageType string) bool {
	return pageTypes[strings.ToLower(strings.TrimSpace(pageType))]
}

// IsValidSectionType reports whether sectionType belongs to the closed section enum.
func IsValidSectionType(sectionType string) bool {
	return sectionTypes[strings.ToLower(strings.TrimSpace(sectionType))]
}

// IsLockedSectionType reports whether sections of this type are created locked.
func IsLockedSectionType(sectionType string) bool {
	return lockedSectionTypes[strings.ToLower(strings.TrimSpace(sectionType))]
}

// IsValidBlockType reports whether blockType belongs to the closed block enum.
func IsValidBlockType(blockType string) bool {
	return blockTypes[strings.ToLower(strings.TrimSpace(blockType))]
}

// IsValidTemplateType reports whether templateType is product or collection.
func IsValidTemplateType(templateType string) bool {
	return templateTypes[strings.ToLower(strings.TrimSpace(templateType))]
}

// IsValidWidgetType reports whether widgetType belongs to the closed widget enum.
func IsValidWidgetType(widgetType string) bool {
	return widgetTypes[strings.ToLower(strings.TrimSpace(widgetType))]
}

// NormaliseDevice maps arbitrary input to one of the supported devices,
// defaulting to desktop.
func NormaliseDevice(device string) string {
	switch strings.ToLower(strings.TrimSpace(device)) {
	case DeviceTablet:
		return DeviceTablet
	case DeviceMobile:
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}

// SectionTypes returns the allowed section types. A copy is returned to
// prevent external mutation of the internal list.
func SectionTypes() []string {
	types := make([]string, 0, len(sectionTypes))
	for t := range sectionTypes {
		types = append(types, t)
	}
	return types
}
