package models

// Audience segments a visitor belongs to. Creatives may target one segment
// or leave the field empty to serve to anyone.
const (
	AudienceAffiliate = "affiliate"
	AudienceWebmaster = "webmaster"
)

// Creative is an authored advertising unit eligible for a named placement
// slot. Creatives are edited externally and read-only to the engine.
// Multiple creatives may target the same (slot, audience, language) triple;
// the slot resolver picks exactly one per render.
type Creative struct {
	Slug    string `json:"slug"`
	SlotKey string `json:"slot_key"`
	// Audience restricts the creative to a visitor segment. Empty means
	// eligible for any audience.
	Audience string `json:"audience,omitempty"`
	// Language restricts the creative to a display language. Empty means
	// eligible for any language.
	Language LangCode `json:"language,omitempty"`
	// DesktopImage and MobileImage are asset references. Either may be
	// absent; the renderer falls back per viewport independently.
	DesktopImage   string `json:"desktop_image,omitempty"`
	MobileImage    string `json:"mobile_image,omitempty"`
	DestinationURL string `json:"destination_url"`
}

// Descriptor converts the creative into its render-ready form.
func (c *Creative) Descriptor() CreativeDescriptor {
	return CreativeDescriptor{
		Slug:           c.Slug,
		SlotKey:        c.SlotKey,
		DesktopImage:   c.DesktopImage,
		MobileImage:    c.MobileImage,
		DestinationURL: c.DestinationURL,
	}
}

// CreativeDescriptor is what the presentation layer consumes for one slot
// render. A nil descriptor means "no creative": the caller renders the
// placeholder instead of failing.
type CreativeDescriptor struct {
	Slug           string `json:"slug"`
	SlotKey        string `json:"slot_key"`
	DesktopImage   string `json:"desktop_image,omitempty"`
	MobileImage    string `json:"mobile_image,omitempty"`
	DestinationURL string `json:"destination_url"`
}

// HasDesktopImage reports whether a desktop asset exists. The renderer
// must fall back per missing asset independently for each viewport, not
// for the slot as a whole.
func (d CreativeDescriptor) HasDesktopImage() bool { return d.DesktopImage != "" }

// HasMobileImage reports whether a mobile asset exists.
func (d CreativeDescriptor) HasMobileImage() bool { return d.MobileImage != "" }
