// Package visibility decides how a fog region is rendered for a given
// viewer.
//
// The rule is asymmetric on purpose: the painter of a region can still
// roughly perceive what lies beneath their own fog, everyone else sees an
// opaque veil. A privileged viewer (the gamemaster) who toggles the
// player perspective, or anyone in solo/local play, sees their own fog as
// others do.
package visibility

// Kind names the two treatments a region can receive.
type Kind string

const (
	// KindOwn is the translucent treatment for the viewer's own fog.
	KindOwn Kind = "own"

	// KindForeign is the opaque treatment for everyone else's fog.
	KindForeign Kind = "foreign"
)

// Treatment is the full render decision for one region and one viewer:
// fill tone and the opacities of the three render passes (base fill,
// cloud decoration, edge glow).
type Treatment struct {
	Kind         Kind    `json:"kind"`
	FillColor    string  `json:"fill_color"`
	FillOpacity  float64 `json:"fill_opacity"`
	CloudOpacity float64 `json:"cloud_opacity"`
	GlowOpacity  float64 `json:"glow_opacity"`
}

var (
	own = Treatment{
		Kind:         KindOwn,
		FillColor:    "#cdcdc1",
		FillOpacity:  0.35,
		CloudOpacity: 0.35,
		GlowOpacity:  0.25,
	}
	foreign = Treatment{
		Kind:         KindForeign,
		FillColor:    "#52525b",
		FillOpacity:  1.0,
		CloudOpacity: 1.0,
		GlowOpacity:  0.6,
	}
)

// Resolve picks the treatment for a region painted by creatorID as seen by
// viewerID. The own-fog treatment applies only when the viewer is the
// creator, is not viewing as a player (privileged perspective toggle), and
// is not in solo/local play.
func Resolve(creatorID, viewerID string, viewerPrivileged, solo bool) Treatment {
	if viewerID == creatorID && !viewerPrivileged && !solo {
		return own
	}
	return foreign
}

// Own returns the own-fog treatment. Exposed for render styles that need
// the palette without a viewer in hand.
func Own() Treatment { return own }

// Foreign returns the foreign-fog treatment.
func Foreign() Treatment { return foreign }
