// Package render draws transient click effects onto a tcell screen.
//
// Each Animate call adds an effect at the click location; the host's
// draw loop calls Render once per frame to paint active effects and
// discard expired ones. Effect geometry is animated with easing
// functions and the effect color fades with eased intensity.
package render
