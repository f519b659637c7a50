package wizard

import "github.com/aretw0/cadence/pkg/domain"

// Default labels for the controls.
const (
	DefaultNextLabel   = "Next"
	DefaultFinishLabel = "Finish"
)

// NavBuilder provides a fluent API for configuring a step's controls.
type NavBuilder struct {
	nav domain.Navigation
}

// Nav starts an empty set of controls.
func Nav() *NavBuilder {
	return &NavBuilder{}
}

// Next shows the Next control. The optional arguments are the label and the
// variant; they default to "Next" and brand.
func (n *NavBuilder) Next(labelAndVariant ...string) *NavBuilder {
	n.nav.HasNext = true
	n.nav.NextLabel = DefaultNextLabel
	n.nav.NextVariant = domain.VariantBrand
	if len(labelAndVariant) > 0 && labelAndVariant[0] != "" {
		n.nav.NextLabel = labelAndVariant[0]
	}
	if len(labelAndVariant) > 1 && labelAndVariant[1] != "" {
		n.nav.NextVariant = labelAndVariant[1]
	}
	return n
}

// Back shows the Back control.
func (n *NavBuilder) Back() *NavBuilder {
	n.nav.HasBack = true
	return n
}

// Finish shows the Finish control with the given label.
func (n *NavBuilder) Finish(label string) *NavBuilder {
	n.nav.HasFinish = true
	n.nav.FinishLabel = label
	if label == "" {
		n.nav.FinishLabel = DefaultFinishLabel
	}
	return n
}

// Build returns the configured domain.Navigation.
func (n *NavBuilder) Build() domain.Navigation {
	return n.nav
}
