// Package fakedialog provides a test fake for ports.DialogProvider.
package fakedialog

import "github.com/acolita/hdfs-connect/internal/ports"

// Provider is a controllable fake DialogProvider for testing.
type Provider struct {
	// Results are returned by successive ConnectionForm calls. Once they are
	// used up, the prefill is returned unconfirmed.
	Results []ports.ConnectionFormData
	// Edit, when set, derives the result from the prefill instead of Results.
	Edit func(prefill ports.ConnectionFormData) ports.ConnectionFormData
	// Err is the error returned by ConnectionForm.
	Err error
	// Prefills captures every prefill passed to ConnectionForm.
	Prefills []ports.ConnectionFormData
}

// New returns a fake that returns results in order.
func New(results ...ports.ConnectionFormData) *Provider {
	return &Provider{Results: results}
}

// ConnectionForm records the prefill and returns the next result.
func (p *Provider) ConnectionForm(prefill ports.ConnectionFormData) (ports.ConnectionFormData, error) {
	p.Prefills = append(p.Prefills, prefill)
	if p.Err != nil {
		return prefill, p.Err
	}
	if p.Edit != nil {
		return p.Edit(prefill), nil
	}
	if len(p.Results) == 0 {
		prefill.Confirmed = false
		return prefill, nil
	}
	next := p.Results[0]
	p.Results = p.Results[1:]
	return next, nil
}

// Calls returns how many times ConnectionForm was invoked.
func (p *Provider) Calls() int {
	return len(p.Prefills)
}

var _ ports.DialogProvider = (*Provider)(nil)
