package presenter

import (
	"log/slog"

	"github.com/soocke/pixel-clicker-go/domain/capture"
)

// RegionSetter is the controller surface for the watched region.
type RegionSetter interface {
	SetRegion(capture.Region) error
	Region() (capture.Region, bool)
}

// RegionView shows the selected region.
type RegionView interface {
	SetRegionLabel(text string)
	SetStatus(text string, isError bool)
}

// RegionPresenter applies a region picked in the selection overlay.
type RegionPresenter struct {
	ctl     RegionSetter
	persist Persister
	view    RegionView
	logger  *slog.Logger
}

func NewRegionPresenter(ctl RegionSetter, persist Persister, view RegionView, logger *slog.Logger) *RegionPresenter {
	return &RegionPresenter{ctl: ctl, persist: persist, view: view, logger: logger}
}

// Refresh shows the current region, if any.
func (p *RegionPresenter) Refresh() {
	if p == nil || p.ctl == nil || p.view == nil {
		return
	}
	if r, ok := p.ctl.Region(); ok {
		p.view.SetRegionLabel(r.String())
		return
	}
	p.view.SetRegionLabel("no region selected")
}

// Select installs r as the watched region and persists it.
func (p *RegionPresenter) Select(r capture.Region) error {
	if p == nil || p.ctl == nil || p.view == nil {
		return nil
	}
	if err := p.ctl.SetRegion(r); err != nil {
		if p.logger != nil {
			p.logger.Warn("region rejected", "region", r.String(), "error", err)
		}
		p.view.SetStatus("error: "+err.Error(), true)
		return err
	}
	if p.logger != nil {
		p.logger.Info("region selected", "region", r.String())
	}
	p.view.SetRegionLabel(r.String())
	if p.persist != nil {
		if err := p.persist.Persist(); err != nil && p.logger != nil {
			p.logger.Error("persist config", "error", err)
		}
	}
	return nil
}
