package query

import (
	"strompris/domain/pricing"
	"strompris/ports"
)

// Engine binds the pure query functions to a dataset provider, giving the
// servers one object implementing ports.PriceQueries. The engine holds no
// state of its own: the provider owns the dataset, the selection arrives per
// interaction.
type Engine struct {
	provider ports.DatasetProvider
}

// NewEngine creates a query engine over the given provider.
func NewEngine(provider ports.DatasetProvider) *Engine {
	return &Engine{provider: provider}
}

var _ ports.PriceQueries = (*Engine)(nil)

func (e *Engine) Monthly(sel pricing.Selection) ([]pricing.MonthlyPoint, error) {
	ds, err := e.provider.Dataset()
	if err != nil {
		return nil, err
	}
	return Monthly(ds, sel), nil
}

func (e *Engine) Annual(sel pricing.Selection) ([]pricing.AnnualMean, error) {
	ds, err := e.provider.Dataset()
	if err != nil {
		return nil, err
	}
	return Annual(ds, sel), nil
}

func (e *Engine) Seasonal(sel pricing.Selection) ([]pricing.SeasonalGroup, error) {
	ds, err := e.provider.Dataset()
	if err != nil {
		return nil, err
	}
	return Seasonal(ds, sel), nil
}

func (e *Engine) RegionalComparison(sel pricing.Selection) ([]pricing.RegionStats, error) {
	ds, err := e.provider.Dataset()
	if err != nil {
		return nil, err
	}
	return RegionalComparison(ds, sel), nil
}

func (e *Engine) Trend(sel pricing.Selection) (*pricing.TrendResult, error) {
	ds, err := e.provider.Dataset()
	if err != nil {
		return nil, err
	}
	return Trend(ds, sel), nil
}

func (e *Engine) Overview(sel pricing.Selection) (*pricing.Overview, error) {
	ds, err := e.provider.Dataset()
	if err != nil {
		return nil, err
	}
	return Overview(ds, sel), nil
}
