package nested

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/shinji-kodama/bxa/internal/model"
)

// FluxOptions selects the run and the energy band for
// DistributionWithFluxes.
type FluxOptions struct {
	ID string

	// Lo and Hi bound the energy band of the flux integrals. Nil means
	// the full range of the data.
	Lo, Hi *float64

	Parameters     []model.Parameter
	OutputBasename string
}

// DistributionWithFluxes returns the equally weighted posterior samples of
// a finished run, each row extended by two columns: the photon flux and
// the energy flux of the model at that point. The parameters are left at
// the values of the last row.
func (d *Driver) DistributionWithFluxes(opts FluxOptions) ([][]float64, error) {
	params, err := d.parameters(opts.ID, opts.Parameters)
	if err != nil {
		return nil, err
	}

	a := d.OpenAnalyzer(len(params), basenameOrDefault(opts.OutputBasename))
	posterior, err := a.EqualWeightedPosterior()
	if err != nil {
		return nil, err
	}

	out := make([][]float64, 0, len(posterior))
	for i, row := range posterior {
		model.ApplyValues(params, row)

		photon, err := d.session.PhotonFlux(opts.Lo, opts.Hi, opts.ID)
		if err != nil {
			return nil, fmt.Errorf("photon flux for sample %d: %w", i, err)
		}
		energy, err := d.session.EnergyFlux(opts.Lo, opts.Hi, opts.ID)
		if err != nil {
			return nil, fmt.Errorf("energy flux for sample %d: %w", i, err)
		}

		augmented := make([]float64, 0, len(row)+2)
		augmented = append(augmented, row...)
		out = append(out, append(augmented, photon, energy))
	}

	d.logger.Debug("computed flux distribution",
		zap.Int("samples", len(out)),
		zap.String("id", opts.ID))
	return out, nil
}
