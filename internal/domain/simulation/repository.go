package simulation

import "context"

// SimulationRepository - write-once snapshot store. There is no update or
// delete in the domain; duplicate inputs produce new rows.
type SimulationRepository interface {
	Create(ctx context.Context, sim Simulation) (Simulation, error)
	GetByID(ctx context.Context, id string, companyID string) (Simulation, error)
	ListByCompany(ctx context.Context, companyID string, page, limit int) ([]Simulation, int64, error)
}
