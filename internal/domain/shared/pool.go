package shared

// PointPool identifies which point balance a spend draws from
type PointPool string

const (
	// PoolExperience is earned through play and spent during ongoing
	// advancement; spends are final and recorded for audit only.
	PoolExperience PointPool = "experience"

	// PoolFreebies is spent during character creation, subject to
	// storyteller post-hoc approval and reversal.
	PoolFreebies PointPool = "freebies"
)

// IsValid reports whether the pool is one of the two known pools
func (p PointPool) IsValid() bool {
	return p == PoolExperience || p == PoolFreebies
}
