package cockpit

// Provider answers the cockpit's queries. Implementations are read-only
// and side-effect free. A false second result means the entity does not
// exist, which views render as a placeholder rather than an error.
type Provider interface {
	// Global view
	RegionSummaries() []RegionSummary
	RegionSummary(sector Sector) (RegionSummary, bool)
	DepartmentTiles() []DepartmentTile
	BusinessCategoryTiles() []BusinessCategoryTile
	FinanceSettingsBar() FinanceSettingsBar
	BusinessWindowKPIs() []Metric

	// Sector view
	SectorContent(sector Sector) (SectorContent, bool)

	// Detail views
	DepartmentDetail(id string) (DepartmentDetail, bool)
	AgentsByDepartment(departmentID string, tier *int) []AgentSummary
	AgentDetail(id string) (AgentDetail, bool)
	AllAgents() []AgentSummary
}

// Tier returns a pointer for the AgentsByDepartment tier filter
func Tier(n int) *int {
	return &n
}
