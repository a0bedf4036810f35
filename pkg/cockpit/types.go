// Package cockpit defines the read-only data contract behind every zoom
// level of the cockpit.
package cockpit

// Sector is one of the six fixed cockpit regions
type Sector string

const (
	SectorCommand      Sector = "COMMAND"
	SectorOrganization Sector = "ORGANIZATION"
	SectorOperations   Sector = "OPERATIONS"
	SectorMetrics      Sector = "METRICS"
	SectorIntelligence Sector = "INTELLIGENCE"
	SectorFinance      Sector = "FINANCE"
)

// Sectors lists the sectors in global view order
var Sectors = []Sector{
	SectorCommand,
	SectorOrganization,
	SectorOperations,
	SectorMetrics,
	SectorIntelligence,
	SectorFinance,
}

// SizeClass controls how much room a sector gets in the global view
type SizeClass string

const (
	SizeLarge     SizeClass = "large"
	SizeMedium    SizeClass = "medium"
	SizeSmall     SizeClass = "small"
	SizeCollapsed SizeClass = "collapsed"
)

var sectorLabels = map[Sector]string{
	SectorCommand:      "Command",
	SectorOrganization: "Organization",
	SectorOperations:   "Operations",
	SectorMetrics:      "Metrics & Health",
	SectorIntelligence: "Intelligence",
	SectorFinance:      "Finance Settings",
}

var sectorSizes = map[Sector]SizeClass{
	SectorCommand:      SizeMedium,
	SectorOrganization: SizeMedium,
	SectorOperations:   SizeSmall,
	SectorMetrics:      SizeLarge,
	SectorIntelligence: SizeSmall,
	SectorFinance:      SizeCollapsed,
}

// Valid reports whether s is a known sector
func (s Sector) Valid() bool {
	_, ok := sectorLabels[s]
	return ok
}

// Label returns the display label, or the raw value for unknown sectors
func (s Sector) Label() string {
	if l, ok := sectorLabels[s]; ok {
		return l
	}
	return string(s)
}

// Size returns the global view size class
func (s Sector) Size() SizeClass {
	if c, ok := sectorSizes[s]; ok {
		return c
	}
	return SizeSmall
}

// Health is a traffic-light status
type Health string

const (
	HealthGreen  Health = "green"
	HealthYellow Health = "yellow"
	HealthRed    Health = "red"
)

// Trend of a metric
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Stat is a labelled value
type Stat struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// Metric is a Stat with a trend
type Metric struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
	Trend Trend  `yaml:"trend,omitempty" json:"trend,omitempty"`
}

// ElementType discriminates DataElement
type ElementType string

const (
	ElementMetric       ElementType = "metric"
	ElementChartMini    ElementType = "chart_mini"
	ElementStatusList   ElementType = "status_list"
	ElementCountBadge   ElementType = "count_badge"
	ElementAvatarRow    ElementType = "avatar_row"
	ElementPriorityList ElementType = "priority_list"
)

// ListItem is an entry of a status or priority list
type ListItem struct {
	Rank   int    `yaml:"rank,omitempty" json:"rank,omitempty"`
	Text   string `yaml:"text" json:"text"`
	Status string `yaml:"status,omitempty" json:"status,omitempty"`
}

// Avatar is a person shown in an avatar row
type Avatar struct {
	ID     string `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Status string `yaml:"status" json:"status"`
}

// DataElement is one widget of a sector panel. Which fields are set
// depends on Type.
type DataElement struct {
	Type  ElementType `yaml:"type" json:"type"`
	Label string      `yaml:"label" json:"label"`

	// metric
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
	Trend Trend  `yaml:"trend,omitempty" json:"trend,omitempty"`

	// chart_mini
	Data      []float64 `yaml:"data,omitempty" json:"data,omitempty"`
	ChartType string    `yaml:"chartType,omitempty" json:"chartType,omitempty"`

	// count_badge
	Count    int    `yaml:"count,omitempty" json:"count,omitempty"`
	Severity string `yaml:"severity,omitempty" json:"severity,omitempty"`

	// status_list, priority_list
	Items []ListItem `yaml:"items,omitempty" json:"items,omitempty"`

	// avatar_row
	Avatars []Avatar `yaml:"avatars,omitempty" json:"avatars,omitempty"`
}

// RegionSummary is a sector panel in the global view
type RegionSummary struct {
	Sector         Sector        `yaml:"sector" json:"sector"`
	DisplayLabel   string        `yaml:"displayLabel" json:"displayLabel"`
	Health         Health        `yaml:"health" json:"health"`
	AttentionCount int           `yaml:"attentionCount" json:"attentionCount"`
	HeadlineKPI    string        `yaml:"headlineKpi" json:"headlineKpi"`
	Stats          []Stat        `yaml:"stats" json:"stats"`
	DataElements   []DataElement `yaml:"dataElements" json:"dataElements"`
}

// DepartmentTile summarizes a department inside the Organization panel
type DepartmentTile struct {
	ID        string `yaml:"id" json:"id"`
	Name      string `yaml:"name" json:"name"`
	Health    Health `yaml:"health" json:"health"`
	OpenItems int    `yaml:"openItems" json:"openItems"`
	Risks     int    `yaml:"risks" json:"risks"`
	Headcount int    `yaml:"headcount" json:"headcount"`
}

// BusinessCategoryTile is one of the business window tiles
type BusinessCategoryTile struct {
	Label       string `yaml:"label" json:"label"`
	Health      Health `yaml:"health" json:"health"`
	SummaryStat string `yaml:"summaryStat" json:"summaryStat"`
}

// FinanceSettingsBar is the collapsed finance strip
type FinanceSettingsBar struct {
	Label      string `yaml:"label" json:"label"`
	QuickStats string `yaml:"quickStats" json:"quickStats"`
}

// SectorHeader heads a sector view
type SectorHeader struct {
	Label        string `yaml:"label" json:"label"`
	Subtitle     string `yaml:"subtitle" json:"subtitle"`
	Health       Health `yaml:"health" json:"health"`
	HealthDetail string `yaml:"healthDetail" json:"healthDetail"`
}

// SummaryCard is a headline card in a sector view
type SummaryCard struct {
	Label     string    `yaml:"label" json:"label"`
	Value     string    `yaml:"value" json:"value"`
	Detail    string    `yaml:"detail,omitempty" json:"detail,omitempty"`
	ChartData []float64 `yaml:"chartData,omitempty" json:"chartData,omitempty"`
}

// SubArea is a drillable entity inside a sector
type SubArea struct {
	ID             string `yaml:"id" json:"id"`
	Type           string `yaml:"type" json:"type"`
	Label          string `yaml:"label" json:"label"`
	Health         Health `yaml:"health" json:"health"`
	Summary        string `yaml:"summary" json:"summary"`
	AttentionCount int    `yaml:"attentionCount" json:"attentionCount"`
}

// SectorAction is an operator action offered by a sector view
type SectorAction struct {
	ID                   string `yaml:"id" json:"id"`
	Label                string `yaml:"label" json:"label"`
	ActionType           string `yaml:"actionType" json:"actionType"`
	TargetID             string `yaml:"targetId,omitempty" json:"targetId,omitempty"`
	RequiresConfirmation bool   `yaml:"requiresConfirmation" json:"requiresConfirmation"`
}

// SectorContent is everything shown at the sector level
type SectorContent struct {
	Header        SectorHeader   `yaml:"header" json:"header"`
	SummaryCards  []SummaryCard  `yaml:"summaryCards" json:"summaryCards"`
	SubAreas      []SubArea      `yaml:"subAreas" json:"subAreas"`
	SectorActions []SectorAction `yaml:"sectorActions" json:"sectorActions"`
}

// AgentSummary is a roster entry
type AgentSummary struct {
	ID             string `yaml:"id" json:"id"`
	Name           string `yaml:"name" json:"name"`
	Role           string `yaml:"role" json:"role"`
	Tier           int    `yaml:"tier" json:"tier"`
	Status         string `yaml:"status" json:"status"`
	DepartmentID   string `yaml:"departmentId" json:"departmentId"`
	LastPulse      string `yaml:"lastPulse" json:"lastPulse"`
	Health         Health `yaml:"health" json:"health"`
	ActiveTasks    int    `yaml:"activeTasks" json:"activeTasks"`
	AvatarInitials string `yaml:"avatarInitials" json:"avatarInitials"`
}

// AgentExtension holds the detail-only fields of an agent
type AgentExtension struct {
	Mandate            string   `yaml:"mandate" json:"mandate"`
	AutonomyLevel      string   `yaml:"autonomyLevel" json:"autonomyLevel"`
	ReportsTo          string   `yaml:"reportsTo,omitempty" json:"reportsTo,omitempty"`
	ReportsToName      string   `yaml:"reportsToName,omitempty" json:"reportsToName,omitempty"`
	Inbox              int      `yaml:"inbox" json:"inbox"`
	PerformanceSignals []Metric `yaml:"performanceSignals" json:"performanceSignals"`
}

// DefaultAgentExtension applies to agents without explicit detail
func DefaultAgentExtension() AgentExtension {
	return AgentExtension{
		Mandate:            "Execute assigned tasks within scope and escalate blockers.",
		AutonomyLevel:      "A2",
		PerformanceSignals: []Metric{},
	}
}

// AgentDetail is an agent at the detail level
type AgentDetail struct {
	AgentSummary   `yaml:",inline"`
	AgentExtension `yaml:",inline"`
}

// Pulse is one completed agent heartbeat
type Pulse struct {
	ID          string `yaml:"id" json:"id"`
	AgentID     string `yaml:"agentId" json:"agentId"`
	AgentName   string `yaml:"agentName" json:"agentName"`
	CompletedAt string `yaml:"completedAt" json:"completedAt"`
	Status      string `yaml:"status" json:"status"`
	ActionCount int    `yaml:"actionCount" json:"actionCount"`
}

// DepartmentDetail is a department at the detail level, assembled with
// its roster and recent pulses
type DepartmentDetail struct {
	ID             string         `yaml:"id" json:"id"`
	Name           string         `yaml:"name" json:"name"`
	Type           string         `yaml:"type" json:"type"`
	Health         Health         `yaml:"health" json:"health"`
	HealthDetail   string         `yaml:"healthDetail" json:"healthDetail"`
	ChiefID        string         `yaml:"chiefId,omitempty" json:"chiefId,omitempty"`
	ChiefName      string         `yaml:"chiefName,omitempty" json:"chiefName,omitempty"`
	Headcount      int            `yaml:"headcount" json:"headcount"`
	ActiveBlockers int            `yaml:"activeBlockers" json:"activeBlockers"`
	OpenTasks      int            `yaml:"openTasks" json:"openTasks"`
	CompletedTasks int            `yaml:"completedTasks" json:"completedTasks"`
	KeyMetrics     []Metric       `yaml:"keyMetrics" json:"keyMetrics"`
	RecentPulses   []Pulse        `yaml:"-" json:"recentPulses"`
	Agents         []AgentSummary `yaml:"-" json:"agents"`
}
