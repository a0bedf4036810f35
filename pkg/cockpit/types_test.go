package cockpit

import "testing"

func TestSector_LabelsAndSizes(t *testing.T) {
	tests := []struct {
		sector Sector
		label  string
		size   SizeClass
	}{
		{SectorCommand, "Command", SizeMedium},
		{SectorOrganization, "Organization", SizeMedium},
		{SectorOperations, "Operations", SizeSmall},
		{SectorMetrics, "Metrics & Health", SizeLarge},
		{SectorIntelligence, "Intelligence", SizeSmall},
		{SectorFinance, "Finance Settings", SizeCollapsed},
	}

	for _, tt := range tests {
		if !tt.sector.Valid() {
			t.Errorf("%s: expected valid", tt.sector)
		}
		if got := tt.sector.Label(); got != tt.label {
			t.Errorf("%s: expected label %q, got %q", tt.sector, tt.label, got)
		}
		if got := tt.sector.Size(); got != tt.size {
			t.Errorf("%s: expected size %q, got %q", tt.sector, tt.size, got)
		}
	}

	if len(Sectors) != len(tests) {
		t.Errorf("Expected %d sectors, got %d", len(tests), len(Sectors))
	}
}

func TestSector_Unknown(t *testing.T) {
	s := Sector("dept-eng")
	if s.Valid() {
		t.Error("Expected unknown sector to be invalid")
	}
	if s.Label() != "dept-eng" {
		t.Errorf("Expected raw label, got %q", s.Label())
	}
}

func TestTier(t *testing.T) {
	if got := *Tier(3); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
}
