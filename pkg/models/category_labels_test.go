package models

import "testing"

func TestCategoryLabelCoverage(t *testing.T) {
	for _, c := range Categories() {
		if c.Label() == string(c) {
			t.Errorf("Category %q has no label", c)
		}
	}
	if got := CategoryStorage.Label(); got != "Energy Storage" {
		t.Errorf("storage label = %q, want %q", got, "Energy Storage")
	}
	if got := CategoryEfficiency.Label(); got != "Energy Efficiency" {
		t.Errorf("efficiency label = %q, want %q", got, "Energy Efficiency")
	}
}

func TestCategoryLabelUnknownFallback(t *testing.T) {
	got := Category("geothermal").Label()
	if got != "geothermal" {
		t.Errorf("unknown category label = %q, want %q", got, "geothermal")
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in     string
		want   Category
		wantOK bool
	}{
		{"solar", CategorySolar, true},
		{"efficiency", CategoryEfficiency, true},
		{"all", "", false},
		{"Solar", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCategory(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCategoriesCanonicalOrder(t *testing.T) {
	cats := Categories()
	if len(cats) != 6 {
		t.Fatalf("len(Categories()) = %d, want 6", len(cats))
	}
	if cats[0] != CategorySolar || cats[5] != CategoryEfficiency {
		t.Errorf("Categories() = %v, want solar first and efficiency last", cats)
	}
}

func TestEfficiencyPercent(t *testing.T) {
	tests := []struct {
		eff  float64
		want int
	}{
		{0.22, 22},
		{0.97, 97},
		{0.99, 99},
		{0, 0},
		{1, 100},
	}
	for _, tt := range tests {
		p := Product{Efficiency: tt.eff}
		if got := p.EfficiencyPercent(); got != tt.want {
			t.Errorf("EfficiencyPercent(%v) = %d, want %d", tt.eff, got, tt.want)
		}
	}
}

func TestHealthStatusHealthy(t *testing.T) {
	if !(HealthStatus{Status: "healthy"}).Healthy() {
		t.Error("status healthy should be Healthy()")
	}
	if (HealthStatus{Status: "degraded"}).Healthy() {
		t.Error("status degraded should not be Healthy()")
	}
}
