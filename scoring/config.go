package scoring

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// WeightTable maps every dimension to an integer percentage. Percentages must
// sum to exactly 100; anything else is a configuration defect and the process
// refuses to start.
type WeightTable map[Dimension]int

// StandardWeights is the pathway for members with loan repayment history.
func StandardWeights() WeightTable {
	return WeightTable{
		DimensionRepaymentHistory:      30,
		DimensionCapitalBuildUp:        20,
		DimensionCooperativeEngagement: 15,
		DimensionMembershipMaturity:    10,
		DimensionLoanUtilization:       10,
		DimensionGuarantorNetwork:      10,
		DimensionDemographics:          5,
	}
}

// ThinFileWeights is the pathway for members with no loan repayment history.
// Repayment History and Loan Utilization carry zero weight (there is nothing
// to evaluate); their share is redistributed to the remaining dimensions.
func ThinFileWeights() WeightTable {
	return WeightTable{
		DimensionRepaymentHistory:      0,
		DimensionCapitalBuildUp:        30,
		DimensionCooperativeEngagement: 25,
		DimensionMembershipMaturity:    20,
		DimensionLoanUtilization:       0,
		DimensionGuarantorNetwork:      15,
		DimensionDemographics:          10,
	}
}

func (w WeightTable) Validate() error {
	sum := 0
	for _, dim := range AllDimensions {
		weight, ok := w[dim]
		if !ok {
			return fmt.Errorf("weight table is missing dimension %s", dim)
		}
		if weight < 0 {
			return fmt.Errorf("weight for dimension %s is negative (%d)", dim, weight)
		}
		sum += weight
	}
	if len(w) != len(AllDimensions) {
		return fmt.Errorf("weight table has %d entries, want %d", len(w), len(AllDimensions))
	}
	if sum != 100 {
		return fmt.Errorf("weight table sums to %d, want 100", sum)
	}
	return nil
}

// Config is the immutable scoring configuration, loaded once at process start
// and passed explicitly into the engine.
type Config struct {
	StandardWeights WeightTable `validate:"required"`
	ThinFileWeights WeightTable `validate:"required"`
	// ThinFileCeiling caps mapped thin-file scores. Applied after mapping.
	ThinFileCeiling int `validate:"required,gte=300,lte=850"`
	// Headquarters location, used by the demographics proximity sub-score.
	HeadquartersCity     string `validate:"required"`
	HeadquartersProvince string `validate:"required"`
}

// LoadConfig builds the scoring configuration from the fixed weight tables
// and env overrides for the cooperative's headquarters, failing fast on any
// inconsistency.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		StandardWeights:      StandardWeights(),
		ThinFileWeights:      ThinFileWeights(),
		ThinFileCeiling:      699,
		HeadquartersCity:     envOrDefault("COOP_HQ_CITY", "Tagum City"),
		HeadquartersProvince: envOrDefault("COOP_HQ_PROVINCE", "Davao del Norte"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if err := c.StandardWeights.Validate(); err != nil {
		return fmt.Errorf("standard weights: %w", err)
	}
	if err := c.ThinFileWeights.Validate(); err != nil {
		return fmt.Errorf("thin-file weights: %w", err)
	}
	return nil
}

func envOrDefault(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
