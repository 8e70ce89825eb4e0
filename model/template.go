package model

// ValueBounds limits the contract value. Nil bounds are not enforced.
type ValueBounds struct {
	Min *float64 `yaml:"min" json:"min,omitempty"`
	Max *float64 `yaml:"max" json:"max,omitempty"`
}

// StorageHint tells the automation service where to file rendered output.
type StorageHint struct {
	LocationID    string `yaml:"location_id" json:"location_id"`
	NamingPattern string `yaml:"naming_pattern" json:"naming_pattern"`
}

// ContractTypeConfig is the registry entry for one contract type.
// AutomationSteps and ErrorPolicy are descriptive metadata for the
// automation service and operators; nothing here executes them.
type ContractTypeConfig struct {
	ID                    string       `yaml:"id" json:"id"`
	Name                  string       `yaml:"name" json:"name"`
	Category              string       `yaml:"category" json:"category"`
	Description           string       `yaml:"description" json:"description,omitempty"`
	RequiredTriggerFields []string     `yaml:"required_trigger_fields" json:"required_trigger_fields"`
	OptionalFields        []string     `yaml:"optional_fields" json:"optional_fields"`
	ValueField            string       `yaml:"value_field" json:"value_field,omitempty"`
	ValueBounds           ValueBounds  `yaml:"value_bounds" json:"value_bounds"`
	AllowedCurrencies     []string     `yaml:"allowed_currencies" json:"allowed_currencies"`
	ComplianceChecks      []string     `yaml:"compliance_checks" json:"compliance_checks"`
	OutputFormat          string       `yaml:"output_format" json:"output_format"`
	StorageHint           *StorageHint `yaml:"storage_hint" json:"storage_hint,omitempty"`
	AutomationSteps       []string     `yaml:"automation_steps" json:"automation_steps"`
	ErrorPolicy           []string     `yaml:"error_policy" json:"error_policy"`
}

// ValueKey returns the data key that carries the contract value.
func (c ContractTypeConfig) ValueKey() string {
	if c.ValueField == "" {
		return "value"
	}
	return c.ValueField
}

// Clone returns a deep copy so callers cannot mutate registry state.
func (c ContractTypeConfig) Clone() ContractTypeConfig {
	out := c
	out.RequiredTriggerFields = cloneStrings(c.RequiredTriggerFields)
	out.OptionalFields = cloneStrings(c.OptionalFields)
	out.AllowedCurrencies = cloneStrings(c.AllowedCurrencies)
	out.ComplianceChecks = cloneStrings(c.ComplianceChecks)
	out.AutomationSteps = cloneStrings(c.AutomationSteps)
	out.ErrorPolicy = cloneStrings(c.ErrorPolicy)
	if c.ValueBounds.Min != nil {
		v := *c.ValueBounds.Min
		out.ValueBounds.Min = &v
	}
	if c.ValueBounds.Max != nil {
		v := *c.ValueBounds.Max
		out.ValueBounds.Max = &v
	}
	if c.StorageHint != nil {
		hint := *c.StorageHint
		out.StorageHint = &hint
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
