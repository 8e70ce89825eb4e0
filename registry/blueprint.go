package registry

import "github.com/AbuAli85/Contract-Management-System-sub011/model"

// Blueprint summarises what the automation service receives and is
// expected to do for one contract type. Operators use it to configure
// the external scenario; the generation path never reads it.
type Blueprint struct {
	TemplateID      string             `json:"template_id"`
	Name            string             `json:"name"`
	Category        string             `json:"category"`
	Description     string             `json:"description,omitempty"`
	OutputFormat    string             `json:"output_format"`
	WebhookFields   BlueprintFields    `json:"webhook_fields"`
	AutomationSteps []string           `json:"automation_steps"`
	ErrorPolicy     []string           `json:"error_policy"`
	BusinessRules   BusinessRules      `json:"business_rules"`
	StorageHint     *model.StorageHint `json:"storage_hint,omitempty"`
}

type BlueprintFields struct {
	Required []string `json:"required"`
	Optional []string `json:"optional"`
	System   []string `json:"system"`
	Media    []string `json:"media"`
}

type BusinessRules struct {
	ValueField        string   `json:"value_field"`
	MinValue          *float64 `json:"min_value,omitempty"`
	MaxValue          *float64 `json:"max_value,omitempty"`
	AllowedCurrencies []string `json:"allowed_currencies"`
	ComplianceChecks  []string `json:"compliance_checks"`
}

// Blueprint builds the operator document for a contract type.
func (r *Registry) Blueprint(id string) (*Blueprint, error) {
	def, err := r.Lookup(id)
	if err != nil {
		return nil, err
	}

	system := make([]string, 0, len(model.SystemFields))
	for _, f := range model.SystemFields {
		if def.StorageHint == nil && (f == "storage_location_id" || f == "naming_pattern") {
			continue
		}
		system = append(system, f)
	}

	return &Blueprint{
		TemplateID:   def.ID,
		Name:         def.Name,
		Category:     def.Category,
		Description:  def.Description,
		OutputFormat: def.OutputFormat,
		WebhookFields: BlueprintFields{
			Required: nonNil(def.RequiredTriggerFields),
			Optional: nonNil(def.OptionalFields),
			System:   system,
			Media:    append([]string(nil), model.MediaSlots...),
		},
		AutomationSteps: nonNil(def.AutomationSteps),
		ErrorPolicy:     nonNil(def.ErrorPolicy),
		BusinessRules: BusinessRules{
			ValueField:        def.ValueKey(),
			MinValue:          def.ValueBounds.Min,
			MaxValue:          def.ValueBounds.Max,
			AllowedCurrencies: nonNil(def.AllowedCurrencies),
			ComplianceChecks:  nonNil(def.ComplianceChecks),
		},
		StorageHint: def.StorageHint,
	}, nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
