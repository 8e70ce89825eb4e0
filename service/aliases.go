package service

// fieldAlias duplicates a payload value under names used by older
// templates. Forced aliases always mirror the source; others only fill
// keys the caller left empty.
type fieldAlias struct {
	source  string
	aliases []string
	force   bool
}

var payloadAliases = []fieldAlias{
	{source: "contract_number", aliases: []string{"ref_number", "contract_ref"}, force: true},
	{source: "promoter_name_en", aliases: []string{"promoter_name", "employee_name"}},
	{source: "promoter_name_ar", aliases: []string{"employee_name_ar"}},
	{source: "promoter_id_card_number", aliases: []string{"id_card_number"}},
	{source: "promoter_id_card_url", aliases: []string{"id_card_image"}},
	{source: "promoter_passport_url", aliases: []string{"passport_image"}},
	{source: "promoter_passport_number", aliases: []string{"passport_number"}},
	{source: "promoter_nationality", aliases: []string{"nationality"}},
	{source: "promoter_email", aliases: []string{"employee_email"}},
	{source: "promoter_mobile", aliases: []string{"employee_mobile"}},
	{source: "promoter_signature", aliases: []string{"employee_signature"}},
	{source: "first_party_name_en", aliases: []string{"first_party_name", "company_name"}},
	{source: "first_party_name_ar", aliases: []string{"company_name_ar"}},
	{source: "first_party_crn", aliases: []string{"company_crn"}},
	{source: "first_party_address", aliases: []string{"company_address"}},
	{source: "first_party_logo", aliases: []string{"party_1_logo"}},
	{source: "first_party_stamp", aliases: []string{"party_1_stamp"}},
	{source: "first_party_signature", aliases: []string{"party_1_signature"}},
	{source: "second_party_name_en", aliases: []string{"second_party_name", "employer_name"}},
	{source: "second_party_name_ar", aliases: []string{"employer_name_ar"}},
	{source: "second_party_crn", aliases: []string{"employer_crn"}},
	{source: "second_party_address", aliases: []string{"employer_address"}},
	{source: "second_party_logo", aliases: []string{"party_2_logo"}},
	{source: "second_party_stamp", aliases: []string{"party_2_stamp"}},
	{source: "second_party_signature", aliases: []string{"party_2_signature"}},
	{source: "start_date", aliases: []string{"contract_start_date"}},
	{source: "end_date", aliases: []string{"contract_end_date"}},
}

func applyAliases(payload map[string]any) {
	for _, a := range payloadAliases {
		v, ok := payload[a.source]
		if !ok || isEmpty(v) {
			continue
		}
		for _, alias := range a.aliases {
			if a.force || isEmpty(payload[alias]) {
				payload[alias] = v
			}
		}
	}
}
