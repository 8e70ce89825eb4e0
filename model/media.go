package model

import "fmt"

// GenericImageSlots is the number of image_N slots offered to templates.
const GenericImageSlots = 10

// MediaSlots lists every payload key a template may render as an image.
// Enrichment guarantees each one holds a usable URL.
var MediaSlots = buildMediaSlots()

// SystemFields are added to every webhook payload by the assembler.
var SystemFields = []string{
	"contract_id",
	"contract_number",
	"ref_number",
	"contract_ref",
	"contract_type",
	"template_name",
	"output_format",
	"callback_url",
	"storage_location_id",
	"naming_pattern",
}

func buildMediaSlots() []string {
	slots := []string{
		"header_image",
		"footer_image",
		"header_logo",
		"footer_logo",
		"company_logo",
		"first_party_logo",
		"second_party_logo",
		"first_party_signature",
		"second_party_signature",
		"promoter_signature",
		"witness_signature",
		"company_stamp",
		"first_party_stamp",
		"second_party_stamp",
		"official_seal",
		"qr_code",
		"barcode",
		"watermark",
		"background_image",
		"promoter_id_card_url",
		"promoter_passport_url",
	}
	for i := 1; i <= GenericImageSlots; i++ {
		slots = append(slots, fmt.Sprintf("image_%d", i))
	}
	return slots
}
