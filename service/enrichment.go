package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AbuAli85/Contract-Management-System-sub011/model"
	"github.com/AbuAli85/Contract-Management-System-sub011/pkg/logger"
)

// ErrEntityNotFound is returned by an EntityLookup for unknown ids.
var ErrEntityNotFound = errors.New("entity not found")

// EntityLookup reads the related entities a contract references.
type EntityLookup interface {
	GetPromoter(ctx context.Context, id string) (*model.Promoter, error)
	GetParty(ctx context.Context, id string) (*model.Party, error)
}

// EnrichResult carries the enriched payload and any lookup problems.
// Warnings are informational; enrichment never fails.
type EnrichResult struct {
	Data     model.EnrichedContractData
	Warnings []string
}

// Enricher merges related-entity attributes into contract data and
// resolves every media slot.
type Enricher struct {
	lookup EntityLookup
	media  *MediaResolver
}

// NewEnricher creates an enricher. A nil lookup skips entity fetches.
func NewEnricher(lookup EntityLookup, media *MediaResolver) *Enricher {
	if media == nil {
		media = defaultResolver
	}
	return &Enricher{lookup: lookup, media: media}
}

// Enrich returns a copy of data with promoter and party fields merged in.
func (e *Enricher) Enrich(ctx context.Context, data map[string]any) EnrichResult {
	out := make(model.EnrichedContractData, len(data)+len(model.MediaSlots))
	for k, v := range data {
		out[k] = v
	}
	result := EnrichResult{Data: out, Warnings: []string{}}

	if id := lookupString(data, "promoter_id", "promoterId"); id != "" {
		if w := e.mergePromoter(ctx, out, id); w != "" {
			result.Warnings = append(result.Warnings, w)
		}
	}
	parties := []struct {
		prefix string
		keys   []string
	}{
		{"first_party", []string{"first_party_id", "firstPartyId"}},
		{"second_party", []string{"second_party_id", "secondPartyId"}},
	}
	for _, p := range parties {
		if id := lookupString(data, p.keys...); id != "" {
			if w := e.mergeParty(ctx, out, p.prefix, id); w != "" {
				result.Warnings = append(result.Warnings, w)
			}
		}
	}

	if isEmpty(out["company_logo"]) && !isEmpty(out["first_party_logo"]) {
		out["company_logo"] = out["first_party_logo"]
	}
	e.media.Resolve(out)

	return result
}

func (e *Enricher) mergePromoter(ctx context.Context, out map[string]any, id string) string {
	if e.lookup == nil {
		logger.Debug(ctx, "promoter lookup skipped, no entity store", "promoter_id", id)
		return ""
	}
	p, err := e.lookup.GetPromoter(ctx, id)
	if err != nil {
		logger.Warn(ctx, "promoter lookup failed, continuing without promoter fields",
			"promoter_id", id,
			"error", err,
		)
		return fmt.Sprintf("promoter %s: %v", id, err)
	}

	setIfPresent(out, "promoter_name_en", p.NameEn)
	setIfPresent(out, "promoter_name_ar", p.NameAr)
	setIfPresent(out, "promoter_id_card_number", p.IDCardNumber)
	setIfPresent(out, "promoter_passport_number", p.PassportNumber)
	setIfPresent(out, "promoter_nationality", p.Nationality)
	setIfPresent(out, "promoter_email", p.Email)
	setIfPresent(out, "promoter_mobile", p.Mobile)
	setIfPresent(out, "promoter_id_card_url", p.IDCardURL)
	setIfPresent(out, "promoter_passport_url", p.PassportURL)
	setIfPresent(out, "promoter_signature", p.SignatureURL)
	return ""
}

func (e *Enricher) mergeParty(ctx context.Context, out map[string]any, prefix, id string) string {
	if e.lookup == nil {
		logger.Debug(ctx, "party lookup skipped, no entity store", "party", prefix, "party_id", id)
		return ""
	}
	p, err := e.lookup.GetParty(ctx, id)
	if err != nil {
		logger.Warn(ctx, "party lookup failed, continuing without party fields",
			"party", prefix,
			"party_id", id,
			"error", err,
		)
		return fmt.Sprintf("%s %s: %v", prefix, id, err)
	}

	setIfPresent(out, prefix+"_name_en", p.NameEn)
	setIfPresent(out, prefix+"_name_ar", p.NameAr)
	setIfPresent(out, prefix+"_crn", p.CRNumber)
	setIfPresent(out, prefix+"_type", p.Type)
	setIfPresent(out, prefix+"_address", p.Address)
	setIfPresent(out, prefix+"_email", p.Email)
	setIfPresent(out, prefix+"_phone", p.Phone)
	setIfPresent(out, prefix+"_signatory", p.Signatory)
	setIfPresent(out, prefix+"_logo", p.LogoURL)
	setIfPresent(out, prefix+"_stamp", p.StampURL)
	return ""
}

func setIfPresent(out map[string]any, key, value string) {
	if value != "" {
		out[key] = value
	}
}
