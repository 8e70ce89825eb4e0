package service

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/AbuAli85/Contract-Management-System-sub011/model"
	"github.com/golang-jwt/jwt/v5"
)

// CallbackClaims identify the contract an automation callback refers to.
// They carry no time claims so a payload can be rebuilt byte for byte.
type CallbackClaims struct {
	ContractNumber string `json:"contract_number"`
	jwt.RegisteredClaims
}

// Assembler builds the webhook payload sent to the automation service.
type Assembler struct {
	callbackURL string
	secret      []byte
}

func NewAssembler(callbackURL, secret string) *Assembler {
	return &Assembler{callbackURL: callbackURL, secret: []byte(secret)}
}

// reservedPayloadKeys route the generated document. Only the assembler
// sets them.
var reservedPayloadKeys = []string{"callback_url", "storage_location_id", "naming_pattern"}

// Assemble merges enriched data with contract identifiers, the callback
// target and storage hints. Inputs are not modified.
func (a *Assembler) Assemble(cfg model.ContractTypeConfig, enriched model.EnrichedContractData, contract *model.Contract) model.WebhookPayload {
	payload := make(model.WebhookPayload, len(enriched)+len(model.SystemFields))
	for k, v := range enriched {
		payload[k] = v
	}
	for _, k := range reservedPayloadKeys {
		delete(payload, k)
	}

	payload["contract_id"] = contract.ID
	payload["contract_number"] = contract.ContractNumber
	payload["contract_type"] = cfg.ID
	payload["template_name"] = cfg.Name
	payload["output_format"] = cfg.OutputFormat
	applyAliases(payload)

	if cb := a.CallbackURL(contract); cb != "" {
		payload["callback_url"] = cb
	}

	if hint := cfg.StorageHint; hint != nil {
		if hint.LocationID != "" {
			payload["storage_location_id"] = hint.LocationID
		}
		payload["naming_pattern"] = hint.NamingPattern
	}

	return payload
}

// CallbackURL returns the URL the automation service reports back to, or
// an empty string when no callback base is configured.
func (a *Assembler) CallbackURL(contract *model.Contract) string {
	if a.callbackURL == "" {
		return ""
	}
	u, err := url.Parse(a.callbackURL)
	if err != nil {
		return ""
	}

	q := u.Query()
	q.Set("contract_id", contract.ID)
	if token, err := a.CallbackToken(contract); err == nil {
		q.Set("token", token)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// CallbackToken signs the contract identity for the callback URL.
func (a *Assembler) CallbackToken(contract *model.Contract) (string, error) {
	if len(a.secret) == 0 {
		return "", errors.New("callback secret not configured")
	}
	claims := CallbackClaims{
		ContractNumber: contract.ContractNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: contract.ID,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// VerifyCallbackToken checks a callback token and returns its claims.
func VerifyCallbackToken(secret, token string) (*CallbackClaims, error) {
	if secret == "" {
		return nil, errors.New("callback secret not configured")
	}
	claims := &CallbackClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid callback token")
	}
	return claims, nil
}
